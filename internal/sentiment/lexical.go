package sentiment

import (
	"github.com/jonreiter/govader"

	"faqbot/internal/domain"
)

// polarityScorer é a parte do analisador VADER usada aqui.
type polarityScorer interface {
	PolarityScores(text string) govader.Sentiment
}

// Lexical usa o escore composto do VADER, uma polaridade contínua em [-1, 1]
// que já considera intensificadores, negações, pontuação e caixa alta.
type Lexical struct {
	scorer polarityScorer
}

// NewLexical cria o estimador com o léxico padrão do VADER.
func NewLexical() *Lexical {
	return &Lexical{scorer: govader.NewSentimentIntensityAnalyzer()}
}

// Estimate retorna 0 quando o texto não tem palavras polarizadas.
func (l *Lexical) Estimate(text string) domain.Score {
	s := l.scorer.PolarityScores(text)
	return domain.Score{Value: min(1, max(-1, s.Compound))}
}
