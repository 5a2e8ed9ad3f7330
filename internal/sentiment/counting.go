package sentiment

import (
	"strings"

	"faqbot/internal/domain"
	"faqbot/internal/utils"
)

var (
	positiveWords = []string{"good", "great", "excellent", "happy", "thanks", "thank you", "awesome"}
	negativeWords = []string{"bad", "terrible", "awful", "angry", "frustrated", "unhappy"}
)

// Counting conta ocorrências (não presenças) de cada lista no texto.
// "unhappy" também conta como "happy", igual a uma busca de substring.
type Counting struct {
	positive []string
	negative []string
}

// NewCounting cria o estimador com as listas fixas.
func NewCounting() *Counting {
	return &Counting{positive: positiveWords, negative: negativeWords}
}

// Estimate retorna 1, -1 ou 0. Empate é neutro.
func (c *Counting) Estimate(text string) domain.Score {
	folded := utils.Fold(text)
	pos := countAll(folded, c.positive)
	neg := countAll(folded, c.negative)

	score := domain.Score{Discrete: true}
	switch {
	case pos > neg:
		score.Value = 1
	case neg > pos:
		score.Value = -1
	}
	return score
}

func countAll(text string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(text, w)
	}
	return n
}
