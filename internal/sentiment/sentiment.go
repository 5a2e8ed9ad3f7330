// Package sentiment estima a polaridade de uma mensagem do usuário.
package sentiment

import (
	"fmt"

	"faqbot/internal/domain"
)

// Estimator é uma estratégia de análise de sentimento. Estimate deve ser puro.
type Estimator interface {
	Estimate(text string) domain.Score
}

// Strategy seleciona a implementação de Estimator.
type Strategy string

const (
	// StrategyCounting compara contagens de palavras positivas e negativas.
	StrategyCounting Strategy = "counting"
	// StrategyLexical usa a polaridade contínua do VADER.
	StrategyLexical Strategy = "lexical"
)

// New cria o Estimator da estratégia pedida.
func New(s Strategy) (Estimator, error) {
	switch s {
	case StrategyCounting, "":
		return NewCounting(), nil
	case StrategyLexical:
		return NewLexical(), nil
	default:
		return nil, fmt.Errorf("estratégia de sentimento desconhecida: %q", s)
	}
}
