// Package ambiguity decide quando uma mensagem sem casamento merece um pedido de esclarecimento.
package ambiguity

import (
	"fmt"
	"strings"

	"faqbot/internal/utils"
)

// Policy define o critério de ambiguidade.
type Policy string

const (
	// PolicyStrict considera só mensagens com menos de MinWords palavras.
	PolicyStrict Policy = "strict"
	// PolicyLenient também considera frases vagas como "how to" ou "i need".
	PolicyLenient Policy = "lenient"
)

// MinWords é o número mínimo de palavras de uma pergunta clara.
const MinWords = 3

var vaguePhrases = []string{"help", "what is", "how to", "can you", "i need"}

// Detector aplica uma Policy.
type Detector struct {
	policy Policy
}

// New cria um Detector. Policy vazia vira PolicyStrict.
func New(p Policy) (*Detector, error) {
	switch p {
	case "":
		p = PolicyStrict
	case PolicyStrict, PolicyLenient:
	default:
		return nil, fmt.Errorf("política de ambiguidade desconhecida: %q", p)
	}
	return &Detector{policy: p}, nil
}

// Policy retorna a política em uso.
func (d *Detector) Policy() Policy { return d.policy }

// IsUnclear informa se a mensagem é curta ou genérica demais.
func (d *Detector) IsUnclear(input string) bool {
	if len(strings.Fields(input)) < MinWords {
		return true
	}
	if d.policy != PolicyLenient {
		return false
	}
	folded := utils.Fold(input)
	for _, phrase := range vaguePhrases {
		if strings.Contains(folded, phrase) {
			return true
		}
	}
	return false
}
