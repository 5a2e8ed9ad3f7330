package utils

import (
	"math/rand/v2"
	"time"
)

// Chooser é a fonte de aleatoriedade usada para escolher respostas.
// *rand.Rand de math/rand/v2 satisfaz a interface.
type Chooser interface {
	IntN(n int) int
}

// NewChooser cria um Chooser semeado pelo relógio.
func NewChooser() Chooser {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Pick escolhe um item de forma uniforme. Panica com lista vazia, então quem
// chama precisa garantir que há ao menos um item.
func Pick(c Chooser, items []string) string {
	return items[c.IntN(len(items))]
}
