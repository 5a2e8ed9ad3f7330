package domain

// NegativeThreshold é o limite abaixo do qual a resposta recebe um prefixo empático.
const NegativeThreshold = -0.3

// Score é a polaridade de um texto.
// Na estratégia contínua Value fica em [-1, 1]; na estratégia de contagem Discrete é true
// e Value é -1, 0 ou 1.
type Score struct {
	Value    float64
	Discrete bool
}

// Negative informa se o texto é negativo o suficiente para pedir empatia.
// Para a contagem isso equivale a Value == -1.
func (s Score) Negative() bool {
	return s.Value < NegativeThreshold
}
