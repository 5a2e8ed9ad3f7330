package utils

import "golang.org/x/text/cases"

// Fold aplica case folding Unicode, usado em todas as comparações sem distinção de caixa.
func Fold(s string) string {
	return cases.Fold().String(s)
}
