package utils

import "faqbot/internal/domain"

// EmpathyPrefixes são colocados antes da resposta quando o sentimento é negativo.
// Cada um já termina com espaço.
var EmpathyPrefixes = []string{
	"I'm sorry to hear that. ",
	"I understand this might be frustrating. ",
	"I apologize for the inconvenience. ",
}

// ClarificationResponses respondem a mensagens ambíguas.
var ClarificationResponses = []string{
	"Could you please provide more details about what you're looking for?",
	"I want to make sure I understand correctly. Could you rephrase your question?",
	"I'd be happy to help! Could you tell me more about what you need?",
}

// DefaultResponses são usadas sem casamento e com sentimento neutro ou positivo.
var DefaultResponses = []string{
	"I'm not entirely sure about that. Could you provide more details?",
	"That's an interesting question. Let me find out more information for you.",
	"I'd be happy to help with that. Could you clarify your question?",
}

// ApologeticResponses substituem DefaultResponses quando o sentimento é negativo.
var ApologeticResponses = []string{
	"I apologize for the confusion. Let me help clarify this for you.",
	"I'm sorry I couldn't find a better answer. Let me look into this further.",
	"I want to make sure I get this right. Could you provide more details?",
}

// Compose prefixa base com uma frase empática se o sentimento for negativo.
func Compose(c Chooser, base string, score domain.Score) string {
	if !score.Negative() {
		return base
	}
	return Pick(c, EmpathyPrefixes) + base
}

// BuildDefault escolhe a resposta padrão de acordo com o sentimento.
func BuildDefault(c Chooser, score domain.Score) string {
	if score.Negative() {
		return Pick(c, ApologeticResponses)
	}
	return Pick(c, DefaultResponses)
}

// BuildClarification pede mais detalhes ao usuário.
func BuildClarification(c Chooser) string {
	return Pick(c, ClarificationResponses)
}
