package knowledge

import "faqbot/internal/domain"

// Default retorna a base embutida usada quando não há arquivo.
func Default() *domain.KnowledgeBase {
	kb := domain.NewKnowledgeBase()
	kb.Add("greetings", domain.IntentEntry{
		Patterns:  []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"},
		Responses: []string{"Hello! How can I assist you today?", "Hi there! What can I help you with?"},
	})
	kb.Add("goodbye", domain.IntentEntry{
		Patterns:  []string{"bye", "goodbye", "see you", "farewell"},
		Responses: []string{"Goodbye! Have a great day!", "Thank you for chatting with us. Goodbye!"},
	})
	kb.Add("help", domain.IntentEntry{
		Patterns:  []string{"help", "support", "assistance"},
		Responses: []string{"I can help you with general inquiries, product information, and more. What would you like to know?"},
	})
	kb.Add("thanks", domain.IntentEntry{
		Patterns:  []string{"thank", "thanks", "appreciate"},
		Responses: []string{"You're welcome!", "Happy to help!"},
	})
	kb.Add("about", domain.IntentEntry{
		Patterns:  []string{"who are you", "what are you", "your name"},
		Responses: []string{"I'm a rule-based chatbot designed to help answer your questions."},
	})
	return kb
}
