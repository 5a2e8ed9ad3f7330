package domain

import "time"

// FeedbackRecord é o registro persistido a cada avaliação do usuário.
type FeedbackRecord struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	Feedback     string    `json:"feedback"`
	Rating       int       `json:"rating"`
	Conversation []Turn    `json:"conversation"`
}
