package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
	"faqbot/internal/sessions"
)

const (
	ThanksMessage    = "Thank you for your valuable feedback!"
	SoftErrorMessage = "We encountered an error saving your feedback. Thank you anyway!"
	RatingHelpful    = 1
	RatingNotHelpful = 0
)

// Conversation é o que o Collector precisa saber da sessão.
type Conversation interface {
	ID() string
	Last(n int) []domain.Turn
}

// Collector monta registros de feedback e nunca propaga erro de gravação.
type Collector struct {
	sink Sink
	conv Conversation
	now  func() time.Time
}

// NewCollector cria um Collector para uma sessão.
func NewCollector(sink Sink, conv Conversation) *Collector {
	return &Collector{sink: sink, conv: conv, now: time.Now}
}

// Collect grava o feedback com os últimos turnos e retorna a mensagem para o usuário.
func (c *Collector) Collect(ctx context.Context, text string, rating int) string {
	rec := domain.FeedbackRecord{
		ID:           uuid.NewString(),
		SessionID:    c.conv.ID(),
		Timestamp:    c.now(),
		Feedback:     text,
		Rating:       rating,
		Conversation: c.conv.Last(sessions.FeedbackWindow),
	}
	if err := c.sink.Save(ctx, rec); err != nil {
		logging.Errorf("Error saving feedback: %v", err)
		return SoftErrorMessage
	}
	return ThanksMessage
}
