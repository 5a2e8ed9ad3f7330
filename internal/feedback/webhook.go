package feedback

import (
	"context"
	"fmt"

	"faqbot/internal/domain"
	"faqbot/pkg/webhook"
)

// WebhookSink publica cada feedback como JSON em uma URL.
type WebhookSink struct {
	client *webhook.Client
}

// NewWebhookSink cria um sink sobre um cliente de webhook.
func NewWebhookSink(c *webhook.Client) *WebhookSink {
	return &WebhookSink{client: c}
}

func (s *WebhookSink) Save(ctx context.Context, rec domain.FeedbackRecord) error {
	if err := s.client.Send(ctx, rec); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
