package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
	"faqbot/pkg/webhook"
)

func TestWebhookSink(t *testing.T) {
	var got domain.FeedbackRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	rec := sampleRecord("w1")
	require.NoError(t, NewWebhookSink(webhook.New(srv.URL, "")).Save(context.Background(), rec))
	assert.Equal(t, "w1", got.ID)
	assert.Len(t, got.Conversation, 1)
}

func TestWebhookSink_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewWebhookSink(webhook.New(srv.URL, "")).Save(context.Background(), sampleRecord("w2"))
	assert.ErrorIs(t, err, ErrPersistence)
}
