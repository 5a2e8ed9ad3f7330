// Package feedback persiste as avaliações do usuário junto com os últimos turnos.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"faqbot/internal/domain"
)

// ErrPersistence embrulha qualquer falha de escrita de um Sink.
var ErrPersistence = errors.New("erro ao persistir feedback")

// Sink grava registros de feedback.
type Sink interface {
	Save(ctx context.Context, rec domain.FeedbackRecord) error
}

// Reader lista registros gravados, do mais recente para o mais antigo.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error)
}

// Kind seleciona a implementação de Sink.
type Kind string

const (
	KindFile     Kind = "file"
	KindPostgres Kind = "postgres"
	KindWebhook  Kind = "webhook"
	KindNone     Kind = "none"
)

// ParseKind valida o nome de um sink.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFile, KindPostgres, KindWebhook, KindNone:
		return k, nil
	case "":
		return KindFile, nil
	default:
		return "", fmt.Errorf("sink de feedback desconhecido: %q", s)
	}
}

// NopSink descarta o feedback.
type NopSink struct{}

func (NopSink) Save(context.Context, domain.FeedbackRecord) error { return nil }
