package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
)

// PostgresSink grava feedback na tabela feedback_entries.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink cria um sink sobre uma conexão já migrada.
func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// Save insere um registro. A conversa vai como JSONB.
func (s *PostgresSink) Save(ctx context.Context, rec domain.FeedbackRecord) error {
	convJSON, err := json.Marshal(rec.Conversation)
	if err != nil {
		return fmt.Errorf("%w: erro ao converter conversa para JSON: %w", ErrPersistence, err)
	}

	query := `
    INSERT INTO feedback_entries (id, session_id, feedback, rating, conversation, timestamp)
    VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.SessionID,
		sql.NullString{String: rec.Feedback, Valid: rec.Feedback != ""},
		rec.Rating,
		convJSON,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("%w: erro ao salvar feedback no banco de dados: %w", ErrPersistence, err)
	}

	logging.Debugf("FEEDBACK_DB: feedback %s salvo para a sessão %s (nota %d)", rec.ID, rec.SessionID, rec.Rating)
	return nil
}

// Recent retorna os últimos limit registros.
func (s *PostgresSink) Recent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error) {
	query := `
    SELECT id, session_id, feedback, rating, conversation, timestamp
    FROM feedback_entries
    ORDER BY timestamp DESC
    LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar feedback no banco de dados: %w", err)
	}
	defer rows.Close()

	var out []domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		var text sql.NullString
		var convJSON []byte

		if err := rows.Scan(&rec.ID, &rec.SessionID, &text, &rec.Rating, &convJSON, &rec.Timestamp); err != nil {
			logging.Warnf("Erro ao escanear linha de feedback: %v", err)
			continue // pula linhas malformadas
		}
		rec.Feedback = text.String

		if err := json.Unmarshal(convJSON, &rec.Conversation); err != nil {
			logging.Warnf("Erro ao fazer unmarshal da conversa do feedback %s: %v", rec.ID, err)
			rec.Conversation = []domain.Turn{}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração das linhas de feedback: %w", err)
	}
	return out, nil
}
