package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"faqbot/internal/logging"
)

// Open abre a conexão com o PostgreSQL, testa com ping e garante o schema.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL não configurada")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com o banco de dados: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com o banco de dados (ping): %w", err)
	}

	logging.Infof("Conexão com o banco de dados PostgreSQL estabelecida com sucesso!")
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate cria a tabela de feedback, se ela não existir.
func Migrate(ctx context.Context, db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS feedback_entries (
        id UUID PRIMARY KEY,
        session_id VARCHAR(64) NOT NULL,
        feedback TEXT,
        rating INTEGER NOT NULL,
        conversation JSONB NOT NULL, -- últimos turnos da conversa
        timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
    );`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("erro ao criar tabela feedback_entries: %w", err)
	}
	logging.Infof("Tabela 'feedback_entries' verificada/criada com sucesso.")
	return nil
}
