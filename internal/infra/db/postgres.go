package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tickets (
    ticket_number INTEGER PRIMARY KEY,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ticket_questions (
    ticket_number  INTEGER NOT NULL REFERENCES tickets (ticket_number) ON DELETE CASCADE,
    position       INTEGER NOT NULL,
    question_text  TEXT    NOT NULL,
    correct_answer TEXT    NOT NULL,
    options        JSONB   NOT NULL,
    PRIMARY KEY (ticket_number, position)
);

CREATE TABLE IF NOT EXISTS user_sessions (
    user_id    BIGINT PRIMARY KEY,
    session_id TEXT        NOT NULL,
    data       JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// OpenPostgres устанавливает подключение к PostgreSQL и создает таблицы
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "db.OpenPostgres"

	connConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}

	log.Info().Str("driver", "postgres").Msg("database connected")
	return pool, nil
}
