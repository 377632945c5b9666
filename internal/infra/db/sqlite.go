package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tickets (
    ticket_number INTEGER PRIMARY KEY,
    created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_questions (
    ticket_number  INTEGER NOT NULL REFERENCES tickets (ticket_number) ON DELETE CASCADE,
    position       INTEGER NOT NULL,
    question_text  TEXT    NOT NULL,
    correct_answer TEXT    NOT NULL,
    options        TEXT    NOT NULL,
    PRIMARY KEY (ticket_number, position)
);

CREATE TABLE IF NOT EXISTS user_sessions (
    user_id    INTEGER PRIMARY KEY,
    session_id TEXT    NOT NULL,
    data       TEXT    NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// OpenSQLite открывает файл SQLite, применяет pragma и создает таблицы
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	const op = "db.OpenSQLite"

	if dsn == "" {
		dsn = "file:quizbot.db?cache=shared&mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}
	// pragma действуют в пределах соединения, поэтому соединение одно
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to apply pragmas: %w", op, err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}

	log.Info().Str("driver", "sqlite").Msg("database connected")
	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
