package app

import (
	"context"
	"fmt"
	"math/rand"

	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	sessionsRepo "github.com/IT-Nick/quizbot/internal/domain/sessions/repository"
	ticketsRepo "github.com/IT-Nick/quizbot/internal/domain/tickets/repository"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/db"
	"github.com/rs/zerolog/log"
)

// Storage хранилища билетов и сессий выбранного драйвера
type Storage struct {
	Tickets  quiz.QuestionStore
	Sessions quiz.SessionStore
	close    func() error
}

// Close закрывает соединение с базой
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// InitStorage открывает хранилище по storage.driver
func InitStorage(ctx context.Context, cfg *config.Config, rnd *rand.Rand) (*Storage, error) {
	const op = "app.InitStorage"

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := db.OpenPostgres(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Storage{
			Tickets:  ticketsRepo.NewTicketRepository(pool),
			Sessions: sessionsRepo.NewSessionRepository(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Storage{
			Tickets:  ticketsRepo.NewSQLiteTicketRepository(sqlDB),
			Sessions: sessionsRepo.NewSQLiteSessionRepository(sqlDB),
			close:    sqlDB.Close,
		}, nil

	case config.DriverMongo:
		client, database, err := db.OpenMongo(ctx, cfg.Storage.DSN, cfg.Storage.Database)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Storage{
			Tickets:  ticketsRepo.NewMongoTicketRepository(database),
			Sessions: sessionsRepo.NewMongoSessionRepository(database),
			close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return &Storage{
			Tickets:  ticketsRepo.NewMemoryTicketRepository(rnd),
			Sessions: sessionsRepo.NewMemorySessionRepository(),
		}, nil

	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}
}
