package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/infra/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepository хранилище сессий в MongoDB с уникальным индексом по userId
type MongoSessionRepository struct {
	sessions *mongo.Collection
}

// NewMongoSessionRepository создает новый экземпляр MongoSessionRepository
func NewMongoSessionRepository(database *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{sessions: database.Collection(db.SessionsCollection)}
}

func (r *MongoSessionRepository) Get(ctx context.Context, userID int64) (*model.UserSession, error) {
	var session model.UserSession
	err := r.sessions.FindOne(ctx, bson.M{"userId": userID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Put атомарно заменяет документ сессии пользователя (upsert)
func (r *MongoSessionRepository) Put(ctx context.Context, session *model.UserSession) error {
	_, err := r.sessions.ReplaceOne(ctx,
		bson.M{"userId": session.UserID},
		session,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) DeleteAll(ctx context.Context, userID int64) error {
	if _, err := r.sessions.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
