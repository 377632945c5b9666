package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// TicketsCollection коллекция билетов
	TicketsCollection = "tickets"
	// SessionsCollection коллекция сессий пользователей
	SessionsCollection = "usersessions"
)

// OpenMongo подключается к MongoDB и создает уникальные индексы
func OpenMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	const op = "db.OpenMongo"

	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if database == "" {
		database = "quiz"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%s: failed to ping: %w", op, err)
	}

	mdb := client.Database(database)
	indexes := map[string]string{
		TicketsCollection:  "ticketNumber",
		SessionsCollection: "userId",
	}
	for collection, key := range indexes {
		_, err := mdb.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("%s: failed to create index on %s.%s: %w", op, collection, key, err)
		}
	}

	log.Info().Str("driver", "mongo").Str("database", database).Msg("database connected")
	return client, mdb, nil
}
