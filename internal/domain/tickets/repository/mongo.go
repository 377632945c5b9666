package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/infra/db"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRepository хранилище билетов в MongoDB, один документ на билет
type MongoTicketRepository struct {
	tickets *mongo.Collection
}

// NewMongoTicketRepository создает новый экземпляр MongoTicketRepository
func NewMongoTicketRepository(database *mongo.Database) *MongoTicketRepository {
	return &MongoTicketRepository{tickets: database.Collection(db.TicketsCollection)}
}

// GetTicket получает билет по номеру. Если билета нет, возвращает nil
func (r *MongoTicketRepository) GetTicket(ctx context.Context, ticketNumber int) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.tickets.FindOne(ctx, bson.M{"ticketNumber": ticketNumber}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

// ListTicketNumbers возвращает номера всех билетов по возрастанию
func (r *MongoTicketRepository) ListTicketNumbers(ctx context.Context) ([]int, error) {
	cursor, err := r.tickets.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"ticketNumber": 1}).
			SetSort(bson.D{{Key: "ticketNumber", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer cursor.Close(ctx)

	numbers := make([]int, 0)
	for cursor.Next(ctx) {
		var doc struct {
			TicketNumber int `bson:"ticketNumber"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode ticket number: %w", err)
		}
		numbers = append(numbers, doc.TicketNumber)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over tickets: %w", err)
	}
	return numbers, nil
}

// SampleRandomQuestions выбирает до n различных вопросов из всех билетов через $sample
func (r *MongoTicketRepository) SampleRandomQuestions(ctx context.Context, n int) ([]model.Question, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$questions"}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$questions"}}},
	}
	cursor, err := r.tickets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := make([]model.Question, 0, n)
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode sampled questions: %w", err)
	}
	return questions, nil
}

// ticketDocument билет с меткой загрузки, по которой откатывается неудачная вставка
type ticketDocument struct {
	model.Ticket `bson:",inline"`
	ImportID     string `bson:"importId"`
}

// AppendTickets сохраняет билеты и возвращает их количество.
// Если вставка обрывается на середине, уже записанные билеты этой загрузки удаляются.
func (r *MongoTicketRepository) AppendTickets(ctx context.Context, tickets []model.Ticket) (int, error) {
	if len(tickets) == 0 {
		return 0, nil
	}
	importID := uuid.NewString()
	now := time.Now().UTC()
	docs := make([]interface{}, len(tickets))
	for i, ticket := range tickets {
		ticket.CreatedAt = now
		docs[i] = ticketDocument{Ticket: ticket, ImportID: importID}
	}

	_, err := r.tickets.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		if _, delErr := r.tickets.DeleteMany(context.WithoutCancel(ctx), bson.M{"importId": importID}); delErr != nil {
			return 0, fmt.Errorf("failed to insert tickets: %w (rollback failed: %v)", err, delErr)
		}
		return 0, fmt.Errorf("failed to insert tickets: %w", err)
	}
	return len(tickets), nil
}
