package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ChatStore = (*ChatRepository)(nil)

type chatDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Message   string    `bson:"message"`
	Response  string    `bson:"response"`
	Timestamp time.Time `bson:"timestamp"`
}

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(c Client) ChatRepository {
	return ChatRepository{c.db.Collection(chatCollection)}
}

func (r ChatRepository) Append(
	ctx context.Context, rec domain.ChatRecord,
) error {
	const op = "ChatRepository.Append"

	doc := chatDoc{
		ID:        rec.RecordID,
		UserID:    rec.UserID,
		Message:   rec.Message,
		Response:  rec.Response,
		Timestamp: rec.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListByUser returns the user's most recent turns, newest first.
func (r ChatRepository) ListByUser(
	ctx context.Context, userID string, limit int,
) ([]domain.ChatRecord, error) {
	const op = "ChatRepository.ListByUser"

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []chatDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rs := make([]domain.ChatRecord, len(docs))
	for i, doc := range docs {
		rs[i] = domain.ChatRecord{
			RecordID:  doc.ID,
			UserID:    doc.UserID,
			Message:   doc.Message,
			Response:  doc.Response,
			Timestamp: doc.Timestamp,
		}
	}
	return rs, nil
}
