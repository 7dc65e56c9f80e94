package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.CartStore = (*CartRepository)(nil)

type cartDoc struct {
	ID        string    `bson:"_id"`
	ProductID string    `bson:"product_id"`
	UserID    string    `bson:"user_id"`
	Quantity  int       `bson:"quantity"`
	AddedAt   time.Time `bson:"added_at"`
}

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(c Client) CartRepository {
	return CartRepository{c.db.Collection(cartCollection)}
}

// UpsertAdd increments the (user, product) entry quantity, creating the
// entry when absent. The $inc upsert is a single atomic document operation,
// concurrent adds for the same pair cannot lose updates.
func (r CartRepository) UpsertAdd(
	ctx context.Context, userID, productID string, quantity int,
) (domain.CartEntry, error) {
	const op = "CartRepository.UpsertAdd"

	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{
		"$inc": bson.M{"quantity": quantity},
		"$setOnInsert": bson.M{
			"_id":      uuid.NewString(),
			"added_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc cartDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toDomain(), nil
}

func (r CartRepository) ListByUser(
	ctx context.Context, userID string,
) ([]domain.CartEntry, error) {
	const op = "CartRepository.ListByUser"

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]domain.CartEntry, len(docs))
	for i, doc := range docs {
		entries[i] = doc.toDomain()
	}
	return entries, nil
}

func (r CartRepository) DeleteByID(ctx context.Context, entryID string) error {
	const op = "CartRepository.DeleteByID"

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (doc cartDoc) toDomain() domain.CartEntry {
	return domain.CartEntry{
		EntryID:   doc.ID,
		ProductID: doc.ProductID,
		UserID:    doc.UserID,
		Quantity:  doc.Quantity,
		AddedAt:   doc.AddedAt,
	}
}
