package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.CatalogStore = (*CatalogRepository)(nil)

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Category    string    `bson:"category"`
	ImageURL    string    `bson:"image_url"`
	Tags        []string  `bson:"tags"`
	InStock     bool      `bson:"in_stock"`
	CreatedAt   time.Time `bson:"created_at"`
}

type CatalogRepository struct {
	coll *mongo.Collection
}

func NewCatalogRepository(c Client) CatalogRepository {
	return CatalogRepository{c.db.Collection(productsCollection)}
}

// EnsureIndexes creates the unique name index InsertIfAbsent relies on.
func (r CatalogRepository) EnsureIndexes(ctx context.Context) error {
	const op = "CatalogRepository.EnsureIndexes"

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// InsertIfAbsent inserts the product unless one with the same name exists.
// The unique name index makes concurrent inserts of one name resolve to a
// single document.
func (r CatalogRepository) InsertIfAbsent(
	ctx context.Context, p domain.Product,
) (bool, error) {
	const op = "CatalogRepository.InsertIfAbsent"

	if _, err := r.coll.InsertOne(ctx, toProductDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (r CatalogRepository) Get(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogRepository.Get"

	var doc productDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toDomain(), nil
}

// List translates a [domain.ProductQuery] into a document query: a
// case-insensitive alternation match over name and description, or a tags
// membership test, AND-constrained by exact category when present.
func (r CatalogRepository) List(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, error) {
	const op = "CatalogRepository.List"

	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if len(q.Terms) > 0 {
		pattern := alternation(q.Terms)
		regex := primitive.Regex{Pattern: pattern, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"tags": bson.M{"$in": q.TagTerms}},
		}
	}

	return r.find(ctx, op, filter, q.Limit)
}

func (r CatalogRepository) ListByCategory(
	ctx context.Context, category string, limit int,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ListByCategory"

	filter := bson.M{"category": primitive.Regex{
		Pattern: regexp.QuoteMeta(category), Options: "i",
	}}
	return r.find(ctx, op, filter, limit)
}

func (r CatalogRepository) DistinctCategories(
	ctx context.Context,
) ([]string, error) {
	const op = "CatalogRepository.DistinctCategories"

	values, err := r.coll.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r CatalogRepository) find(
	ctx context.Context, op string, filter bson.M, limit int,
) ([]domain.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(docs))
	for i, doc := range docs {
		ps[i] = doc.toDomain()
	}
	return ps, nil
}

// alternation joins the escaped terms into one regex, empty terms skipped.
func alternation(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(t))
	}
	return strings.Join(parts, "|")
}

func toProductDoc(p domain.Product) productDoc {
	return productDoc{
		ID:          p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Tags:        p.Tags,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
}

func (doc productDoc) toDomain() domain.Product {
	return domain.Product{
		ProductID:   doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Category:    doc.Category,
		ImageURL:    doc.ImageURL,
		Tags:        doc.Tags,
		InStock:     doc.InStock,
		CreatedAt:   doc.CreatedAt,
	}
}
