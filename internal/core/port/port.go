package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Driven ports.

type CatalogStore interface {
	InsertIfAbsent(ctx context.Context, p domain.Product) (bool, error)
	Get(ctx context.Context, productID string) (domain.Product, error)
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	ListByCategory(
		ctx context.Context, category string, limit int,
	) ([]domain.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type CartStore interface {
	UpsertAdd(
		ctx context.Context, userID, productID string, quantity int,
	) (domain.CartEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CartEntry, error)
	DeleteByID(ctx context.Context, entryID string) error
}

type ChatStore interface {
	Append(ctx context.Context, r domain.ChatRecord) error
	ListByUser(
		ctx context.Context, userID string, limit int,
	) ([]domain.ChatRecord, error)
}

// TextCompleter is the narrow capability of the external generative text
// provider: one prompt, one response, no memory across calls.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ClientEventsProducer interface {
	ProduceEvent(ctx context.Context, e domain.ClientEvent) error
}

// Driving ports.

type CatalogProvider interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Product(ctx context.Context, productID string) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type ProductsSearcher interface {
	SearchProducts(
		ctx context.Context, p domain.SearchParams,
	) ([]domain.Product, error)
}

type Recommender interface {
	Recommend(
		ctx context.Context, userID, currentProductID string,
	) (domain.Recommendation, error)
}

type CartManager interface {
	Add(
		ctx context.Context, userID, productID string, quantity int,
	) (domain.CartEntry, error)
	UserCart(
		ctx context.Context, userID string,
	) ([]domain.EnrichedCartEntry, error)
	Remove(ctx context.Context, entryID string) error
}

type Assistant interface {
	Chat(ctx context.Context, userID, message string) (string, error)
	History(
		ctx context.Context, userID string, limit int,
	) ([]domain.ChatRecord, error)
}
