package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartManager = (*CartService)(nil)

type CartService struct {
	cart    port.CartStore
	catalog port.CatalogStore
	events  port.ClientEventsProducer
}

func NewCartService(
	cart port.CartStore,
	catalog port.CatalogStore,
	events port.ClientEventsProducer,
) CartService {
	return CartService{cart, catalog, events}
}

// Add puts quantity of the product into the user's cart. A repeated add for
// the same (user, product) pair increments the existing entry atomically in
// the store, there is no read-then-write window.
func (s CartService) Add(
	ctx context.Context, userID, productID string, quantity int,
) (domain.CartEntry, error) {
	const op = "CartService.Add"

	if quantity <= 0 {
		return domain.CartEntry{}, fmt.Errorf(
			"%s: %w: quantity must be positive", op, domain.ErrValidation,
		)
	}

	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return domain.CartEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	entry, err := s.cart.UpsertAdd(ctx, userID, productID, quantity)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	emitEvent(ctx, s.events, domain.EventCartAdd, userID, productID)
	return entry, nil
}

// UserCart lists the user's entries joined with their products. Entries
// whose product no longer resolves are skipped.
func (s CartService) UserCart(
	ctx context.Context, userID string,
) ([]domain.EnrichedCartEntry, error) {
	const op = "CartService.UserCart"

	entries, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enriched := make([]domain.EnrichedCartEntry, 0, len(entries))
	for _, e := range entries {
		p, err := s.catalog.Get(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		enriched = append(enriched, domain.EnrichedCartEntry{
			Entry: e, Product: p,
		})
	}
	return enriched, nil
}

func (s CartService) Remove(ctx context.Context, entryID string) error {
	const op = "CartService.Remove"

	if err := s.cart.DeleteByID(ctx, entryID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
