package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100

	maxRecommendedCategories = 5
	productsPerCategory      = 2
	cartContextSize          = 10

	noHistoryMarker = "New user with no purchase history"
)

var _ port.ProductsSearcher = (*QueryComposer)(nil)
var _ port.Recommender = (*QueryComposer)(nil)

// QueryComposer turns free-text search queries and cart history into
// catalog queries.
//
// Search expansion degrades gracefully: when the completer is unavailable
// the raw query alone is matched and the failure is only logged.
// Recommendation composition has no degraded form and surfaces completer
// failures to the caller.
type QueryComposer struct {
	completer port.TextCompleter
	catalog   port.CatalogStore
	cart      port.CartStore
	events    port.ClientEventsProducer
}

func NewQueryComposer(
	completer port.TextCompleter,
	catalog port.CatalogStore,
	cart port.CartStore,
	events port.ClientEventsProducer,
) QueryComposer {
	return QueryComposer{completer, catalog, cart, events}
}

func (c QueryComposer) SearchProducts(
	ctx context.Context, p domain.SearchParams,
) ([]domain.Product, error) {
	const op = "QueryComposer.SearchProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := domain.ProductQuery{
		Category: p.Category,
		Limit:    normalizeLimit(p.Limit),
	}

	if p.Query != "" {
		terms := []string{p.Query}
		keywords, err := c.expandQuery(ctx, p.Query, p.Category)
		if err != nil {
			log.Warn("search expansion unavailable, using raw query only",
				"query", p.Query, "err", err)
		} else {
			terms = append(terms, keywords...)
		}
		q.Terms = terms
		q.TagTerms = lowerAll(terms)
	}

	ps, err := c.catalog.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Query != "" {
		c.emit(ctx, domain.EventSearch, p.UserID, p.Query)
	}
	return ps, nil
}

// expandQuery asks the completer for related keywords. The returned list
// may be empty when the response contains nothing usable.
func (c QueryComposer) expandQuery(
	ctx context.Context, query, category string,
) ([]string, error) {
	var scope string
	if category != "" {
		scope = fmt.Sprintf(" in the %s category", category)
	}
	prompt := fmt.Sprintf(
		"For the search query '%s'%s, provide 5-10 relevant product search"+
			" terms or related keywords that would help find similar items."+
			" Return only the keywords separated by commas, no explanations.",
		query, scope,
	)

	resp, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return splitTerms(resp), nil
}

func (c QueryComposer) Recommend(
	ctx context.Context, userID, currentProductID string,
) (domain.Recommendation, error) {
	const op = "QueryComposer.Recommend"

	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}

	// currentProductID is accepted for API compatibility and does not
	// influence composition yet.
	_ = currentProductID

	cartCtx, err := c.cartContext(ctx, userID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(
		"Based on this context: %s. Recommend 3-5 product categories or"+
			" types that would complement their interests."+
			" Return only category names separated by commas.",
		cartCtx,
	)

	resp, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}

	categories := lowerAll(splitTerms(resp))
	if len(categories) > maxRecommendedCategories {
		categories = categories[:maxRecommendedCategories]
	}

	var products []domain.Product
	for _, category := range categories {
		ps, err := c.catalog.ListByCategory(ctx, category, productsPerCategory)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, ps...)
	}

	return domain.Recommendation{Products: products, Categories: categories}, nil
}

// cartContext describes the user's cart as "name (category)" lines for the
// recommendation prompt.
func (c QueryComposer) cartContext(
	ctx context.Context, userID string,
) (string, error) {
	entries, err := c.cart.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(entries) > cartContextSize {
		entries = entries[:cartContextSize]
	}

	var items []string
	for _, e := range entries {
		p, err := c.catalog.Get(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return "", err
		}
		items = append(items, fmt.Sprintf("%s (%s)", p.Name, p.Category))
	}

	if len(items) == 0 {
		return noHistoryMarker, nil
	}
	return fmt.Sprintf(
		"User has these items in cart/history: %s", strings.Join(items, ", "),
	), nil
}

func (c QueryComposer) emit(ctx context.Context, eventType, userID, subject string) {
	emitEvent(ctx, c.events, eventType, userID, subject)
}

// emitEvent produces an analytics event best-effort: failures are logged
// and never surfaced to the request path.
func emitEvent(
	ctx context.Context,
	events port.ClientEventsProducer,
	eventType, userID, subject string,
) {
	if events == nil {
		return
	}
	e := domain.ClientEvent{
		EventType: eventType,
		UserID:    userID,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	}
	if err := events.ProduceEvent(ctx, e); err != nil {
		slog.Warn("failed to produce client event",
			"eventType", eventType, "err", err)
	}
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultSearchLimit
	case limit > maxSearchLimit:
		return maxSearchLimit
	}
	return limit
}

// splitTerms parses a comma-separated completion, trimming whitespace and
// dropping empty fragments.
func splitTerms(s string) []string {
	var terms []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		terms = append(terms, t)
	}
	return terms
}

func lowerAll(terms []string) []string {
	ls := make([]string, len(terms))
	for i, t := range terms {
		ls[i] = strings.ToLower(t)
	}
	return ls
}
