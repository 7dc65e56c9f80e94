package service_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(
	ctx context.Context, prompt string,
) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type fakeCatalog struct {
	products  []domain.Product
	lastQuery domain.ProductQuery
}

func (f *fakeCatalog) InsertIfAbsent(
	_ context.Context, p domain.Product,
) (bool, error) {
	for _, existing := range f.products {
		if existing.Name == p.Name {
			return false, nil
		}
	}
	f.products = append(f.products, p)
	return true, nil
}

func (f *fakeCatalog) Get(
	_ context.Context, productID string,
) (domain.Product, error) {
	for _, p := range f.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeCatalog) List(
	_ context.Context, q domain.ProductQuery,
) ([]domain.Product, error) {
	f.lastQuery = q

	var out []domain.Product
	for _, p := range f.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if len(q.Terms) > 0 && !matchesTerms(p, q.Terms, q.TagTerms) {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListByCategory(
	_ context.Context, category string, limit int,
) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if !strings.Contains(
			strings.ToLower(p.Category), strings.ToLower(category),
		) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) DistinctCategories(
	_ context.Context,
) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range f.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

func matchesTerms(p domain.Product, terms, tagTerms []string) bool {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)
	for _, t := range terms {
		t = strings.ToLower(t)
		if strings.Contains(name, t) || strings.Contains(description, t) {
			return true
		}
	}
	for _, t := range tagTerms {
		for _, tag := range p.Tags {
			if tag == t {
				return true
			}
		}
	}
	return false
}

type fakeCart struct {
	entries []domain.CartEntry
	nextID  int
}

func (f *fakeCart) UpsertAdd(
	_ context.Context, userID, productID string, quantity int,
) (domain.CartEntry, error) {
	for i, e := range f.entries {
		if e.UserID == userID && e.ProductID == productID {
			f.entries[i].Quantity += quantity
			return f.entries[i], nil
		}
	}
	f.nextID++
	entry := domain.CartEntry{
		EntryID:   fmt.Sprintf("entry-%d", f.nextID),
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeCart) ListByUser(
	_ context.Context, userID string,
) ([]domain.CartEntry, error) {
	var out []domain.CartEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCart) DeleteByID(_ context.Context, entryID string) error {
	for i, e := range f.entries {
		if e.EntryID == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeChat struct {
	records   []domain.ChatRecord
	appendErr error
}

func (f *fakeChat) Append(_ context.Context, r domain.ChatRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeChat) ListByUser(
	_ context.Context, userID string, limit int,
) ([]domain.ChatRecord, error) {
	var out []domain.ChatRecord
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeEvents struct {
	events     []domain.ClientEvent
	produceErr error
}

func (f *fakeEvents) ProduceEvent(
	_ context.Context, e domain.ClientEvent,
) error {
	if f.produceErr != nil {
		return f.produceErr
	}
	f.events = append(f.events, e)
	return nil
}
