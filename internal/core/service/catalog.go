package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*CatalogService)(nil)

type CatalogService struct {
	catalog   port.CatalogStore
	completer port.TextCompleter
}

func NewCatalogService(
	catalog port.CatalogStore, completer port.TextCompleter,
) CatalogService {
	return CatalogService{catalog, completer}
}

// Seed populates the catalog from the built-in sample list, generating a
// description for each product. Re-seeding inserts nothing new: products
// are keyed on name. A completer failure aborts seeding, no product is
// written without its description.
func (s CatalogService) Seed(ctx context.Context) error {
	const op = "CatalogService.Seed"
	log := slog.With("op", op)

	var inserted int
	for _, sample := range sampleProducts {
		description, err := s.describe(ctx, sample.Name, sample.Category)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		p := newProduct(domain.ProductInput{
			Name:        sample.Name,
			Description: description,
			Price:       sample.Price,
			Category:    sample.Category,
			ImageURL:    sample.ImageURL,
			Tags:        sample.Tags,
		})

		ok, err := s.catalog.InsertIfAbsent(ctx, p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			inserted++
		}
	}

	log.Info("catalog seeded", "inserted", inserted)
	return nil
}

func (s CatalogService) Create(
	ctx context.Context, in domain.ProductInput,
) (domain.Product, error) {
	const op = "CatalogService.Create"

	if in.Name == "" {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: name is required", op, domain.ErrValidation,
		)
	}
	if in.Price < 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: price must be non-negative", op, domain.ErrValidation,
		)
	}

	if in.Description == "" {
		description, err := s.describe(ctx, in.Name, in.Category)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}
		in.Description = description
	}

	p := newProduct(in)
	ok, err := s.catalog.InsertIfAbsent(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: product name already exists", op, domain.ErrValidation,
		)
	}
	return p, nil
}

func (s CatalogService) Product(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogService.Product"

	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	cs, err := s.catalog.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s CatalogService) describe(
	ctx context.Context, name, category string,
) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a compelling, detailed product description for: %s in the"+
			" %s category. Make it sound appealing and highlight key features."+
			" Keep it under 150 words.",
		name, category,
	)
	return s.completer.Complete(ctx, prompt)
}

func newProduct(in domain.ProductInput) domain.Product {
	return domain.Product{
		ProductID:   uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Tags:        in.Tags,
		InStock:     true,
		CreatedAt:   time.Now().UTC(),
	}
}
