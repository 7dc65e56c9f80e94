package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST /products/seed (200 OK, 503 Service unavailable)
// POST /products JSON (201 Created, 400 Bad request)
// GET /products?category&search&limit&user_id (200 OK)
// GET /products/{id} (200 OK, 404 Not found)
// GET /products/recommendations/{userId} (200 OK, 503 Service unavailable)
// GET /categories (200 OK)

type ProductsHandler struct {
	catalog     port.CatalogProvider
	searcher    port.ProductsSearcher
	recommender port.Recommender
}

func RegisterProducts(
	mux *http.ServeMux,
	catalog port.CatalogProvider,
	searcher port.ProductsSearcher,
	recommender port.Recommender,
) {
	h := ProductsHandler{catalog, searcher, recommender}
	mux.HandleFunc("POST /products/seed", h.SeedProducts)
	mux.HandleFunc("POST /products", h.PostProduct)
	mux.HandleFunc("GET /products", h.GetProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc(
		"GET /products/recommendations/{userId}", h.GetRecommendations,
	)
	mux.HandleFunc("GET /categories", h.GetCategories)
}

func (h ProductsHandler) SeedProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.SeedProducts"
	log := slog.With("op", op)

	if err := h.catalog.Seed(r.Context()); err != nil {
		writeDomainError(w, err, "product not found")
		log.Error("failed to seed products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Products seeded successfully",
	})
	log.Info("catalog seeding requested")
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var in ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.catalog.Create(r.Context(), domain.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Tags:        in.Tags,
	})
	if err != nil {
		writeDomainError(w, err, "product not found")
		log.Warn("failed to create product", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductDTO(p))
	log.Info("product created", "productID", p.ProductID)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, "invalid limit parameter", http.StatusBadRequest)
		return
	}

	params := domain.SearchParams{
		Query:    r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		UserID:   r.URL.Query().Get("user_id"),
	}

	ps, err := h.searcher.SearchProducts(r.Context(), params)
	if err != nil {
		writeDomainError(w, err, "product not found")
		log.Error("failed to search products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductDTOs(ps))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "Product not found")
		log.Warn("failed to get product", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductDTO(p))
}

func (h ProductsHandler) GetRecommendations(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.GetRecommendations"
	log := slog.With("op", op)

	rec, err := h.recommender.Recommend(
		r.Context(), r.PathValue("userId"), r.URL.Query().Get("product"),
	)
	if err != nil {
		writeDomainError(w, err, "user not found")
		log.Error("failed to compose recommendations", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Recommendations:       toProductDTOs(rec.Products),
		RecommendedCategories: rec.Categories,
	})
}

func (h ProductsHandler) GetCategories(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err, "categories not found")
		log.Error("failed to list categories", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cs})
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
