package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Price       float64   `json:"price"`
		Category    string    `json:"category"`
		ImageURL    string    `json:"image_url"`
		Tags        []string  `json:"tags"`
		InStock     bool      `json:"in_stock"`
		CreatedAt   time.Time `json:"created_at"`
	}

	ProductCreate struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Category    string   `json:"category"`
		ImageURL    string   `json:"image_url"`
		Tags        []string `json:"tags"`
	}

	CartItem struct {
		ID        string    `json:"id"`
		ProductID string    `json:"product_id"`
		UserID    string    `json:"user_id"`
		Quantity  int       `json:"quantity"`
		AddedAt   time.Time `json:"added_at"`
	}

	EnrichedCartItem struct {
		CartItem
		Product Product `json:"product"`
	}

	CartItemCreate struct {
		ProductID string `json:"product_id"`
		UserID    string `json:"user_id"`
		Quantity  int    `json:"quantity"`
	}

	ChatRequest struct {
		Message string `json:"message"`
		UserID  string `json:"user_id"`
	}

	ChatResponse struct {
		Response string `json:"response"`
	}

	ChatTurn struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		Message   string    `json:"message"`
		Response  string    `json:"response"`
		Timestamp time.Time `json:"timestamp"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}

	CartResponse struct {
		CartItems []EnrichedCartItem `json:"cart_items"`
	}

	RecommendationsResponse struct {
		Recommendations       []Product `json:"recommendations"`
		RecommendedCategories []string  `json:"recommended_categories"`
	}

	CategoriesResponse struct {
		Categories []string `json:"categories"`
	}

	HistoryResponse struct {
		History []ChatTurn `json:"history"`
	}
)

func toProductDTO(p domain.Product) Product {
	return Product{
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

func toProductDTOs(ps []domain.Product) []Product {
	dtos := make([]Product, len(ps))
	for i, p := range ps {
		dtos[i] = toProductDTO(p)
	}
	return dtos
}

func toCartItemDTO(e domain.CartEntry) CartItem {
	return CartItem{
		ID:        e.EntryID,
		ProductID: e.ProductID,
		UserID:    e.UserID,
		Quantity:  e.Quantity,
		AddedAt:   e.AddedAt,
	}
}

func toChatTurnDTOs(rs []domain.ChatRecord) []ChatTurn {
	dtos := make([]ChatTurn, len(rs))
	for i, r := range rs {
		dtos[i] = ChatTurn{
			ID:        r.RecordID,
			UserID:    r.UserID,
			Message:   r.Message,
			Response:  r.Response,
			Timestamp: r.Timestamp,
		}
	}
	return dtos
}
