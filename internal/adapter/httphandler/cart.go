package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// POST /cart JSON {"product_id", "user_id", "quantity"} (200 OK, 400, 404)
// GET /cart/{userId} (200 OK)
// DELETE /cart/{itemId} (200 OK, 404 Not found)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cart port.CartManager) {
	h := CartHandler{cart}
	mux.HandleFunc("POST /cart", h.PostCartItem)
	mux.HandleFunc("GET /cart/{userId}", h.GetCart)
	mux.HandleFunc("DELETE /cart/{itemId}", h.DeleteCartItem)
}

func (h CartHandler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCartItem"
	log := slog.With("op", op)

	var in CartItemCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	entry, err := h.cart.Add(
		r.Context(), in.UserID, in.ProductID, in.Quantity,
	)
	if err != nil {
		writeDomainError(w, err, "Product not found")
		log.Warn("failed to add to cart", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartItemDTO(entry))
	log.Info("added to cart",
		"userID", entry.UserID, "productID", entry.ProductID)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	enriched, err := h.cart.UserCart(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeDomainError(w, err, "cart not found")
		log.Error("failed to list cart", "err", err)
		return
	}

	items := make([]EnrichedCartItem, len(enriched))
	for i, e := range enriched {
		items[i] = EnrichedCartItem{
			CartItem: toCartItemDTO(e.Entry),
			Product:  toProductDTO(e.Product),
		}
	}

	writeJSON(w, http.StatusOK, CartResponse{CartItems: items})
}

func (h CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCartItem"
	log := slog.With("op", op)

	if err := h.cart.Remove(r.Context(), r.PathValue("itemId")); err != nil {
		writeDomainError(w, err, "Cart item not found")
		log.Warn("failed to remove cart item", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Item removed from cart",
	})
}
