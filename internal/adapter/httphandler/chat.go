package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// POST /chat JSON {"message", "user_id"} (200 OK, 400, 503)
// GET /chat/{userId}?limit (200 OK)

const anonymousUser = "anonymous"

type ChatHandler struct {
	assistant port.Assistant
}

func RegisterChat(mux *http.ServeMux, assistant port.Assistant) {
	h := ChatHandler{assistant}
	mux.HandleFunc("POST /chat", h.PostMessage)
	mux.HandleFunc("GET /chat/{userId}", h.GetHistory)
}

func (h ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	const op = "ChatHandler.PostMessage"
	log := slog.With("op", op)

	var in ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if in.UserID == "" {
		in.UserID = anonymousUser
	}

	response, err := h.assistant.Chat(r.Context(), in.UserID, in.Message)
	if err != nil {
		writeDomainError(w, err, "user not found")
		log.Error("failed to chat", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: response})
}

func (h ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "ChatHandler.GetHistory"
	log := slog.With("op", op)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, "invalid limit parameter", http.StatusBadRequest)
		return
	}

	rs, err := h.assistant.History(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		writeDomainError(w, err, "user not found")
		log.Error("failed to list chat history", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{History: toChatTurnDTOs(rs)})
}
