package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const emptyCartMarker = "empty"

var _ port.Assistant = (*ConversationService)(nil)

// ConversationService answers user messages with the cart contents embedded
// as prompt context and records every successful turn.
type ConversationService struct {
	completer port.TextCompleter
	cart      port.CartStore
	catalog   port.CatalogStore
	chat      port.ChatStore
	events    port.ClientEventsProducer
}

func NewConversationService(
	completer port.TextCompleter,
	cart port.CartStore,
	catalog port.CatalogStore,
	chat port.ChatStore,
	events port.ClientEventsProducer,
) ConversationService {
	return ConversationService{completer, cart, catalog, chat, events}
}

// Chat runs one conversation turn. On completer failure nothing is
// recorded, the turn simply did not happen.
func (s ConversationService) Chat(
	ctx context.Context, userID, message string,
) (string, error) {
	const op = "ConversationService.Chat"

	if message == "" {
		return "", fmt.Errorf(
			"%s: %w: message is required", op, domain.ErrValidation,
		)
	}

	cartNames, err := s.cartNames(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(
		"User's cart contains: %s. User asks: %s", cartNames, message,
	)
	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	record := domain.ChatRecord{
		RecordID:  uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}
	if err := s.chat.Append(ctx, record); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	emitEvent(ctx, s.events, domain.EventChat, userID, message)
	return response, nil
}

func (s ConversationService) History(
	ctx context.Context, userID string, limit int,
) ([]domain.ChatRecord, error) {
	const op = "ConversationService.History"

	rs, err := s.chat.ListByUser(ctx, userID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rs, nil
}

func (s ConversationService) cartNames(
	ctx context.Context, userID string,
) (string, error) {
	entries, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(entries) > cartContextSize {
		entries = entries[:cartContextSize]
	}

	var names []string
	for _, e := range entries {
		p, err := s.catalog.Get(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return "", err
		}
		names = append(names, p.Name)
	}

	if len(names) == 0 {
		return emptyCartMarker, nil
	}
	return strings.Join(names, ", "), nil
}
