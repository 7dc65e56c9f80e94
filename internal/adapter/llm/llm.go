package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const systemPersona = "You are an AI shopping assistant for an e-commerce" +
	" platform. Help users find products, answer questions about items, and" +
	" provide shopping recommendations. Be friendly, helpful, and concise."

const completionsPath = "/chat/completions"

var _ port.TextCompleter = (*Completer)(nil)

// Completer issues single prompt/response round trips to an OpenAI-style
// chat completions endpoint. Every call is independent: the only fixed
// state is the system persona and the model selection, continuity must be
// supplied by the caller inside the prompt.
type Completer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewCompleter(cfg Config) Completer {
	return Completer{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

func (c Completer) Complete(
	ctx context.Context, prompt string,
) (string, error) {
	const op = "Completer.Complete"

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPersona},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf(
			"%s: %w: provider status %d: %s",
			op, domain.ErrUnavailable, resp.StatusCode,
			strings.TrimSpace(string(detail)),
		)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf(
			"%s: %w: empty completion", op, domain.ErrUnavailable,
		)
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
