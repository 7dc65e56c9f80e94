package llm_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/llm"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompleter(baseURL string) llm.Completer {
	return llm.NewCompleter(llm.Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: time.Second,
	})
}

func completionsStub(
	t *testing.T, status int, body string,
) (*httptest.Server, *http.Request) {
	t.Helper()

	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			captured = *r
			w.WriteHeader(status)
			w.Write([]byte(body))
		},
	))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestComplete(t *testing.T) {
	t.Run("ReturnsTrimmedContent", func(t *testing.T) {
		srv, req := completionsStub(t, http.StatusOK,
			`{"choices":[{"message":{"role":"assistant","content":"  hello "}}]}`)

		c := newCompleter(srv.URL)

		got, err := c.Complete(t.Context(), "say hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)

		assert.Equal(t, "/chat/completions", req.URL.Path)
		assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
	})

	t.Run("ProviderErrorIsUnavailable", func(t *testing.T) {
		srv, _ := completionsStub(t, http.StatusBadGateway, "boom")

		c := newCompleter(srv.URL)

		_, err := c.Complete(t.Context(), "say hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("EmptyChoicesIsUnavailable", func(t *testing.T) {
		srv, _ := completionsStub(t, http.StatusOK, `{"choices":[]}`)

		c := newCompleter(srv.URL)

		_, err := c.Complete(t.Context(), "say hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("UnreachableProviderIsUnavailable", func(t *testing.T) {
		c := newCompleter("http://127.0.0.1:1")

		_, err := c.Complete(t.Context(), "say hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("SendsPersonaAndPrompt", func(t *testing.T) {
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}

		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				w.Write([]byte(
					`{"choices":[{"message":{"content":"ok"}}]}`,
				))
			},
		))
		t.Cleanup(srv.Close)

		c := newCompleter(srv.URL)

		_, err := c.Complete(t.Context(), "what should I buy?")
		require.NoError(t, err)

		assert.Equal(t, "test-model", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Contains(t, body.Messages[0].Content, "AI shopping assistant")
		assert.Equal(t, "what should I buy?", body.Messages[1].Content)
	})
}
