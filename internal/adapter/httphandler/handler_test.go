package httphandler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Seed(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCatalogProvider) Create(
	ctx context.Context, in domain.ProductInput,
) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) Product(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) Categories(
	ctx context.Context,
) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchProducts(
	ctx context.Context, p domain.SearchParams,
) ([]domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(
	ctx context.Context, userID, currentProductID string,
) (domain.Recommendation, error) {
	args := m.Called(ctx, userID, currentProductID)
	return args.Get(0).(domain.Recommendation), args.Error(1)
}

type MockCartManager struct {
	mock.Mock
}

func (m *MockCartManager) Add(
	ctx context.Context, userID, productID string, quantity int,
) (domain.CartEntry, error) {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Get(0).(domain.CartEntry), args.Error(1)
}

func (m *MockCartManager) UserCart(
	ctx context.Context, userID string,
) ([]domain.EnrichedCartEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.EnrichedCartEntry), args.Error(1)
}

func (m *MockCartManager) Remove(
	ctx context.Context, entryID string,
) error {
	return m.Called(ctx, entryID).Error(0)
}

type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Chat(
	ctx context.Context, userID, message string,
) (string, error) {
	args := m.Called(ctx, userID, message)
	return args.String(0), args.Error(1)
}

func (m *MockAssistant) History(
	ctx context.Context, userID string, limit int,
) ([]domain.ChatRecord, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.ChatRecord), args.Error(1)
}

type handlerMocks struct {
	catalog     *MockCatalogProvider
	searcher    *MockSearcher
	recommender *MockRecommender
	cart        *MockCartManager
	assistant   *MockAssistant
}

func newTestHandler() (http.Handler, handlerMocks) {
	ms := handlerMocks{
		catalog:     new(MockCatalogProvider),
		searcher:    new(MockSearcher),
		recommender: new(MockRecommender),
		cart:        new(MockCartManager),
		assistant:   new(MockAssistant),
	}

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, ms.catalog, ms.searcher, ms.recommender)
	httphandler.RegisterCart(mux, ms.cart)
	httphandler.RegisterChat(mux, ms.assistant)
	return httphandler.AllowJSON(mux), ms
}

func doJSON(
	t *testing.T, h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func notFoundErr() error {
	return fmt.Errorf("op: %w", domain.ErrNotFound)
}

func TestGetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.catalog.On("Product", mock.Anything, "p1").
			Return(domain.Product{ProductID: "p1", Name: "Widget"}, nil)

		rr := doJSON(t, h, http.MethodGet, "/products/p1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"Widget"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.catalog.On("Product", mock.Anything, "missing").
			Return(domain.Product{}, notFoundErr())

		rr := doJSON(t, h, http.MethodGet, "/products/missing", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetProducts(t *testing.T) {
	t.Run("PassesSearchParams", func(t *testing.T) {
		h, ms := newTestHandler()
		want := domain.SearchParams{
			Query: "widget", Category: "home", Limit: 5, UserID: "u1",
		}
		ms.searcher.On("SearchProducts", mock.Anything, want).
			Return([]domain.Product{{ProductID: "p1"}}, nil)

		rr := doJSON(t, h, http.MethodGet,
			"/products?search=widget&category=home&limit=5&user_id=u1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		ms.searcher.AssertExpectations(t)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		h, ms := newTestHandler()

		rr := doJSON(t, h, http.MethodGet, "/products?limit=abc", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		ms.searcher.AssertNotCalled(t, "SearchProducts")
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.recommender.On("Recommend", mock.Anything, "u1", "").
			Return(domain.Recommendation{
				Products:   []domain.Product{{ProductID: "p1"}},
				Categories: []string{"home"},
			}, nil)

		rr := doJSON(t, h, http.MethodGet,
			"/products/recommendations/u1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"recommended_categories":["home"]`)
	})

	t.Run("CompleterDown", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.recommender.On("Recommend", mock.Anything, "u1", "").
			Return(domain.Recommendation{},
				fmt.Errorf("op: %w", domain.ErrUnavailable))

		rr := doJSON(t, h, http.MethodGet,
			"/products/recommendations/u1", "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestPostCart(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.cart.On("Add", mock.Anything, "u1", "p1", 2).
			Return(domain.CartEntry{
				EntryID: "e1", UserID: "u1", ProductID: "p1", Quantity: 2,
			}, nil)

		rr := doJSON(t, h, http.MethodPost, "/cart",
			`{"product_id":"p1","user_id":"u1","quantity":2}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"quantity":2`)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.cart.On("Add", mock.Anything, "u1", "missing", 1).
			Return(domain.CartEntry{}, notFoundErr())

		rr := doJSON(t, h, http.MethodPost, "/cart",
			`{"product_id":"missing","user_id":"u1","quantity":1}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.cart.On("Add", mock.Anything, "u1", "p1", 0).
			Return(domain.CartEntry{},
				fmt.Errorf("op: %w", domain.ErrValidation))

		rr := doJSON(t, h, http.MethodPost, "/cart",
			`{"product_id":"p1","user_id":"u1","quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		h, _ := newTestHandler()

		rr := doJSON(t, h, http.MethodPost, "/cart", `{"product_id"`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidMediaType", func(t *testing.T) {
		h, _ := newTestHandler()

		req := httptest.NewRequest(
			http.MethodPost, "/cart", strings.NewReader(`{}`),
		)
		req.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})
}

func TestDeleteCartItem(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.cart.On("Remove", mock.Anything, "missing").Return(notFoundErr())

		rr := doJSON(t, h, http.MethodDelete, "/cart/missing", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("OK", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.cart.On("Remove", mock.Anything, "e1").Return(nil)

		rr := doJSON(t, h, http.MethodDelete, "/cart/e1", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Item removed from cart")
	})
}

func TestPostChat(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.assistant.On("Chat", mock.Anything, "u1", "hello").
			Return("hi there", nil)

		rr := doJSON(t, h, http.MethodPost, "/chat",
			`{"message":"hello","user_id":"u1"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"response":"hi there"`)
	})

	t.Run("AnonymousUserByDefault", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.assistant.On("Chat", mock.Anything, "anonymous", "hello").
			Return("hi there", nil)

		rr := doJSON(t, h, http.MethodPost, "/chat", `{"message":"hello"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		ms.assistant.AssertExpectations(t)
	})

	t.Run("CompleterDown", func(t *testing.T) {
		h, ms := newTestHandler()
		ms.assistant.On("Chat", mock.Anything, "u1", "hello").
			Return("", fmt.Errorf("op: %w", domain.ErrUnavailable))

		rr := doJSON(t, h, http.MethodPost, "/chat",
			`{"message":"hello","user_id":"u1"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestGetCategories(t *testing.T) {
	h, ms := newTestHandler()
	ms.catalog.On("Categories", mock.Anything).
		Return([]string{"electronics", "home"}, nil)

	rr := doJSON(t, h, http.MethodGet, "/categories", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"categories":["electronics","home"]`)
}
