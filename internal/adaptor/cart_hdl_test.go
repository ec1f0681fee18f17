package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCartService keeps one in-memory cart per user, priced at 10 per unit.
type stubCartService struct {
	known map[uuid.UUID]bool
	carts map[uuid.UUID]map[uuid.UUID]int
}

func newStubCartService(knownProducts ...uuid.UUID) *stubCartService {
	known := make(map[uuid.UUID]bool)
	for _, id := range knownProducts {
		known[id] = true
	}
	return &stubCartService{
		known: known,
		carts: make(map[uuid.UUID]map[uuid.UUID]int),
	}
}

func (s *stubCartService) snapshot(userID uuid.UUID) *response.CartResponse {
	resp := &response.CartResponse{Items: []response.CartItemResponse{}}
	for productID, quantity := range s.carts[userID] {
		resp.Items = append(resp.Items, response.CartItemResponse{
			ProductID: productID.String(),
			Name:      "Mug",
			Price:     10,
			Quantity:  quantity,
			Subtotal:  float64(quantity) * 10,
		})
		resp.Total += float64(quantity) * 10
	}
	return resp
}

func (s *stubCartService) Get(_ context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	return s.snapshot(userID), nil
}

func (s *stubCartService) Add(_ context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", usecase.ErrValidation)
	}
	if !s.known[productID] {
		return nil, fmt.Errorf("product %w", usecase.ErrNotFound)
	}
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[uuid.UUID]int)
	}
	s.carts[userID][productID] += quantity
	return s.snapshot(userID), nil
}

func (s *stubCartService) SetQuantity(_ context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error) {
	if _, ok := s.carts[userID][productID]; !ok {
		return nil, fmt.Errorf("cart item %w", usecase.ErrNotFound)
	}
	s.carts[userID][productID] = quantity
	return s.snapshot(userID), nil
}

func (s *stubCartService) Remove(_ context.Context, userID, productID uuid.UUID) (*response.CartResponse, error) {
	delete(s.carts[userID], productID)
	return s.snapshot(userID), nil
}

func cartRouter(svc usecase.CartService) *chi.Mux {
	h := NewCartHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/cart", h.Get)
	r.Post("/api/cart", h.Add)
	r.Put("/api/cart/{productId}", h.SetQuantity)
	r.Delete("/api/cart/{productId}", h.Remove)
	return r
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doCartRequest(t *testing.T, router http.Handler, method, path string, userID uuid.UUID, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != uuid.Nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, "buyer"))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestCartHandlerGetRequiresIdentity(t *testing.T) {
	router := cartRouter(newStubCartService())

	rec, _ := doCartRequest(t, router, http.MethodGet, "/api/cart", uuid.Nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandlerAddAndMerge(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()
	router := cartRouter(newStubCartService(productID))

	rec, _ := doCartRequest(t, router, http.MethodPost, "/api/cart", userID,
		map[string]any{"product_id": productID.String(), "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doCartRequest(t, router, http.MethodPost, "/api/cart", userID,
		map[string]any{"product_id": productID.String(), "quantity": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	var cart response.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 50.0, cart.Total, 0.001)
}

func TestCartHandlerAddUnknownProduct(t *testing.T) {
	router := cartRouter(newStubCartService())

	rec, _ := doCartRequest(t, router, http.MethodPost, "/api/cart", uuid.New(),
		map[string]any{"product_id": uuid.New().String(), "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerAddRejectsBadInput(t *testing.T) {
	router := cartRouter(newStubCartService())
	userID := uuid.New()

	// Malformed product id
	rec, _ := doCartRequest(t, router, http.MethodPost, "/api/cart", userID,
		map[string]any{"product_id": "not-a-uuid", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero quantity fails validation before the service is reached
	rec, _ = doCartRequest(t, router, http.MethodPost, "/api/cart", userID,
		map[string]any{"product_id": uuid.New().String(), "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandlerSetQuantityMissingLine(t *testing.T) {
	router := cartRouter(newStubCartService())

	rec, _ := doCartRequest(t, router, http.MethodPut, "/api/cart/"+uuid.New().String(), uuid.New(),
		map[string]any{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerRemove(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()
	router := cartRouter(newStubCartService(productID))

	rec, _ := doCartRequest(t, router, http.MethodPost, "/api/cart", userID,
		map[string]any{"product_id": productID.String(), "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doCartRequest(t, router, http.MethodDelete, "/api/cart/"+productID.String(), userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart response.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Len(t, cart.Items, 0)
}
