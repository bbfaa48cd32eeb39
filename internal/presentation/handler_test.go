package presentation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecommerce-platform/orders/internal/domain"
	"github.com/ecommerce-platform/orders/internal/repository"
)

type fakeReader struct {
	orders map[string]*domain.Order
	err    error
}

func (f *fakeReader) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("get order %s: %w", orderID, repository.ErrOrderNotFound)
	}
	return o, nil
}

func newTestRouter(svc OrdersReader, ping func(ctx context.Context) error) http.Handler {
	r := chi.NewRouter()
	NewOrdersHandler(svc, ping).Register(r)
	return r
}

func TestGetOrder(t *testing.T) {
	order := &domain.Order{
		OrderID:  "O1",
		Status:   domain.StatusPackaged,
		Products: []domain.Product{{ProductID: "P1"}},
	}
	router := newTestRouter(&fakeReader{orders: map[string]*domain.Order{"O1": order}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/O1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *order, got)
}

func TestGetOrderNotFound(t *testing.T) {
	router := newTestRouter(&fakeReader{orders: map[string]*domain.Order{}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderStoreFailure(t *testing.T) {
	router := newTestRouter(&fakeReader{err: errors.New("connection reset")}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/O1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeReader{}, func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthzDBDown(t *testing.T) {
	router := newTestRouter(&fakeReader{}, func(ctx context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
