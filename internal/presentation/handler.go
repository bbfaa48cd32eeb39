package presentation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ecommerce-platform/orders/internal/domain"
	"github.com/ecommerce-platform/orders/internal/presentation/helpers"
	"github.com/ecommerce-platform/orders/internal/repository"
)

// OrdersReader is the read surface the HTTP layer exposes. Orders are created
// and mutated elsewhere; this API only serves the stored state.
type OrdersReader interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type OrdersHandler struct {
	svc  OrdersReader
	ping func(ctx context.Context) error
}

func NewOrdersHandler(svc OrdersReader, ping func(ctx context.Context) error) *OrdersHandler {
	return &OrdersHandler{svc: svc, ping: ping}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders/{orderId}", h.GetOrder)
	r.Get("/healthz", h.Healthz)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if strings.TrimSpace(orderID) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "orderId is empty")
		return
	}

	ord, err := h.svc.GetOrder(r.Context(), orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ord)
}

func (h *OrdersHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			helpers.HttpError(w, http.StatusServiceUnavailable, "db unreachable")
			return
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
