package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

// OrderService is what the handler needs from the lifecycle manager.
// Consumers define this interface, not the service implementation.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

type OrdersHandler struct {
	service OrderService
	timeout time.Duration
}

func NewOrdersHandler(service OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		timeout: timeout,
	}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.service.List(ctx)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch orders",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
		Message: "Orders fetched successfully",
	})
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if len(id) != 24 {
		respondError(w, http.StatusBadRequest, "Invalid order ID format: must be 24 characters")
		return
	}

	order, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch order",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, order)
}

// PUT /api/v1/orders/{id}
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if len(id) != 24 {
		respondError(w, http.StatusBadRequest, "Invalid order ID format: must be 24 characters")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := h.service.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			respondJSON(w, http.StatusBadRequest, Response{
				Success:       false,
				Error:         "Invalid status value",
				ValidStatuses: domain.AllStatuses(),
			})
		case errors.Is(err, domain.ErrIllegalTransition):
			respondError(w, http.StatusBadRequest, "Invalid status transition")
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "Order not found")
		default:
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to update order",
				Details: err.Error(),
			})
		}
		return
	}

	respondData(w, http.StatusOK, order)
}
