package http

import (
	"context"
	"net/http"
	"time"

	"github.com/toolhub/backoffice/internal/domain"
)

type DashboardService interface {
	Stats(ctx context.Context) ([]domain.StatCard, error)
}

type DashboardHandler struct {
	service DashboardService
	timeout time.Duration
}

func NewDashboardHandler(service DashboardService, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		timeout: timeout,
	}
}

// GET /api/v1/dashboard
//
// The four cards are computed from one batch of queries; there is no
// partial success. On any failure the whole response is an error envelope
// with an empty card list.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cards, err := h.service.Stats(ctx)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Data:    []domain.StatCard{},
			Error:   err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, cards)
}
