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
	"github.com/toolhub/backoffice/internal/service"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) (*domain.Category, error)
}

type CategoriesHandler struct {
	service CategoryService
	timeout time.Duration
}

func NewCategoriesHandler(service CategoryService, timeout time.Duration) *CategoriesHandler {
	return &CategoriesHandler{
		service: service,
		timeout: timeout,
	}
}

type CategoryRequestDTO struct {
	Name string `json:"name"`
}

// GET /api/v1/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.service.List(ctx)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch categories",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, categories)
}

// POST /api/v1/categories
func (h *CategoriesHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.service.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			respondError(w, http.StatusBadRequest, "Name is required")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to create category",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusCreated, category)
}

// GET /api/v1/categories/{id}
func (h *CategoriesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch category",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, category)
}

// PUT /api/v1/categories/{id}
func (h *CategoriesHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.service.Update(ctx, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "Name is required")
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(w, http.StatusNotFound, "Category not found")
		default:
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to update category",
				Details: err.Error(),
			})
		}
		return
	}

	respondData(w, http.StatusOK, category)
}

// DELETE /api/v1/categories/{id}
//
// The deleted record's snapshot is returned so the UI can offer an undo
// style notification without refetching.
func (h *CategoriesHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	deleted, err := h.service.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to delete category",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success:     true,
		Message:     "Category deleted successfully",
		DeletedData: deleted,
	})
}
