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

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, email, role string, active *bool) (*domain.User, error)
	Update(ctx context.Context, id, email, role string, active *bool) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

type UsersHandler struct {
	service UserService
	timeout time.Duration
}

func NewUsersHandler(service UserService, timeout time.Duration) *UsersHandler {
	return &UsersHandler{
		service: service,
		timeout: timeout,
	}
}

type UserRequestDTO struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active *bool  `json:"active"`
}

// GET /api/v1/users
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	users, err := h.service.List(ctx)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch users",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, users)
}

// POST /api/v1/users
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.service.Create(ctx, req.Email, req.Role, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "Email is required")
		case errors.Is(err, service.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, repository.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "User already exists")
		default:
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to create user",
				Details: err.Error(),
			})
		}
		return
	}

	respondData(w, http.StatusCreated, user)
}

// GET /api/v1/users/{id}
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch user",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, user)
}

// PUT /api/v1/users/{id}
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.service.Update(ctx, chi.URLParam(r, "id"), req.Email, req.Role, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "Email and role are required")
		case errors.Is(err, service.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, repository.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "User already exists")
		default:
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to update user",
				Details: err.Error(),
			})
		}
		return
	}

	respondData(w, http.StatusOK, user)
}

// DELETE /api/v1/users/{id}
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	deleted, err := h.service.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to delete user",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success:     true,
		Message:     "User deleted successfully",
		DeletedData: deleted,
	})
}
