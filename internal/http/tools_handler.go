package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
	"github.com/toolhub/backoffice/internal/service"
	"github.com/toolhub/backoffice/internal/uploader"
)

type CatalogService interface {
	List(ctx context.Context) ([]domain.Tool, error)
	Get(ctx context.Context, id string) (*domain.Tool, error)
	Create(ctx context.Context, tool *domain.Tool, files []service.ImageFile) (*domain.Tool, error)
	Update(ctx context.Context, id string, tool *domain.Tool, files []service.ImageFile) (*domain.Tool, error)
	Delete(ctx context.Context, id string) (*domain.Tool, error)
}

type ToolsHandler struct {
	service       CatalogService
	timeout       time.Duration
	maxUploadSize int64
}

func NewToolsHandler(service CatalogService, timeout time.Duration, maxUploadSize int64) *ToolsHandler {
	return &ToolsHandler{
		service:       service,
		timeout:       timeout,
		maxUploadSize: maxUploadSize,
	}
}

// GET /api/v1/tools
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tools, err := h.service.List(ctx)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch tools",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, tools)
}

// GET /api/v1/tools/{id}
func (h *ToolsHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tool, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			respondError(w, http.StatusNotFound, "Tool not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch tool",
			Details: err.Error(),
		})
		return
	}

	respondData(w, http.StatusOK, tool)
}

// POST /api/v1/tools (multipart)
func (h *ToolsHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tool, files, cleanup, err := h.parseToolForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	created, err := h.service.Create(ctx, tool, files)
	if err != nil {
		h.respondToolError(w, err, "Failed to create tool")
		return
	}

	respondData(w, http.StatusCreated, created)
}

// PUT /api/v1/tools/{id} (multipart)
func (h *ToolsHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tool, files, cleanup, err := h.parseToolForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	updated, err := h.service.Update(ctx, chi.URLParam(r, "id"), tool, files)
	if err != nil {
		h.respondToolError(w, err, "Failed to update tool")
		return
	}

	respondData(w, http.StatusOK, updated)
}

// DELETE /api/v1/tools/{id}
func (h *ToolsHandler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	deleted, err := h.service.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			respondError(w, http.StatusNotFound, "Tool not found")
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to delete tool",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success:     true,
		Message:     "Tool deleted successfully",
		DeletedData: deleted,
	})
}

// parseToolForm extracts the tool fields and image attachments from a
// multipart request. The caller must invoke cleanup to close the opened
// file parts.
func (h *ToolsHandler) parseToolForm(r *http.Request) (*domain.Tool, []service.ImageFile, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, nil, noop, errors.New("invalid multipart form")
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		quantity = 1
	}

	tool := &domain.Tool{
		Name:        r.FormValue("name"),
		Brand:       r.FormValue("brand"),
		Category:    r.FormValue("category"),
		Quantity:    quantity,
		Description: r.FormValue("description"),
		Price:       price,
		Colors:      r.MultipartForm.Value["color"],
		Images:      r.MultipartForm.Value["existingImages"],
	}

	var files []service.ImageFile
	var opened []interface{ Close() error }
	for _, header := range r.MultipartForm.File["images"] {
		if header.Size == 0 {
			continue
		}
		f, err := header.Open()
		if err != nil {
			for _, o := range opened {
				o.Close()
			}
			return nil, nil, noop, errors.New("failed to read image attachment")
		}
		opened = append(opened, f)
		files = append(files, service.ImageFile{Name: header.Filename, Data: f})
	}

	cleanup := func() {
		for _, o := range opened {
			o.Close()
		}
	}
	return tool, files, cleanup, nil
}

func (h *ToolsHandler) respondToolError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrNoImages),
		errors.Is(err, service.ErrNoColors):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, uploader.ErrUploadFailed):
		respondError(w, http.StatusBadGateway, "Image upload failed")
	case errors.Is(err, repository.ErrToolNotFound):
		respondError(w, http.StatusNotFound, "Tool not found")
	default:
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fallback,
			Details: err.Error(),
		})
	}
}
