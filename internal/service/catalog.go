package service

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/toolhub/backoffice/internal/cache"
	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
	"github.com/toolhub/backoffice/internal/uploader"
)

// ImageFile is one image attachment from a multipart request.
type ImageFile struct {
	Name string
	Data io.Reader
}

type CatalogService struct {
	repo     repository.ToolRepository
	uploader uploader.Uploader
	cache    cache.StatsCache
}

func NewCatalogService(repo repository.ToolRepository, uploader uploader.Uploader, cache cache.StatsCache) *CatalogService {
	return &CatalogService{
		repo:     repo,
		uploader: uploader,
		cache:    cache,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Tool, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Tool, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the tool, uploads the attached images and persists the
// result. Images are uploaded before the insert so a tool never references
// a URL that does not exist. The image and color invariants are enforced
// here regardless of what the admin UI allows.
func (s *CatalogService) Create(ctx context.Context, tool *domain.Tool, files []ImageFile) (*domain.Tool, error) {
	if err := s.validate(tool); err != nil {
		return nil, err
	}

	if err := s.uploadImages(ctx, tool, files); err != nil {
		return nil, err
	}
	if len(tool.Images) == 0 {
		return nil, ErrNoImages
	}

	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, err
	}

	s.invalidateStats()
	return tool, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, tool *domain.Tool, files []ImageFile) (*domain.Tool, error) {
	if err := s.validate(tool); err != nil {
		return nil, err
	}

	if err := s.uploadImages(ctx, tool, files); err != nil {
		return nil, err
	}
	if len(tool.Images) == 0 {
		return nil, ErrNoImages
	}

	updated, err := s.repo.Update(ctx, id, tool)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (*domain.Tool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	return deleted, nil
}

func (s *CatalogService) validate(tool *domain.Tool) error {
	if tool.Name == "" || tool.Brand == "" || tool.Category == "" {
		return ErrMissingFields
	}
	if tool.Price <= 0 {
		return ErrInvalidPrice
	}
	if len(tool.Colors) == 0 {
		return ErrNoColors
	}
	if tool.Quantity <= 0 {
		tool.Quantity = 1
	}
	return nil
}

func (s *CatalogService) uploadImages(ctx context.Context, tool *domain.Tool, files []ImageFile) error {
	for _, f := range files {
		url, err := s.uploader.Upload(ctx, f.Name, f.Data)
		if err != nil {
			return err
		}
		tool.Images = append(tool.Images, url)
	}
	return nil
}

func (s *CatalogService) invalidateStats() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("stats cache invalidate error: %v \n", err)
	}
}
