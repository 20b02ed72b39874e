package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
	"github.com/toolhub/backoffice/internal/uploader"
)

type mockToolRepo struct {
	m       sync.Mutex
	created *domain.Tool
	err     error
}

func (m *mockToolRepo) List(context.Context) ([]domain.Tool, error) { return nil, m.err }
func (m *mockToolRepo) Get(context.Context, string) (*domain.Tool, error) {
	return nil, repository.ErrToolNotFound
}

func (m *mockToolRepo) Create(_ context.Context, tool *domain.Tool) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	tool.ID = primitive.NewObjectID()
	m.created = tool
	return nil
}

func (m *mockToolRepo) Update(_ context.Context, _ string, tool *domain.Tool) (*domain.Tool, error) {
	if m.err != nil {
		return nil, m.err
	}
	return tool, nil
}

func (m *mockToolRepo) Delete(context.Context, string) (*domain.Tool, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Tool{Name: "Cordless Drill"}, nil
}

func (m *mockToolRepo) Count(context.Context) (int64, error) { return 0, m.err }

type mockUploader struct {
	m     sync.Mutex
	calls int
	err   error
}

func (m *mockUploader) Upload(_ context.Context, filename string, data io.Reader) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", fmt.Errorf("%w: %v", uploader.ErrUploadFailed, m.err)
	}
	io.Copy(io.Discard, data)
	m.calls++
	return "https://assets.example.com/tools/" + filename, nil
}

func validTool() *domain.Tool {
	return &domain.Tool{
		Name:     "Cordless Drill",
		Brand:    "Bosch",
		Category: "Power Tools",
		Price:    7999,
		Colors:   []string{"blue", "black"},
	}
}

func imageFiles(names ...string) []ImageFile {
	files := make([]ImageFile, 0, len(names))
	for _, n := range names {
		files = append(files, ImageFile{Name: n, Data: strings.NewReader("fake-image-bytes")})
	}
	return files
}

func TestCreateTool_UploadsAndPersists(t *testing.T) {
	repo := &mockToolRepo{}
	up := &mockUploader{}
	svc := NewCatalogService(repo, up, &mockStatsCache{})

	created, err := svc.Create(context.Background(), validTool(), imageFiles("drill-1.png", "drill-2.png"))
	require.NoError(t, err)

	assert.Equal(t, 2, up.calls)
	require.Len(t, created.Images, 2)
	assert.Equal(t, "https://assets.example.com/tools/drill-1.png", created.Images[0])
	assert.Equal(t, 1, created.Quantity) // defaulted
	assert.False(t, created.ID.IsZero())
	require.NotNil(t, repo.created)
}

func TestCreateTool_KeepsExistingImages(t *testing.T) {
	svc := NewCatalogService(&mockToolRepo{}, &mockUploader{}, &mockStatsCache{})

	tool := validTool()
	tool.Images = []string{"https://assets.example.com/tools/old.png"}

	created, err := svc.Create(context.Background(), tool, imageFiles("new.png"))
	require.NoError(t, err)
	assert.Len(t, created.Images, 2)
}

func TestCreateTool_MissingFields(t *testing.T) {
	svc := NewCatalogService(&mockToolRepo{}, &mockUploader{}, &mockStatsCache{})

	tool := validTool()
	tool.Brand = ""

	_, err := svc.Create(context.Background(), tool, imageFiles("drill.png"))
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateTool_NonPositivePrice(t *testing.T) {
	svc := NewCatalogService(&mockToolRepo{}, &mockUploader{}, &mockStatsCache{})

	tool := validTool()
	tool.Price = 0

	_, err := svc.Create(context.Background(), tool, imageFiles("drill.png"))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCreateTool_NoColors(t *testing.T) {
	svc := NewCatalogService(&mockToolRepo{}, &mockUploader{}, &mockStatsCache{})

	tool := validTool()
	tool.Colors = nil

	_, err := svc.Create(context.Background(), tool, imageFiles("drill.png"))
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestCreateTool_NoImages(t *testing.T) {
	repo := &mockToolRepo{}
	svc := NewCatalogService(repo, &mockUploader{}, &mockStatsCache{})

	_, err := svc.Create(context.Background(), validTool(), nil)
	assert.ErrorIs(t, err, ErrNoImages)
	assert.Nil(t, repo.created)
}

func TestCreateTool_UploadFailure(t *testing.T) {
	repo := &mockToolRepo{}
	up := &mockUploader{err: errors.New("host unreachable")}
	svc := NewCatalogService(repo, up, &mockStatsCache{})

	_, err := svc.Create(context.Background(), validTool(), imageFiles("drill.png"))
	assert.ErrorIs(t, err, uploader.ErrUploadFailed)

	// nothing persisted when the upload failed
	assert.Nil(t, repo.created)
}

func TestCreateTool_InvalidatesStatsCache(t *testing.T) {
	statsCache := &mockStatsCache{cards: []domain.StatCard{{Title: "Available Tools"}}}
	svc := NewCatalogService(&mockToolRepo{}, &mockUploader{}, statsCache)

	_, err := svc.Create(context.Background(), validTool(), imageFiles("drill.png"))
	require.NoError(t, err)

	assert.Equal(t, 1, statsCache.deleteCount())
}

func TestUpdateTool_NotFound(t *testing.T) {
	repo := &mockToolRepo{err: repository.ErrToolNotFound}
	svc := NewCatalogService(repo, &mockUploader{}, &mockStatsCache{})

	tool := validTool()
	tool.Images = []string{"https://assets.example.com/tools/drill.png"}

	_, err := svc.Update(context.Background(), "64a1f0c2e4b0a1b2c3d4e5f7", tool, nil)
	assert.ErrorIs(t, err, repository.ErrToolNotFound)
}
