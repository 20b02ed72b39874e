package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

type mockUserRepo struct {
	m     sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}}
}

func (m *mockUserRepo) List(context.Context) ([]domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Get(_ context.Context, id string) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, u := range m.users {
		if u.ID.Hex() == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, id string, user *domain.User) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for email, u := range m.users {
		if u.ID.Hex() == id {
			delete(m.users, email)
			user.ID = u.ID
			user.UpdatedAt = time.Now()
			m.users[user.Email] = user
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for email, u := range m.users {
		if u.ID.Hex() == id {
			delete(m.users, email)
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func TestCreateUser_Defaults(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	user, err := svc.Create(context.Background(), "mary@toolhub.co.ke", "", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleSecretary, user.Role)
	assert.True(t, user.Active)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "mary@toolhub.co.ke", "admin", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "mary@toolhub.co.ke", "secretary", nil)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// no second record
	users, _ := repo.List(ctx)
	assert.Len(t, users, 1)
}

func TestCreateUser_EmailRequired(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	_, err := svc.Create(context.Background(), "", "admin", nil)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	_, err := svc.Create(context.Background(), "mary@toolhub.co.ke", "superuser", nil)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateUser_RequiresEmailAndRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "mary@toolhub.co.ke", "admin", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID.Hex(), "mary@toolhub.co.ke", "", nil)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateUser_KeepsActiveWhenOmitted(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	inactive := false
	created, err := svc.Create(ctx, "mary@toolhub.co.ke", "admin", &inactive)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID.Hex(), "mary@toolhub.co.ke", "secretary", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleSecretary, updated.Role)
	assert.False(t, updated.Active)
}

func TestDeleteUser_ReturnsSnapshot(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "mary@toolhub.co.ke", "admin", nil)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "mary@toolhub.co.ke", deleted.Email)

	_, err = svc.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
