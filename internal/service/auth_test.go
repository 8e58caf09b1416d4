package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

func seedUser(store *memStore, email string, status domain.UserStatus, roles ...string) *domain.User {
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: utils.HashPassword("correct-horse"),
		Status:       status,
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role{ID: utils.NewID(), Name: r})
	}
	store.users[u.ID] = u
	return u
}

func TestLoginHappyPath(t *testing.T) {
	store := newMemStore()
	seedUser(store, "member@x.fr", domain.UserStatusCurrent)
	svc := NewAuthService(store)

	u, role, err := svc.Login(context.Background(), " Member@X.FR ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "member@x.fr", u.Email)
	assert.Equal(t, domain.RoleMember, role)
}

func TestLoginAdminRole(t *testing.T) {
	store := newMemStore()
	seedUser(store, "chief@x.fr", domain.UserStatusCurrent, domain.RoleAdmin, domain.RoleBureau)
	svc := NewAuthService(store)

	_, role, err := svc.Login(context.Background(), "chief@x.fr", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestLoginBadCredentials(t *testing.T) {
	store := newMemStore()
	seedUser(store, "member@x.fr", domain.UserStatusCurrent)
	svc := NewAuthService(store)

	_, _, err := svc.Login(context.Background(), "member@x.fr", "wrong")
	assert.True(t, domain.IsCode(err, domain.ErrCodeUnauthorized), "got %v", err)

	_, _, err = svc.Login(context.Background(), "ghost@x.fr", "correct-horse")
	assert.True(t, domain.IsCode(err, domain.ErrCodeUnauthorized), "got %v", err)
}

// vanishingStore 第二次读时记录已被并发移除
type vanishingStore struct{ *memStore }

func (s *vanishingStore) Users() domain.UserRepository {
	return &vanishingUsers{memUsers{s.memStore}}
}

type vanishingUsers struct{ memUsers }

func (r *vanishingUsers) FindWithDetails(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func TestLoginUserVanishesBetweenReads(t *testing.T) {
	store := newMemStore()
	seedUser(store, "member@x.fr", domain.UserStatusCurrent)
	svc := NewAuthService(&vanishingStore{store})

	_, _, err := svc.Login(context.Background(), "member@x.fr", "correct-horse")
	assert.True(t, domain.IsCode(err, domain.ErrCodeUnauthorized), "got %v", err)
}

func TestLoginInactiveAccount(t *testing.T) {
	store := newMemStore()
	seedUser(store, "pending@x.fr", domain.UserStatusPending)
	seedUser(store, "gone@x.fr", domain.UserStatusDeleted)
	svc := NewAuthService(store)

	for _, email := range []string{"pending@x.fr", "gone@x.fr"} {
		_, _, err := svc.Login(context.Background(), email, "correct-horse")
		assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden), "email %s: got %v", email, err)
	}
}
