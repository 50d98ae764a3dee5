// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/auth"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type memoryRepo struct {
	users map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]*User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepo) TouchLastLogin(_ context.Context, _ string) error { return nil }

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context, _ ListUsersParams, _ core.PageParams) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username:  "mgarcia",
		Email:     "MGarcia@Example.com",
		Password:  "long-enough-pw",
		FirstName: "Maria",
		LastName:  "Garcia",
	})
	require.NoError(t, err)

	assert.Equal(t, RoleAttorney, u.Role)
	assert.Equal(t, "mgarcia@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "long-enough-pw", u.PasswordHash)

	ok, err := core.VerifyPassword("long-enough-pw", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminCannotDeleteOrDemoteThemselves(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "boss", Email: "boss@example.com", Password: "long-enough-pw",
		FirstName: "B", LastName: "Oss", Role: RoleAdmin,
	})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	demoted := RoleParalegal
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, UpdateUserRequest{Role: &demoted})
	assert.True(t, errors.Is(err, core.ErrForbidden))

	inactive := false
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, UpdateUserRequest{IsActive: &inactive})
	assert.True(t, errors.Is(err, core.ErrForbidden))
}

func TestEnsureAdminOnlyOnEmptyDatabase(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	req := CreateUserRequest{
		Username: "root", Email: "root@example.com", Password: "long-enough-pw",
		FirstName: "Root", LastName: "Admin", Role: RoleSecretary,
	}

	first, err := svc.EnsureAdmin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, first.Role)

	req.Username = "second"
	req.Email = "second@example.com"
	_, err = svc.EnsureAdmin(ctx, req)
	assert.True(t, errors.Is(err, core.ErrConflict))
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "pkim", Email: "pkim@example.com", Password: "long-enough-pw",
		FirstName: "Paul", LastName: "Kim",
	})
	require.NoError(t, err)

	bar := "CA-123456"
	info, err := svc.UpdateProfile(ctx, u.ID, auth.ProfileUpdate{BarNumber: &bar})
	require.NoError(t, err)

	assert.Equal(t, "Paul", info.FirstName)
	require.NotNil(t, info.BarNumber)
	assert.Equal(t, "CA-123456", *info.BarNumber)
}
