// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/auth"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) RecordLogin(ctx context.Context, id string) error {
	return s.repo.TouchLastLogin(ctx, id)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	update auth.ProfileUpdate,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.BarNumber != nil {
		user.BarNumber = update.BarNumber
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleAttorney
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Phone:        req.Phone,
		BarNumber:    req.BarNumber,
		IsActive:     active,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
	page core.PageParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params, page)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	requesterID, id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if requesterID == id {
		if req.IsActive != nil && !*req.IsActive {
			return nil, fmt.Errorf("deactivate own account: %w", core.ErrForbidden)
		}
		if req.Role != nil && *req.Role != user.Role {
			return nil, fmt.Errorf("change own role: %w", core.ErrForbidden)
		}
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.BarNumber != nil {
		user.BarNumber = req.BarNumber
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, requesterID, id string) error {
	if requesterID == id {
		return fmt.Errorf("delete own account: %w", core.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

// EnsureAdmin creates the first admin account. It refuses once any user
// exists so it cannot be used to mint extra admins.
func (s *Service) EnsureAdmin(ctx context.Context, req CreateUserRequest) (*User, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("users already exist: %w", core.ErrConflict)
	}

	req.Role = RoleAdmin
	return s.CreateUser(ctx, req)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Phone:        u.Phone,
		BarNumber:    u.BarNumber,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToUserResponse(u *User) auth.UserResponse {
	return auth.ToUserResponse(toUserInfo(u))
}

func ToUserResponseList(users []User) []auth.UserResponse {
	responses := make([]auth.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
