// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/ratehub/internal/auth"
	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/store"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create is the admin path: any role may be assigned. Email uniqueness is
// re-checked here for a clean conflict message; the unique index still backs
// it up under concurrent writers. Emails compare byte-for-byte, no case
// folding.
func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Address:      req.Address,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.Name != nil && *req.Name != u.Name {
		u.Name = *req.Name
		changed = true
	}

	if req.Address != nil && *req.Address != u.Address {
		u.Address = *req.Address
		changed = true
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		u.Email = *req.Email
		changed = true
	}

	if !changed {
		return nil, fmt.Errorf("update user: %w", core.ErrNoChanges)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Role == role {
		return nil, fmt.Errorf("update role: %w", core.ErrNoChanges)
	}

	u.Role = role

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteUser removes a user and everything that hangs off it. Admins cannot
// delete their own account through this path.
func (s *Service) DeleteUser(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return fmt.Errorf("delete own account: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	filter ListFilter,
) ([]User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

// GetByEmail implements auth.UserProvider.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

// GetByID implements auth.UserProvider.
func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

// Register implements auth.UserProvider; self-registration always produces a
// normal user, roles are assigned by admins afterwards.
func (s *Service) Register(
	ctx context.Context,
	input auth.NewUser,
) (*auth.UserInfo, error) {
	u := &User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Address:      input.Address,
		Role:         RoleNormalUser,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

// IncrementTokenVersion implements auth.UserProvider.
func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

// UpdatePassword implements auth.UserProvider.
func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// GetOwner implements store.OwnerProvider for owner assignment checks.
func (s *Service) GetOwner(
	ctx context.Context,
	id string,
) (*store.OwnerInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &store.OwnerInfo{ID: u.ID, Role: u.Role}, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
	}
}

var (
	_ auth.UserProvider   = (*Service)(nil)
	_ store.OwnerProvider = (*Service)(nil)
)
