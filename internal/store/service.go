// AngelaMos | 2026
// service.go

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/middleware"
	"github.com/angelamos/ratehub/internal/rating"
)

// OwnerProvider resolves the user a store is being assigned to. Implemented by
// the user service; kept as an interface so stores never depend on the user
// package directly.
type OwnerProvider interface {
	GetOwner(ctx context.Context, id string) (*OwnerInfo, error)
}

type Service struct {
	repo   Repository
	owners OwnerProvider
}

func NewService(repo Repository, owners OwnerProvider) *Service {
	return &Service{repo: repo, owners: owners}
}

// Create registers a store, optionally bound to an owner. The owner must
// exist, hold the store_owner role, and not already have a store; each check
// maps to a distinct error kind so callers can tell them apart. Emails compare
// byte-for-byte, no case folding.
func (s *Service) Create(
	ctx context.Context,
	req CreateStoreRequest,
) (*Store, error) {
	if req.OwnerID != nil {
		owner, err := s.owners.GetOwner(ctx, *req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("resolve owner: %w", err)
		}

		if owner.Role != middleware.RoleStoreOwner {
			return nil, fmt.Errorf(
				"owner must have the store_owner role: %w",
				core.ErrInvalidInput,
			)
		}

		taken, err := s.repo.ExistsByOwner(ctx, owner.ID, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf(
				"owner already has a store: %w",
				core.ErrConflict,
			)
		}
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create store: %w", core.ErrDuplicateKey)
	}

	store := &Store{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}

	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

// GetOwnerStore returns the store owned by the given user, for the owner
// dashboard.
func (s *Service) GetOwnerStore(
	ctx context.Context,
	ownerID string,
) (*Store, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// Update edits a store's profile. Admins may edit any store; a store owner may
// only edit their own.
func (s *Service) Update(
	ctx context.Context,
	requesterID, requesterRole, storeID string,
	req UpdateStoreRequest,
) (*Store, error) {
	store, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if requesterRole != middleware.RoleAdmin && !store.IsOwnedBy(requesterID) {
		return nil, fmt.Errorf("update store: %w", core.ErrForbidden)
	}

	changed := false

	if req.Name != nil && *req.Name != store.Name {
		store.Name = *req.Name
		changed = true
	}

	if req.Address != nil && *req.Address != store.Address {
		store.Address = *req.Address
		changed = true
	}

	if req.Email != nil && *req.Email != store.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email, storeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("update store: %w", core.ErrDuplicateKey)
		}
		store.Email = *req.Email
		changed = true
	}

	if !changed {
		return nil, fmt.Errorf("update store: %w", core.ErrNoChanges)
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListStores(
	ctx context.Context,
	filter ListFilter,
) ([]Listing, int, error) {
	return s.repo.List(ctx, filter)
}

// GetStoreInfo implements rating.StoreProvider.
func (s *Service) GetStoreInfo(
	ctx context.Context,
	id string,
) (*rating.StoreInfo, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &rating.StoreInfo{ID: store.ID, OwnerID: store.OwnerID}, nil
}

// GetOwnerStoreInfo implements rating.StoreProvider.
func (s *Service) GetOwnerStoreInfo(
	ctx context.Context,
	ownerID string,
) (*rating.StoreInfo, error) {
	store, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &rating.StoreInfo{ID: store.ID, OwnerID: store.OwnerID}, nil
}

var _ rating.StoreProvider = (*Service)(nil)
