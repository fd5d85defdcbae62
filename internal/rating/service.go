// AngelaMos | 2026
// service.go

package rating

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/middleware"
)

// StoreProvider resolves stores for rating checks. Implemented by the store
// service; kept as an interface so ratings never depend on the store package
// directly.
type StoreProvider interface {
	GetStoreInfo(ctx context.Context, id string) (*StoreInfo, error)
	GetOwnerStoreInfo(ctx context.Context, ownerID string) (*StoreInfo, error)
}

type Service struct {
	repo   Repository
	stores StoreProvider
}

func NewService(repo Repository, stores StoreProvider) *Service {
	return &Service{repo: repo, stores: stores}
}

// Submit records a first rating for a store. Owners cannot rate their own
// store, and a second submission for the same store is a conflict rather than
// an overwrite; callers update explicitly instead.
func (s *Service) Submit(
	ctx context.Context,
	userID, storeID string,
	req SubmitRatingRequest,
) (*Rating, error) {
	store, err := s.stores.GetStoreInfo(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if store.IsOwnedBy(userID) {
		return nil, fmt.Errorf(
			"cannot rate own store: %w",
			core.ErrForbidden,
		)
	}

	rating := &Rating{
		ID:      uuid.New().String(),
		UserID:  userID,
		StoreID: store.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

// Update modifies the caller's existing rating for a store. Submitting first
// is required; an update that changes nothing is rejected as a no-op.
func (s *Service) Update(
	ctx context.Context,
	userID, storeID string,
	req UpdateRatingRequest,
) (*Rating, error) {
	rating, err := s.repo.GetByUserAndStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.Rating != nil && *req.Rating != rating.Rating {
		rating.Rating = *req.Rating
		changed = true
	}

	if req.Comment != nil && *req.Comment != rating.Comment {
		rating.Comment = *req.Comment
		changed = true
	}

	if !changed {
		return nil, fmt.Errorf("update rating: %w", core.ErrNoChanges)
	}

	if err := s.repo.Update(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

// Delete removes a rating. Users delete their own; admins delete any.
func (s *Service) Delete(
	ctx context.Context,
	requesterID, requesterRole, ratingID string,
) error {
	rating, err := s.repo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}

	if rating.UserID != requesterID && requesterRole != middleware.RoleAdmin {
		return fmt.Errorf("delete rating: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, ratingID)
}

func (s *Service) GetMyRating(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	return s.repo.GetByUserAndStore(ctx, userID, storeID)
}

func (s *Service) ListStoreRatings(
	ctx context.Context,
	storeID string,
	params core.ListParams,
) ([]StoreRating, int, error) {
	if _, err := s.stores.GetStoreInfo(ctx, storeID); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByStore(ctx, storeID, params)
}

func (s *Service) ListMyRatings(
	ctx context.Context,
	userID string,
	params core.ListParams,
) ([]UserRating, int, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

// ListOwnerRatings lists the ratings of the caller's own store, for the owner
// dashboard.
func (s *Service) ListOwnerRatings(
	ctx context.Context,
	ownerID string,
	params core.ListParams,
) ([]StoreRating, int, error) {
	store, err := s.stores.GetOwnerStoreInfo(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	return s.repo.ListByStore(ctx, store.ID, params)
}
