// AngelaMos | 2026
// service_test.go

package rating

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/middleware"
)

type fakeRepo struct {
	ratings map[string]*Rating
	deleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{ratings: make(map[string]*Rating)}
}

func (f *fakeRepo) Create(ctx context.Context, r *Rating) error {
	for _, existing := range f.ratings {
		if existing.UserID == r.UserID && existing.StoreID == r.StoreID {
			return fmt.Errorf("create rating: %w", core.ErrDuplicateKey)
		}
	}
	cp := *r
	f.ratings[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Rating, error) {
	r, ok := f.ratings[id]
	if !ok {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetByUserAndStore(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	for _, r := range f.ratings {
		if r.UserID == userID && r.StoreID == storeID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(ctx context.Context, r *Rating) error {
	if _, ok := f.ratings[r.ID]; !ok {
		return fmt.Errorf("update rating: %w", core.ErrNotFound)
	}
	cp := *r
	f.ratings[r.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.ratings[id]; !ok {
		return fmt.Errorf("delete rating: %w", core.ErrNotFound)
	}
	delete(f.ratings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ListByStore(
	ctx context.Context,
	storeID string,
	params core.ListParams,
) ([]StoreRating, int, error) {
	var rows []StoreRating
	for _, r := range f.ratings {
		if r.StoreID == storeID {
			rows = append(rows, StoreRating{Rating: *r})
		}
	}
	return rows, len(rows), nil
}

func (f *fakeRepo) ListByUser(
	ctx context.Context,
	userID string,
	params core.ListParams,
) ([]UserRating, int, error) {
	var rows []UserRating
	for _, r := range f.ratings {
		if r.UserID == userID {
			rows = append(rows, UserRating{Rating: *r})
		}
	}
	return rows, len(rows), nil
}

type fakeStores struct {
	stores  map[string]*StoreInfo
	byOwner map[string]*StoreInfo
}

func newFakeStores(stores ...*StoreInfo) *fakeStores {
	f := &fakeStores{
		stores:  make(map[string]*StoreInfo),
		byOwner: make(map[string]*StoreInfo),
	}
	for _, s := range stores {
		f.stores[s.ID] = s
		if s.OwnerID != nil {
			f.byOwner[*s.OwnerID] = s
		}
	}
	return f
}

func (f *fakeStores) GetStoreInfo(
	ctx context.Context,
	id string,
) (*StoreInfo, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	return s, nil
}

func (f *fakeStores) GetOwnerStoreInfo(
	ctx context.Context,
	ownerID string,
) (*StoreInfo, error) {
	s, ok := f.byOwner[ownerID]
	if !ok {
		return nil, fmt.Errorf("get store by owner: %w", core.ErrNotFound)
	}
	return s, nil
}

func ownedStore(storeID, ownerID string) *StoreInfo {
	return &StoreInfo{ID: storeID, OwnerID: &ownerID}
}

func TestService_Submit(t *testing.T) {
	repo := newFakeRepo()
	stores := newFakeStores(
		&StoreInfo{ID: "store-1"},
		ownedStore("store-2", "owner-1"),
	)
	svc := NewService(repo, stores)

	t.Run("creates rating", func(t *testing.T) {
		rating, err := svc.Submit(
			context.Background(),
			"user-1",
			"store-1",
			SubmitRatingRequest{Rating: 4, Comment: "solid"},
		)
		require.NoError(t, err)
		assert.NotEmpty(t, rating.ID)
		assert.Equal(t, "user-1", rating.UserID)
		assert.Equal(t, "store-1", rating.StoreID)
		assert.Equal(t, 4, rating.Rating)
	})

	t.Run("second submission conflicts", func(t *testing.T) {
		_, err := svc.Submit(
			context.Background(),
			"user-1",
			"store-1",
			SubmitRatingRequest{Rating: 5},
		)
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	t.Run("unknown store", func(t *testing.T) {
		_, err := svc.Submit(
			context.Background(),
			"user-1",
			"no-such-store",
			SubmitRatingRequest{Rating: 3},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("owner cannot rate own store", func(t *testing.T) {
		_, err := svc.Submit(
			context.Background(),
			"owner-1",
			"store-2",
			SubmitRatingRequest{Rating: 5},
		)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("other users can rate an owned store", func(t *testing.T) {
		_, err := svc.Submit(
			context.Background(),
			"user-2",
			"store-2",
			SubmitRatingRequest{Rating: 2},
		)
		assert.NoError(t, err)
	})
}

func TestService_Update(t *testing.T) {
	repo := newFakeRepo()
	stores := newFakeStores(&StoreInfo{ID: "store-1"})
	svc := NewService(repo, stores)

	_, err := svc.Submit(
		context.Background(),
		"user-1",
		"store-1",
		SubmitRatingRequest{Rating: 3, Comment: "ok"},
	)
	require.NoError(t, err)

	t.Run("requires an existing rating", func(t *testing.T) {
		four := 4
		_, err := svc.Update(
			context.Background(),
			"user-2",
			"store-1",
			UpdateRatingRequest{Rating: &four},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("no fields is a no-op", func(t *testing.T) {
		_, err := svc.Update(
			context.Background(),
			"user-1",
			"store-1",
			UpdateRatingRequest{},
		)
		assert.ErrorIs(t, err, core.ErrNoChanges)
	})

	t.Run("identical values are a no-op", func(t *testing.T) {
		three := 3
		comment := "ok"
		_, err := svc.Update(
			context.Background(),
			"user-1",
			"store-1",
			UpdateRatingRequest{Rating: &three, Comment: &comment},
		)
		assert.ErrorIs(t, err, core.ErrNoChanges)
	})

	t.Run("applies changed score", func(t *testing.T) {
		five := 5
		updated, err := svc.Update(
			context.Background(),
			"user-1",
			"store-1",
			UpdateRatingRequest{Rating: &five},
		)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "ok", updated.Comment)

		stored, err := repo.GetByUserAndStore(
			context.Background(),
			"user-1",
			"store-1",
		)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Rating)
	})
}

func TestService_Delete(t *testing.T) {
	newSvc := func(t *testing.T) (*Service, *fakeRepo, string) {
		t.Helper()
		repo := newFakeRepo()
		stores := newFakeStores(&StoreInfo{ID: "store-1"})
		svc := NewService(repo, stores)

		rating, err := svc.Submit(
			context.Background(),
			"user-1",
			"store-1",
			SubmitRatingRequest{Rating: 4},
		)
		require.NoError(t, err)
		return svc, repo, rating.ID
	}

	t.Run("owner deletes own rating", func(t *testing.T) {
		svc, repo, id := newSvc(t)

		err := svc.Delete(
			context.Background(),
			"user-1",
			middleware.RoleNormalUser,
			id,
		)
		require.NoError(t, err)
		assert.Contains(t, repo.deleted, id)
	})

	t.Run("admin deletes any rating", func(t *testing.T) {
		svc, repo, id := newSvc(t)

		err := svc.Delete(
			context.Background(),
			"admin-1",
			middleware.RoleAdmin,
			id,
		)
		require.NoError(t, err)
		assert.Contains(t, repo.deleted, id)
	})

	t.Run("other users are rejected", func(t *testing.T) {
		svc, _, id := newSvc(t)

		err := svc.Delete(
			context.Background(),
			"user-2",
			middleware.RoleNormalUser,
			id,
		)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("missing rating", func(t *testing.T) {
		svc, _, _ := newSvc(t)

		err := svc.Delete(
			context.Background(),
			"user-1",
			middleware.RoleNormalUser,
			"no-such-rating",
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_ListOwnerRatings(t *testing.T) {
	repo := newFakeRepo()
	stores := newFakeStores(ownedStore("store-1", "owner-1"))
	svc := NewService(repo, stores)

	_, err := svc.Submit(
		context.Background(),
		"user-1",
		"store-1",
		SubmitRatingRequest{Rating: 5},
	)
	require.NoError(t, err)

	t.Run("returns the owner's store ratings", func(t *testing.T) {
		rows, total, err := svc.ListOwnerRatings(
			context.Background(),
			"owner-1",
			core.ListParams{},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, rows, 1)
		assert.Equal(t, 5, rows[0].Rating.Rating)
	})

	t.Run("owner without a store", func(t *testing.T) {
		_, _, err := svc.ListOwnerRatings(
			context.Background(),
			"owner-2",
			core.ListParams{},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
