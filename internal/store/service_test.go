// AngelaMos | 2026
// service_test.go

package store

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/middleware"
)

type fakeRepo struct {
	stores  map[string]*Store
	deleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stores: make(map[string]*Store)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Store) error {
	for _, existing := range f.stores {
		if existing.Email == s.Email {
			return fmt.Errorf("create store: %w", core.ErrDuplicateKey)
		}
	}
	cp := *s
	f.stores[s.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetByOwner(
	ctx context.Context,
	ownerID string,
) (*Store, error) {
	for _, s := range f.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get store by owner: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(ctx context.Context, s *Store) error {
	if _, ok := f.stores[s.ID]; !ok {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	cp := *s
	f.stores[s.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.stores[id]; !ok {
		return fmt.Errorf("delete store: %w", core.ErrNotFound)
	}
	delete(f.stores, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) List(
	ctx context.Context,
	filter ListFilter,
) ([]Listing, int, error) {
	var listings []Listing
	for _, s := range f.stores {
		if filter.OwnerID != "" &&
			(s.OwnerID == nil || *s.OwnerID != filter.OwnerID) {
			continue
		}
		listings = append(listings, Listing{Store: *s})
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Name < listings[j].Name
	})

	total := len(listings)
	offset := filter.Params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + filter.Params.PageSize
	if filter.Params.PageSize <= 0 || end > total {
		end = total
	}
	return listings[offset:end], total, nil
}

func (f *fakeRepo) ExistsByEmail(
	ctx context.Context,
	email, excludeID string,
) (bool, error) {
	for _, s := range f.stores {
		if s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ExistsByOwner(
	ctx context.Context,
	ownerID, excludeID string,
) (bool, error) {
	for _, s := range f.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerID && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeOwners struct {
	owners map[string]*OwnerInfo
}

func (f *fakeOwners) GetOwner(
	ctx context.Context,
	id string,
) (*OwnerInfo, error) {
	o, ok := f.owners[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return o, nil
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	owners := &fakeOwners{owners: map[string]*OwnerInfo{
		"owner-1": {ID: "owner-1", Role: middleware.RoleStoreOwner},
		"owner-2": {ID: "owner-2", Role: middleware.RoleStoreOwner},
		"user-1":  {ID: "user-1", Role: middleware.RoleNormalUser},
	}}
	return NewService(repo, owners), repo
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	t.Run("unowned store", func(t *testing.T) {
		svc, _ := newService()

		store, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:  "Corner Espresso Coffee House",
			Email: "Hello@Corner.example",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, store.ID)
		assert.Equal(t, "Hello@Corner.example", store.Email)
		assert.Nil(t, store.OwnerID)
	})

	t.Run("assigns a store owner", func(t *testing.T) {
		svc, _ := newService()

		store, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:    "Corner Espresso Coffee House",
			Email:   "hello@corner.example",
			OwnerID: strPtr("owner-1"),
		})
		require.NoError(t, err)
		require.NotNil(t, store.OwnerID)
		assert.Equal(t, "owner-1", *store.OwnerID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:    "Corner Espresso Coffee House",
			Email:   "hello@corner.example",
			OwnerID: strPtr("ghost"),
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("owner without the store_owner role", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:    "Corner Espresso Coffee House",
			Email:   "hello@corner.example",
			OwnerID: strPtr("user-1"),
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("owner already has a store", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:    "First Street Trading Post",
			Email:   "first@store.example",
			OwnerID: strPtr("owner-1"),
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateStoreRequest{
			Name:    "Second Street Trading Post",
			Email:   "second@store.example",
			OwnerID: strPtr("owner-1"),
		})
		assert.ErrorIs(t, err, core.ErrConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:  "First Street Trading Post",
			Email: "shared@store.example",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateStoreRequest{
			Name:  "Second Street Trading Post",
			Email: "shared@store.example",
		})
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	t.Run("email differing only in case is distinct", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:  "First Street Trading Post",
			Email: "shared@store.example",
		})
		require.NoError(t, err)

		store, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:  "Second Street Trading Post",
			Email: "SHARED@store.example",
		})
		require.NoError(t, err)
		assert.Equal(t, "SHARED@store.example", store.Email)
	})
}

func TestService_Update(t *testing.T) {
	setup := func(t *testing.T) (*Service, string) {
		t.Helper()
		svc, _ := newService()

		store, err := svc.Create(context.Background(), CreateStoreRequest{
			Name:    "Corner Espresso Coffee House",
			Email:   "hello@corner.example",
			Address: "1 Main St",
			OwnerID: strPtr("owner-1"),
		})
		require.NoError(t, err)
		return svc, store.ID
	}

	t.Run("admin edits any store", func(t *testing.T) {
		svc, storeID := setup(t)

		updated, err := svc.Update(
			context.Background(),
			"admin-1",
			middleware.RoleAdmin,
			storeID,
			UpdateStoreRequest{Name: strPtr("Renamed Espresso Coffee House")},
		)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Espresso Coffee House", updated.Name)
	})

	t.Run("owner edits own store", func(t *testing.T) {
		svc, storeID := setup(t)

		updated, err := svc.Update(
			context.Background(),
			"owner-1",
			middleware.RoleStoreOwner,
			storeID,
			UpdateStoreRequest{Address: strPtr("2 Side St")},
		)
		require.NoError(t, err)
		assert.Equal(t, "2 Side St", updated.Address)
	})

	t.Run("another owner is rejected", func(t *testing.T) {
		svc, storeID := setup(t)

		_, err := svc.Update(
			context.Background(),
			"owner-2",
			middleware.RoleStoreOwner,
			storeID,
			UpdateStoreRequest{Name: strPtr("Hijacked Storefront Company")},
		)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("no effective changes", func(t *testing.T) {
		svc, storeID := setup(t)

		_, err := svc.Update(
			context.Background(),
			"owner-1",
			middleware.RoleStoreOwner,
			storeID,
			UpdateStoreRequest{Name: strPtr("Corner Espresso Coffee House")},
		)
		assert.ErrorIs(t, err, core.ErrNoChanges)
	})

	t.Run("unknown store", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Update(
			context.Background(),
			"admin-1",
			middleware.RoleAdmin,
			"no-such-store",
			UpdateStoreRequest{Name: strPtr("Entirely Different Name")},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_GetStoreInfo(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:    "Corner Espresso Coffee House",
		Email:   "hello@corner.example",
		OwnerID: strPtr("owner-1"),
	})
	require.NoError(t, err)

	info, err := svc.GetStoreInfo(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, info.ID)
	assert.True(t, info.IsOwnedBy("owner-1"))
	assert.False(t, info.IsOwnedBy("owner-2"))

	byOwner, err := svc.GetOwnerStoreInfo(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byOwner.ID)

	_, err = svc.GetOwnerStoreInfo(context.Background(), "owner-2")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
