// AngelaMos | 2026
// repository.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/ratehub/internal/core"
)

// listFields allow-lists the sortable/searchable store columns. Sort keys are
// qualified because the list query joins ratings for the caller's own rating.
var listFields = core.FieldMap{
	Sortable: map[string]string{
		"name":           "s.name",
		"email":          "s.email",
		"address":        "s.address",
		"average_rating": "s.average_rating",
		"total_ratings":  "s.total_ratings",
		"created_at":     "s.created_at",
	},
	Searchable: map[string]string{
		"name":    "s.name",
		"email":   "s.email",
		"address": "s.address",
	},
	DefaultSort:   "name",
	DefaultOrder:  core.SortAsc,
	DefaultSearch: "name",
}

type ListFilter struct {
	Params core.ListParams

	// OwnerID restricts the listing to stores owned by the given user.
	OwnerID string

	// RaterID populates my_rating from that user's ratings; empty leaves it
	// NULL for every row.
	RaterID string
}

// Listing is a list-query row: the store plus the requesting user's rating.
type Listing struct {
	Store
	MyRating *int `db:"my_rating"`
}

type Repository interface {
	Create(ctx context.Context, store *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*Store, error)
	Update(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Listing, int, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsByOwner(ctx context.Context, ownerID, excludeID string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, store *Store) error {
	query := `
		INSERT INTO stores (id, name, email, address, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING average_rating, total_ratings, created_at, updated_at`

	err := r.db.GetContext(ctx, store, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create store: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create store: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, average_rating,
		       total_ratings, created_at, updated_at
		FROM stores
		WHERE id = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &store, nil
}

func (r *repository) GetByOwner(
	ctx context.Context,
	ownerID string,
) (*Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, average_rating,
		       total_ratings, created_at, updated_at
		FROM stores
		WHERE owner_id = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store by owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store by owner: %w", err)
	}

	return &store, nil
}

func (r *repository) Update(ctx context.Context, store *Store) error {
	query := `
		UPDATE stores
		SET name = $2, email = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &store.UpdatedAt, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update store: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update store: %w", err)
	}

	return nil
}

// Delete removes a store; its ratings go with it via ON DELETE CASCADE, and
// the aggregates die with the row, so nothing needs recomputing.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM stores WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete store: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	filter ListFilter,
) ([]Listing, int, error) {
	filter.Params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if filter.Params.Search != "" {
		column := listFields.SearchColumn(filter.Params)
		conditions = append(conditions, fmt.Sprintf(
			"%s ILIKE $%d", column, argIdx))
		args = append(args, core.LikePattern(filter.Params.Search))
		argIdx++
	}

	if filter.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"s.owner_id = $%d", argIdx))
		args = append(args, filter.OwnerID)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM stores s WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	myRatingExpr := "NULL::int AS my_rating"
	joinClause := ""
	if filter.RaterID != "" {
		myRatingExpr = "r.rating AS my_rating"
		joinClause = fmt.Sprintf(
			"LEFT JOIN ratings r ON r.store_id = s.id AND r.user_id = $%d",
			argIdx,
		)
		args = append(args, filter.RaterID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.name, s.email, s.address, s.owner_id,
		       s.average_rating, s.total_ratings, s.created_at, s.updated_at,
		       %s
		FROM stores s
		%s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		myRatingExpr,
		joinClause,
		whereClause,
		listFields.OrderBy(filter.Params),
		argIdx,
		argIdx+1,
	)

	args = append(args, filter.Params.PageSize, filter.Params.Offset())

	var listings []Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}

	return listings, total, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email, excludeID string,
) (bool, error) {
	// id::text keeps $2 a text parameter; an empty exclude id would not bind
	// as a uuid.
	query := `SELECT EXISTS(SELECT 1 FROM stores WHERE email = $1 AND id::text <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check store email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByOwner(
	ctx context.Context,
	ownerID, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM stores WHERE owner_id = $1 AND id::text <> $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, ownerID, excludeID); err != nil {
		return false, fmt.Errorf("check store owner exists: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
