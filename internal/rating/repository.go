// AngelaMos | 2026
// repository.go

package rating

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

// listFields allow-lists rating list sort/search keys. Newest-first is the
// default since ratings are a feed, not a directory.
var listFields = core.FieldMap{
	Sortable: map[string]string{
		"rating":     "r.rating",
		"created_at": "r.created_at",
		"updated_at": "r.updated_at",
	},
	Searchable: map[string]string{
		"comment": "r.comment",
	},
	DefaultSort:   "created_at",
	DefaultOrder:  core.SortDesc,
	DefaultSearch: "comment",
}

// StoreRating is a list row for a store's ratings: the rating plus the
// submitting user's identity.
type StoreRating struct {
	Rating
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

// UserRating is a list row for a user's ratings: the rating plus the store it
// scores.
type UserRating struct {
	Rating
	StoreName    string `db:"store_name"`
	StoreAddress string `db:"store_address"`
}

type Repository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByID(ctx context.Context, id string) (*Rating, error)
	GetByUserAndStore(
		ctx context.Context,
		userID, storeID string,
	) (*Rating, error)
	Update(ctx context.Context, rating *Rating) error
	Delete(ctx context.Context, id string) error
	ListByStore(
		ctx context.Context,
		storeID string,
		params core.ListParams,
	) ([]StoreRating, int, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params core.ListParams,
	) ([]UserRating, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a rating and recomputes the store's aggregates in the same
// transaction, so readers never see the new rating without its effect on the
// average.
func (r *repository) Create(ctx context.Context, rating *Rating) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO ratings (id, user_id, store_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, rating, query,
			rating.ID,
			rating.UserID,
			rating.StoreID,
			rating.Rating,
			rating.Comment,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("create rating: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create rating: %w", err)
		}

		return RecomputeStoreAggregates(ctx, tx, rating.StoreID)
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, comment, created_at, updated_at
		FROM ratings
		WHERE id = $1`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}

func (r *repository) GetByUserAndStore(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, comment, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND store_id = $2`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, userID, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}

// Update rewrites a rating's score and comment, recomputing aggregates in the
// same transaction.
func (r *repository) Update(ctx context.Context, rating *Rating) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE ratings
			SET rating = $2, comment = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &rating.UpdatedAt, query,
			rating.ID,
			rating.Rating,
			rating.Comment,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update rating: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update rating: %w", err)
		}

		return RecomputeStoreAggregates(ctx, tx, rating.StoreID)
	})
}

// Delete removes a rating and recomputes the affected store's aggregates in
// the same transaction.
func (r *repository) Delete(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var storeID string
		query := `DELETE FROM ratings WHERE id = $1 RETURNING store_id`

		err := tx.GetContext(ctx, &storeID, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete rating: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete rating: %w", err)
		}

		return RecomputeStoreAggregates(ctx, tx, storeID)
	})
}

func (r *repository) ListByStore(
	ctx context.Context,
	storeID string,
	params core.ListParams,
) ([]StoreRating, int, error) {
	params.Normalize()

	conditions := []string{"r.store_id = $1"}
	args := []any{storeID}
	argIdx := 2

	if params.Search != "" {
		column := listFields.SearchColumn(params)
		conditions = append(conditions, fmt.Sprintf(
			"%s ILIKE $%d", column, argIdx))
		args = append(args, core.LikePattern(params.Search))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM ratings r WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count store ratings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.user_id, r.store_id, r.rating, r.comment,
		       r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, listFields.OrderBy(params), argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var rows []StoreRating
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list store ratings: %w", err)
	}

	return rows, total, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params core.ListParams,
) ([]UserRating, int, error) {
	params.Normalize()

	conditions := []string{"r.user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		column := listFields.SearchColumn(params)
		conditions = append(conditions, fmt.Sprintf(
			"%s ILIKE $%d", column, argIdx))
		args = append(args, core.LikePattern(params.Search))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM ratings r WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count user ratings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.user_id, r.store_id, r.rating, r.comment,
		       r.created_at, r.updated_at,
		       s.name AS store_name, s.address AS store_address
		FROM ratings r
		JOIN stores s ON s.id = r.store_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, listFields.OrderBy(params), argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var rows []UserRating
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list user ratings: %w", err)
	}

	return rows, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
