// AngelaMos | 2026
// entity.go

package store

import (
	"time"
)

// Store carries the denormalized rating aggregates alongside the profile
// fields. average_rating and total_ratings are only ever written by the
// aggregate recompute that runs inside rating mutations.
type Store struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Address       string    `db:"address"`
	OwnerID       *string   `db:"owner_id"`
	AverageRating float64   `db:"average_rating"`
	TotalRatings  int       `db:"total_ratings"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (s *Store) IsOwnedBy(userID string) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// OwnerInfo is the slice of a user the store package needs for owner
// assignment checks.
type OwnerInfo struct {
	ID   string
	Role string
}
