// AngelaMos | 2026
// entity.go

package rating

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one store; the (user_id, store_id) pair is
// unique, so a user re-scoring a store is always an update, never a second row.
type Rating struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	StoreID   string    `db:"store_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StoreInfo is the slice of a store the rating package needs: existence and
// who owns it.
type StoreInfo struct {
	ID      string
	OwnerID *string
}

func (s *StoreInfo) IsOwnedBy(userID string) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
