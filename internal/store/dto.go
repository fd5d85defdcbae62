// AngelaMos | 2026
// dto.go

package store

import (
	"time"
)

type CreateStoreRequest struct {
	Name    string  `json:"name"     validate:"required,min=20,max=60"`
	Email   string  `json:"email"    validate:"required,email,max=255"`
	Address string  `json:"address"  validate:"max=400"`
	OwnerID *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,min=20,max=60"`
	Email   *string `json:"email,omitempty"   validate:"omitempty,email,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
}

type StoreResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       *string   `json:"owner_id,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StoreListEntry augments a listing row with the requesting user's own
// rating, when the caller is authenticated and has rated the store.
type StoreListEntry struct {
	StoreResponse
	MyRating *int `json:"my_rating,omitempty"`
}

func ToStoreResponse(s *Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func ToStoreListEntries(listings []Listing) []StoreListEntry {
	entries := make([]StoreListEntry, 0, len(listings))
	for _, l := range listings {
		entries = append(entries, StoreListEntry{
			StoreResponse: ToStoreResponse(&l.Store),
			MyRating:      l.MyRating,
		})
	}
	return entries
}
