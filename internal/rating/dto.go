// AngelaMos | 2026
// dto.go

package rating

import (
	"time"
)

type SubmitRatingRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type UpdateRatingRequest struct {
	Rating  *int    `json:"rating,omitempty"  validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreRatingResponse is a store's rating annotated with who submitted it,
// for the owner and public listings.
type StoreRatingResponse struct {
	RatingResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email,omitempty"`
}

// UserRatingResponse is a user's rating annotated with the store it scores.
type UserRatingResponse struct {
	RatingResponse
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address,omitempty"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToStoreRatingResponses(rows []StoreRating) []StoreRatingResponse {
	responses := make([]StoreRatingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, StoreRatingResponse{
			RatingResponse: ToRatingResponse(&row.Rating),
			UserName:       row.UserName,
			UserEmail:      row.UserEmail,
		})
	}
	return responses
}

func ToUserRatingResponses(rows []UserRating) []UserRatingResponse {
	responses := make([]UserRatingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, UserRatingResponse{
			RatingResponse: ToRatingResponse(&row.Rating),
			StoreName:      row.StoreName,
			StoreAddress:   row.StoreAddress,
		})
	}
	return responses
}
