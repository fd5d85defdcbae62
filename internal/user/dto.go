// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Address  string `json:"address"  validate:"max=400"`
	Role     string `json:"role"     validate:"required,oneof=system_admin normal_user store_owner"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,min=20,max=60"`
	Email   *string `json:"email,omitempty"   validate:"omitempty,email,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=system_admin normal_user store_owner"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
