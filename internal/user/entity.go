// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Address      string    `db:"address"`
	Role         string    `db:"role"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsStoreOwner() bool {
	return u.Role == RoleStoreOwner
}

const (
	RoleAdmin      = "system_admin"
	RoleNormalUser = "normal_user"
	RoleStoreOwner = "store_owner"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleNormalUser, RoleStoreOwner:
		return true
	}
	return false
}
