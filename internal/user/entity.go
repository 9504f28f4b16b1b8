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
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleRenter = "renter"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

func ValidRole(role string) bool {
	switch role {
	case RoleRenter, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// InitialStatus is the status a user receives at creation. Owners wait for
// an admin; everyone else is usable immediately.
func InitialStatus(role string) string {
	if role == RoleOwner {
		return StatusPending
	}
	return StatusApproved
}

type RoleStatusCount struct {
	Role   string `db:"role"   json:"role"`
	Status string `db:"status" json:"status"`
	Count  int    `db:"count"  json:"count"`
}
