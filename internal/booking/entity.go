// AngelaMos | 2026
// entity.go

package booking

import (
	"database/sql"
	"time"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Booking stores OwnerID and PropertyTitle as they were when the request
// was made. Later property edits do not touch them.
type Booking struct {
	ID            string    `db:"id"`
	PropertyID    string    `db:"property_id"`
	OwnerID       string    `db:"owner_id"`
	RenterID      string    `db:"renter_id"`
	PropertyTitle string    `db:"property_title"`
	Message       string    `db:"message"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type RenterView struct {
	ID               string         `db:"id"`
	PropertyID       string         `db:"property_id"`
	PropertyTitle    sql.NullString `db:"property_title"`
	PropertyLocation sql.NullString `db:"property_location"`
	OwnerName        sql.NullString `db:"owner_name"`
	OwnerEmail       sql.NullString `db:"owner_email"`
	OwnerPhone       sql.NullString `db:"owner_phone"`
	Message          string         `db:"message"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
}

type OwnerView struct {
	ID            string         `db:"id"`
	PropertyID    string         `db:"property_id"`
	RenterName    sql.NullString `db:"renter_name"`
	RenterEmail   sql.NullString `db:"renter_email"`
	PropertyTitle sql.NullString `db:"property_title"`
	Message       string         `db:"message"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count"  json:"count"`
}
