// AngelaMos | 2026
// entity.go

package property

import (
	"database/sql"
	"time"
)

const (
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeVilla     = "villa"
)

type Property struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Rent        float64   `db:"rent"`
	Location    string    `db:"location"`
	Bedrooms    *int      `db:"bedrooms"`
	Bathrooms   *int      `db:"bathrooms"`
	Size        *float64  `db:"size"`
	Furnished   bool      `db:"furnished"`
	Type        string    `db:"type"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Listing is a property joined with its owner. Owner fields are null when
// the owner row no longer exists.
type Listing struct {
	Property
	OwnerName  sql.NullString `db:"owner_name"`
	OwnerEmail sql.NullString `db:"owner_email"`
}

// Patch holds the fields an owner may change. Nil means unchanged; the
// owner is never part of it.
type Patch struct {
	Title       *string
	Description *string
	Rent        *float64
	Location    *string
	Bedrooms    *int
	Bathrooms   *int
	Size        *float64
	Furnished   *bool
	Type        *string
	ImageURL    *string
}
