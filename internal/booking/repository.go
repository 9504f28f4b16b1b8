// AngelaMos | 2026
// repository.go

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/househunt/go-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	ListByRenter(ctx context.Context, renterID string) ([]RenterView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]OwnerView, error)
	UpdateStatusOwned(ctx context.Context, id, ownerID, status string) (*Booking, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, property_id, owner_id, renter_id, property_title, message, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, b, query,
		b.ID,
		b.PropertyID,
		b.OwnerID,
		b.RenterID,
		b.PropertyTitle,
		b.Message,
		b.Status,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// ListByRenter keeps bookings whose property or owner has since been
// removed; the joined columns come back NULL.
func (r *repository) ListByRenter(
	ctx context.Context,
	renterID string,
) ([]RenterView, error) {
	query := `
		SELECT b.id, b.property_id,
		       p.title    AS property_title,
		       p.location AS property_location,
		       o.name     AS owner_name,
		       o.email    AS owner_email,
		       o.phone    AS owner_phone,
		       b.message, b.status, b.created_at
		FROM bookings b
		LEFT JOIN properties p ON p.id = b.property_id
		LEFT JOIN users o ON o.id = b.owner_id
		WHERE b.renter_id = $1
		ORDER BY b.created_at DESC`

	views := []RenterView{}
	if err := r.db.SelectContext(ctx, &views, query, renterID); err != nil {
		return nil, fmt.Errorf("list renter bookings: %w", err)
	}

	return views, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]OwnerView, error) {
	query := `
		SELECT b.id, b.property_id,
		       u.name  AS renter_name,
		       u.email AS renter_email,
		       p.title AS property_title,
		       b.message, b.status, b.created_at
		FROM bookings b
		LEFT JOIN users u ON u.id = b.renter_id
		LEFT JOIN properties p ON p.id = b.property_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC`

	views := []OwnerView{}
	if err := r.db.SelectContext(ctx, &views, query, ownerID); err != nil {
		return nil, fmt.Errorf("list owner bookings: %w", err)
	}

	return views, nil
}

// UpdateStatusOwned sets status only on a booking addressed to ownerID.
// Concurrent updates are last-write-wins.
func (r *repository) UpdateStatusOwned(
	ctx context.Context,
	id, ownerID, status string,
) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, property_id, owner_id, renter_id, property_title,
		          message, status, created_at, updated_at`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, ownerID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update booking status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	return &b, nil
}

func (r *repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM bookings
		GROUP BY status
		ORDER BY status`

	counts := []StatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return counts, nil
}
