// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/househunt/go-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context) ([]Property, error)
	ListWithOwners(ctx context.Context) ([]Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Property, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Property, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const propertyColumns = `p.id, p.owner_id, p.title, p.description, p.rent,
		       p.location, p.bedrooms, p.bathrooms, p.size, p.furnished,
		       p.type, p.image_url, p.created_at, p.updated_at`

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, owner_id, title, description, rent, location,
			bedrooms, bathrooms, size, furnished, type, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.Rent,
		p.Location,
		p.Bedrooms,
		p.Bathrooms,
		p.Size,
		p.Furnished,
		p.Type,
		p.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties p WHERE p.id = $1`

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties p
		ORDER BY p.created_at DESC`

	props := []Property{}
	if err := r.db.SelectContext(ctx, &props, query); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	return props, nil
}

func (r *repository) ListWithOwners(ctx context.Context) ([]Listing, error) {
	query := `
		SELECT ` + propertyColumns + `,
		       u.name AS owner_name, u.email AS owner_email
		FROM properties p
		LEFT JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC`

	listings := []Listing{}
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("list properties with owners: %w", err)
	}

	return listings, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties p
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC`

	props := []Property{}
	if err := r.db.SelectContext(ctx, &props, query, ownerID); err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}

	return props, nil
}

// UpdateOwned applies patch only when the row belongs to ownerID. A missing
// row and someone else's row both report ErrNotFound.
func (r *repository) UpdateOwned(
	ctx context.Context,
	id, ownerID string,
	patch Patch,
) (*Property, error) {
	query := `
		UPDATE properties p SET
			title       = COALESCE($3, p.title),
			description = COALESCE($4, p.description),
			rent        = COALESCE($5, p.rent),
			location    = COALESCE($6, p.location),
			bedrooms    = COALESCE($7, p.bedrooms),
			bathrooms   = COALESCE($8, p.bathrooms),
			size        = COALESCE($9, p.size),
			furnished   = COALESCE($10, p.furnished),
			type        = COALESCE($11, p.type),
			image_url   = COALESCE($12, p.image_url),
			updated_at  = NOW()
		WHERE p.id = $1 AND p.owner_id = $2
		RETURNING ` + propertyColumns

	var p Property
	err := r.db.GetContext(ctx, &p, query,
		id,
		ownerID,
		patch.Title,
		patch.Description,
		patch.Rent,
		patch.Location,
		patch.Bedrooms,
		patch.Bathrooms,
		patch.Size,
		patch.Furnished,
		patch.Type,
		patch.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}

	return &p, nil
}

func (r *repository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM properties WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM properties`); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties`)
	if err != nil {
		return 0, fmt.Errorf("delete properties: %w", err)
	}
	return result.RowsAffected()
}
