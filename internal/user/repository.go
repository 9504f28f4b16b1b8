// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/househunt/go-backend/internal/core"
)

const (
	emailConstraint = "users_email_key"
	phoneConstraint = "users_phone_key"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrPhoneTaken = errors.New("phone already registered")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FirstByRole(ctx context.Context, role string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetStatusIfMissing(ctx context.Context, id, status string) error
	ApproveOwner(ctx context.Context, id string) (*User, error)
	ListByRoleAndStatus(ctx context.Context, role, status string) ([]User, error)
	CountByRoleAndStatus(ctx context.Context) ([]RoleStatusCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, password_hash, role,
		       COALESCE(status, '') AS status, phone, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, status, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Phone,
	)
	if err != nil {
		switch {
		case core.IsDuplicateKeyError(err, emailConstraint):
			return fmt.Errorf("create user: %w", ErrEmailTaken)
		case core.IsDuplicateKeyError(err, phoneConstraint):
			return fmt.Errorf("create user: %w", ErrPhoneTaken)
		case core.IsDuplicateKeyError(err):
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) FirstByRole(ctx context.Context, role string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC
		LIMIT 1`

	var user User
	err := r.db.GetContext(ctx, &user, query, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("first user by role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("first user by role: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByPhone(
	ctx context.Context,
	phone string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND phone <> '')`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phone); err != nil {
		return false, fmt.Errorf("check phone exists: %w", err)
	}

	return exists, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execAffectingOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) SetStatusIfMissing(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND (status IS NULL OR status = '')`

	if _, err := r.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("backfill status: %w", err)
	}

	return nil
}

// ApproveOwner flips an owner to approved in one statement. Rows whose role
// is not owner never match, so they cannot be modified here.
func (r *repository) ApproveOwner(ctx context.Context, id string) (*User, error) {
	query := `
		UPDATE users
		SET status = 'approved', updated_at = NOW()
		WHERE id = $1 AND role = 'owner'
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("approve owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("approve owner: %w", err)
	}

	return &user, nil
}

func (r *repository) ListByRoleAndStatus(
	ctx context.Context,
	role, status string,
) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND status = $2
		ORDER BY created_at ASC`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, role, status); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) CountByRoleAndStatus(
	ctx context.Context,
) ([]RoleStatusCount, error) {
	query := `
		SELECT role, COALESCE(status, '') AS status, COUNT(*) AS count
		FROM users
		GROUP BY role, COALESCE(status, '')
		ORDER BY role, status`

	counts := []RoleStatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return counts, nil
}

func (r *repository) execAffectingOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
