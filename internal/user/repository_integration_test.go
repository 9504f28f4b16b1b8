// AngelaMos | 2026
// repository_integration_test.go

//go:build integration

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/testutil"
)

func newUser(role, status, email, phone string) *User {
	return &User{
		ID:           uuid.NewString(),
		Name:         "Test " + role,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Status:       status,
		Phone:        phone,
	}
}

func TestRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.Postgres(t))

	if err := repo.Create(ctx, newUser(RoleOwner, StatusPending, "dup@example.com", "9000000001")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, newUser(RoleRenter, StatusApproved, "DUP@example.com", ""))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	err = repo.Create(ctx, newUser(RoleOwner, StatusPending, "other@example.com", "9000000001"))
	if !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := repo.Create(ctx, newUser(RoleRenter, StatusApproved, email, "")); err != nil {
			t.Fatalf("empty phones must not collide: %v", err)
		}
	}
}

func TestRepository_ApproveOwnerOnlyMatchesOwners(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.Postgres(t))

	owner := newUser(RoleOwner, StatusPending, "owner@example.com", "9000000002")
	renter := newUser(RoleRenter, StatusApproved, "renter@example.com", "")
	for _, u := range []*User{owner, renter} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	approved, err := repo.ApproveOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", approved.Status)
	}

	if _, err := repo.ApproveOwner(ctx, renter.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("renter approval should be not found, got %v", err)
	}

	pending, err := repo.ListByRoleAndStatus(ctx, RoleOwner, StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending owners, got %d", len(pending))
	}
}

func TestRepository_BackfillStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.Postgres(t)
	repo := NewRepository(db)

	legacy := newUser(RoleRenter, StatusApproved, "legacy@example.com", "")
	if err := repo.Create(ctx, legacy); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx, `UPDATE users SET status = NULL WHERE id = $1`, legacy.ID); err != nil {
		t.Fatalf("clear status: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "legacy@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "" {
		t.Fatalf("null status should read as empty, got %q", got.Status)
	}

	if err := repo.SetStatusIfMissing(ctx, legacy.ID, StatusApproved); err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if err := repo.SetStatusIfMissing(ctx, legacy.ID, StatusPending); err != nil {
		t.Fatalf("second backfill: %v", err)
	}

	got, err = repo.GetByID(ctx, legacy.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusApproved {
		t.Fatalf("backfill must not overwrite, got %q", got.Status)
	}
}
