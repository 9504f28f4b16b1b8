// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/househunt/go-backend/internal/auth"
	"github.com/househunt/go-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

func (s *Service) PhoneExists(ctx context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, nil
	}
	return s.repo.ExistsByPhone(ctx, phone)
}

// Create persists a new account. Status is derived from the role here and
// nowhere else.
func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	if !ValidRole(nu.Role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			nu.Role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(nu.Name),
		Email:        normalizeEmail(nu.Email),
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
		Status:       InitialStatus(nu.Role),
		Phone:        strings.TrimSpace(nu.Phone),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return nil, fmt.Errorf("%w: %w", auth.ErrEmailExists, err)
		case errors.Is(err, ErrPhoneTaken):
			return nil, fmt.Errorf("%w: %w", auth.ErrPhoneExists, err)
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// BackfillStatus writes the role default for a record created before
// status existed and returns the status now in effect.
func (s *Service) BackfillStatus(
	ctx context.Context,
	id, role string,
) (string, error) {
	status := InitialStatus(role)
	if err := s.repo.SetStatusIfMissing(ctx, id, status); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "user status backfilled",
		"user_id", id,
		"role", role,
		"status", status,
	)
	return status, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("get me: %w", core.ErrNotFound)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListPendingOwners(ctx context.Context) ([]User, error) {
	return s.repo.ListByRoleAndStatus(ctx, RoleOwner, StatusPending)
}

// ApproveOwner moves an owner to approved. Approving an already approved
// owner succeeds again. Tokens issued earlier keep their pending status.
func (s *Service) ApproveOwner(ctx context.Context, id string) (*User, error) {
	ctx, end := core.StartSpan(ctx, "user.ApproveOwner",
		attribute.String("user.id", id),
	)
	user, err := s.approveOwner(ctx, id)
	end(err)
	return user, err
}

func (s *Service) approveOwner(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("approve owner: %w", core.ErrNotFound)
	}

	user, err := s.repo.ApproveOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "owner approved", "user_id", user.ID)
	return user, nil
}

func (s *Service) CountByRoleAndStatus(
	ctx context.Context,
) ([]RoleStatusCount, error) {
	return s.repo.CountByRoleAndStatus(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
	}
}

var _ auth.UserProvider = (*Service)(nil)
