// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/househunt/go-backend/internal/core"
)

const minPasswordLen = 6

const (
	roleRenter     = "renter"
	roleOwner      = "owner"
	roleAdmin      = "admin"
	statusApproved = "approved"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone already exists")
)

type UserInfo struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	Status       string
}

type NewUser struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, user NewUser) (*UserInfo, error)
	BackfillStatus(ctx context.Context, id, role string) (string, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	users     UserProvider
	tokens    *TokenManager
	validator *validator.Validate
}

func NewService(users UserProvider, tokens *TokenManager) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		validator: core.NewValidator(),
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	ctx, end := core.StartSpan(ctx, "auth.Register",
		attribute.String("user.role", req.Role),
	)
	resp, err := s.register(ctx, req)
	end(err)
	return resp, err
}

func (s *Service) register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	if req.Role == "" {
		req.Role = roleRenter
	}
	switch req.Role {
	case roleRenter, roleOwner, roleAdmin:
	default:
		return nil, core.ValidationError("invalid role")
	}

	req.Phone = strings.TrimSpace(req.Phone)
	if req.Role == roleOwner && req.Phone == "" {
		return nil, core.ValidationError("phone number is required for owners")
	}

	if !PasswordMeetsPolicy(req.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	if req.Phone != "" {
		exists, err = s.users.PhoneExists(ctx, req.Phone)
		if err != nil {
			return nil, fmt.Errorf("check phone: %w", err)
		}
		if exists {
			return nil, ErrPhoneExists
		}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := &RegisterResponse{
		Message: "Registration successful",
		User: RegisteredUser{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Phone:  user.Phone,
			Role:   user.Role,
			Status: user.Status,
		},
	}

	if user.Status == statusApproved {
		token, payload, err := s.issue(user)
		if err != nil {
			return nil, err
		}
		resp.Token = &token
		resp.TokenPayload = payload
	}

	return resp, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	ctx, end := core.StartSpan(ctx, "auth.Login")
	resp, err := s.login(ctx, req)
	end(err)
	return resp, err
}

func (s *Service) login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Status == "" {
		status, backfillErr := s.users.BackfillStatus(ctx, user.ID, user.Role)
		if backfillErr != nil {
			return nil, fmt.Errorf("backfill status: %w", backfillErr)
		}
		user.Status = status
	}

	if user.Status != statusApproved && user.Role != roleAdmin {
		return nil, ErrPendingApproval
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	token, payload, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Message:      "Login successful",
		Token:        token,
		TokenPayload: payload,
	}, nil
}

func (s *Service) issue(user *UserInfo) (string, *TokenPayload, error) {
	token, payload, err := s.tokens.Issue(TokenSubject{
		UserID: user.ID,
		Role:   user.Role,
		Status: user.Status,
	})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, payload, nil
}

// PasswordMeetsPolicy requires at least six characters including a digit.
func PasswordMeetsPolicy(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	return strings.IndexFunc(password, unicode.IsDigit) >= 0
}
