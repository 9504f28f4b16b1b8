// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/househunt/go-backend/internal/config"
	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/middleware"
)

const (
	claimUserID = "userId"
	claimRole   = "role"
	claimStatus = "status"
)

// TokenManager issues and verifies HS256 session tokens. Verification never
// consults the store; the claims are whatever was true at issuance.
type TokenManager struct {
	secret []byte
	expire time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.AccessTokenExpire <= 0 {
		return nil, fmt.Errorf("jwt expiry must be positive")
	}

	return &TokenManager{
		secret: []byte(cfg.Secret),
		expire: cfg.AccessTokenExpire,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// TokenPayload mirrors the signed claims so clients can read them without
// decoding the token.
type TokenPayload struct {
	UserID    string `json:"userId"`
	Subject   string `json:"sub"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type TokenSubject struct {
	UserID string
	Role   string
	Status string
}

func (m *TokenManager) Issue(subject TokenSubject) (string, *TokenPayload, error) {
	now := m.now().Truncate(time.Second)
	exp := now.Add(m.expire)

	builder := jwt.NewBuilder().
		Subject(subject.UserID).
		IssuedAt(now).
		Expiration(exp).
		Claim(claimUserID, subject.UserID).
		Claim(claimRole, subject.Role).
		Claim(claimStatus, subject.Status)
	if m.issuer != "" {
		builder = builder.Issuer(m.issuer)
	}

	token, err := builder.Build()
	if err != nil {
		return "", nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), &TokenPayload{
		UserID:    subject.UserID,
		Subject:   subject.UserID,
		Role:      subject.Role,
		Status:    subject.Status,
		IssuedAt:  now.Unix(),
		ExpiresAt: exp.Unix(),
	}, nil
}

func (m *TokenManager) VerifyAccessToken(
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	if _, ok := token.Expiration(); !ok {
		return nil, fmt.Errorf(
			"verify token: missing exp: %w",
			core.ErrTokenInvalid,
		)
	}

	// Tokens minted before sub and iss were added carry userId alone.
	if issuer, ok := token.Issuer(); ok && m.issuer != "" && issuer != m.issuer {
		return nil, fmt.Errorf(
			"verify token: issuer mismatch: %w",
			core.ErrTokenInvalid,
		)
	}

	var userID, role, status string
	for name, dst := range map[string]*string{
		claimUserID: &userID,
		claimRole:   &role,
		claimStatus: &status,
	} {
		if err := token.Get(name, dst); err != nil || *dst == "" {
			return nil, fmt.Errorf(
				"verify token: missing %s claim: %w",
				name,
				core.ErrTokenInvalid,
			)
		}
	}

	if subject, ok := token.Subject(); ok && subject != userID {
		return nil, fmt.Errorf(
			"verify token: subject mismatch: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID: userID,
		Role:   role,
		Status: status,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
