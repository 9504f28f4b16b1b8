// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/househunt/go-backend/internal/core"
)

const ClaimsKey contextKey = "jwt_claims"

const (
	roleOwner      = "owner"
	roleAdmin      = "admin"
	statusApproved = "approved"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (*AccessTokenClaims, error)
}

// AccessTokenClaims is the identity snapshot carried by a session token.
// Status reflects the user at issuance and is never refreshed from the store.
type AccessTokenClaims struct {
	UserID string
	Role   string
	Status string
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CheckRole fails with Forbidden when the caller's role is not one of roles.
func CheckRole(claims *AccessTokenClaims, roles ...string) error {
	if claims == nil {
		return core.UnauthorizedError("")
	}
	for _, role := range roles {
		if claims.Role == role {
			return nil
		}
	}
	return core.ForbiddenError("insufficient permissions")
}

// CheckApprovedOwner requires role=owner and status=approved in the claims.
func CheckApprovedOwner(claims *AccessTokenClaims) error {
	if claims == nil {
		return core.UnauthorizedError("")
	}
	if claims.Role != roleOwner {
		return core.ForbiddenError("owner access only")
	}
	if claims.Status != statusApproved {
		return core.ForbiddenError("owner account pending approval")
	}
	return nil
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return guard(func(c *AccessTokenClaims) error {
		return CheckRole(c, roles...)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(roleAdmin)(next)
}

func RequireApprovedOwner(next http.Handler) http.Handler {
	return guard(CheckApprovedOwner)(next)
}

func guard(check func(*AccessTokenClaims) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(GetClaims(r.Context())); err != nil {
				core.JSONError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	if errors.Is(err, core.ErrTokenExpired) {
		core.JSONError(w, core.TokenExpiredError())
		return
	}
	core.JSONError(w, core.TokenInvalidError())
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.UserID
	}
	return ""
}

// WithClaims returns ctx carrying claims, for callers outside the HTTP chain.
func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
