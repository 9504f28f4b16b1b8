// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
	Role     string `json:"role"`
	Phone    string `json:"phone"    validate:"max=32"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisteredUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// RegisterResponse carries a nil token for accounts that still need
// approval; clients see token and tokenPayload as null.
type RegisterResponse struct {
	Message      string         `json:"message"`
	User         RegisteredUser `json:"user"`
	Token        *string        `json:"token"`
	TokenPayload *TokenPayload  `json:"tokenPayload"`
}

type LoginResponse struct {
	Message      string        `json:"message"`
	Token        string        `json:"token"`
	TokenPayload *TokenPayload `json:"tokenPayload"`
}
