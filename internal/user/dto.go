// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/househunt/go-backend/internal/middleware"
)

type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClaimsResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// MeResponse pairs the stored profile with the caller's token claims; the
// two disagree on status until an approved owner logs in again.
type MeResponse struct {
	User   UserResponse   `json:"user"`
	Claims ClaimsResponse `json:"claims"`
}

type ApproveResponse struct {
	Message string       `json:"message"`
	Owner   UserResponse `json:"owner"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}

func toClaimsResponse(c *middleware.AccessTokenClaims) ClaimsResponse {
	return ClaimsResponse{
		UserID: c.UserID,
		Role:   c.Role,
		Status: c.Status,
	}
}
