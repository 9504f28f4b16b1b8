// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/househunt/go-backend/internal/core"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, resp)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONError(w, core.NewAppError(
			err,
			"invalid credentials",
			http.StatusUnauthorized,
			core.CodeInvalidCreds,
		))
	case errors.Is(err, ErrPendingApproval):
		core.JSONError(w, core.NewAppError(
			err,
			"account pending approval",
			http.StatusForbidden,
			core.CodePending,
		))
	case errors.Is(err, ErrWeakPassword):
		core.JSONError(w, core.NewAppError(
			err,
			"password must be at least 6 characters and include a number",
			http.StatusUnprocessableEntity,
			core.CodeWeakPassword,
		))
	case errors.Is(err, ErrEmailExists):
		core.JSONError(w, core.DuplicateError("email"))
	case errors.Is(err, ErrPhoneExists):
		core.JSONError(w, core.DuplicateError("phone"))
	default:
		core.JSONError(w, err)
	}
}
