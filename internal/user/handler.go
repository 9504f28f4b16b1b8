// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/me", h.GetMe)
	})
}

// RegisterAdminRoutes expects r to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/owners/pending", h.ListPendingOwners)
	r.Put("/owners/{id}/approve", h.ApproveOwner)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.GetMe(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MeResponse{
		User:   ToUserResponse(user),
		Claims: toClaimsResponse(claims),
	})
}

func (h *Handler) ListPendingOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := h.service.ListPendingOwners(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(owners))
}

func (h *Handler) ApproveOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.service.ApproveOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "owner")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ApproveResponse{
		Message: "Owner approved",
		Owner:   ToUserResponse(owner),
	})
}
