// AngelaMos | 2026
// handler.go

package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/middleware"
)

const maxBodyBytes = 64 << 10

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
	r.Route("/bookings", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/request", h.Request)
		r.Get("/mine", h.ListMine)
	})
}

// RegisterOwnerRoutes expects r to already enforce an approved owner.
func (h *Handler) RegisterOwnerRoutes(r chi.Router) {
	r.Get("/bookings", h.ListIncoming)
	r.Patch("/bookings/{id}/status", h.UpdateStatus)
}

func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	b, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "property")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, CreateBookingResponse{
		Message: "Request sent",
		Booking: ToBookingResponse(b),
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRenterViewResponseList(views))
}

func (h *Handler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListIncoming(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOwnerViewResponseList(views))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req.Status,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
			core.NotFound(w, "booking")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(b))
}
