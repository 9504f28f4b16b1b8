// AngelaMos | 2026
// handler.go

package property

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	maxUpload int64
}

func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// RegisterRoutes mounts the public listings and the legacy add endpoint.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/properties", h.List)

	r.Route("/property", func(r chi.Router) {
		r.Get("/", h.ListWithOwners)

		r.With(authenticator, middleware.RequireApprovedOwner).
			Post("/add", h.Add)
	})
}

// RegisterOwnerRoutes expects r to already enforce an approved owner.
func (h *Handler) RegisterOwnerRoutes(r chi.Router) {
	r.Get("/properties", h.ListMine)
	r.Post("/properties", h.Create)
	r.Patch("/properties/{id}", h.Update)
	r.Delete("/properties/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPropertyResponseList(props))
}

func (h *Handler) ListWithOwners(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListWithOwners(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToListingResponseList(listings))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	props, err := h.service.ListByOwner(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPropertyResponseList(props))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := h.create(w, r)
	if !ok {
		return
	}

	core.Created(w, AddPropertyResponse{
		Message:  "Property added successfully",
		Property: ToPropertyResponse(p),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.create(w, r)
	if !ok {
		return
	}

	core.Created(w, ToPropertyResponse(p))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) (*Property, bool) {
	var req CreatePropertyRequest
	body, err := readBody(w, r, h.maxUpload, &req)
	if err != nil {
		core.JSONError(w, err)
		return nil, false
	}
	defer body.close()

	if body.form != nil {
		if req, err = body.createRequest(); err != nil {
			core.JSONError(w, err)
			return nil, false
		}
	}

	p, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
		body.image,
	)
	if err != nil {
		core.JSONError(w, err)
		return nil, false
	}

	return p, true
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePropertyRequest
	body, err := readBody(w, r, h.maxUpload, &req)
	if err != nil {
		core.JSONError(w, err)
		return
	}
	defer body.close()

	if body.form != nil {
		if req, err = body.updateRequest(); err != nil {
			core.JSONError(w, err)
			return
		}
	}

	p, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req,
		body.image,
	)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		handleError(w, err)
		return
	}

	core.NoContent(w)
}

func handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
		core.NotFound(w, "property")
		return
	}
	core.JSONError(w, err)
}
