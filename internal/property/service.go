// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/media"
)

type ImageIngester interface {
	Ingest(ctx context.Context, up media.Upload) (string, error)
	Remove(url string) error
}

type Service struct {
	repo      Repository
	images    ImageIngester
	cache     ListCache
	validator *validator.Validate
}

func NewService(repo Repository, images ImageIngester, cache ListCache) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		repo:      repo,
		images:    images,
		cache:     cache,
		validator: core.NewValidator(),
	}
}

func (s *Service) List(ctx context.Context) ([]Property, error) {
	if props, ok := s.cache.GetList(ctx); ok {
		return props, nil
	}

	props, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetList(ctx, props)
	return props, nil
}

func (s *Service) ListWithOwners(ctx context.Context) ([]Listing, error) {
	if listings, ok := s.cache.GetListings(ctx); ok {
		return listings, nil
	}

	listings, err := s.repo.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetListings(ctx, listings)
	return listings, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Property, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetByID maps malformed ids to ErrNotFound so callers see one outcome for
// anything that does not resolve to a row.
func (s *Service) GetByID(ctx context.Context, id string) (*Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

// Create stores a property owned by ownerID. The owner comes from the
// caller's identity only; image is optional.
func (s *Service) Create(
	ctx context.Context,
	ownerID string,
	req CreatePropertyRequest,
	image *media.Upload,
) (*Property, error) {
	ctx, end := core.StartSpan(ctx, "property.Create",
		attribute.String("owner.id", ownerID),
	)
	p, err := s.create(ctx, ownerID, req, image)
	end(err)
	return p, err
}

func (s *Service) create(
	ctx context.Context,
	ownerID string,
	req CreatePropertyRequest,
	image *media.Upload,
) (*Property, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	imageURL, err := s.ingest(ctx, image)
	if err != nil {
		return nil, err
	}

	propType := req.Type
	if propType == "" {
		propType = TypeApartment
	}

	p := &Property{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Rent:        req.Rent,
		Location:    req.Location,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Size:        req.Size,
		Furnished:   req.Furnished,
		Type:        propType,
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.discardImage(ctx, imageURL)
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	ownerID, id string,
	req UpdatePropertyRequest,
	image *media.Upload,
) (*Property, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("update property: %w", core.ErrNotFound)
	}

	patch := req.toPatch()

	if image != nil {
		imageURL, err := s.ingest(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &imageURL
	}

	p, err := s.repo.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		if patch.ImageURL != nil {
			s.discardImage(ctx, *patch.ImageURL)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	if err := s.repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// discardImage removes an image stored for a write that never landed.
func (s *Service) discardImage(ctx context.Context, url string) {
	if url == "" || s.images == nil {
		return
	}
	if err := s.images.Remove(url); err != nil {
		slog.WarnContext(ctx, "failed to remove orphaned image",
			"url", url,
			"error", err,
		)
	}
}

func (s *Service) ingest(ctx context.Context, image *media.Upload) (string, error) {
	if image == nil {
		return "", nil
	}
	if s.images == nil {
		return "", fmt.Errorf("image upload not configured: %w", core.ErrInternal)
	}

	url, err := s.images.Ingest(ctx, *image)
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return "", core.ValidationError(media.ErrUnsupportedType.Error())
	case errors.Is(err, media.ErrTooLarge):
		return "", core.NewAppError(
			err,
			"image exceeds the upload size limit",
			http.StatusRequestEntityTooLarge,
			core.CodePayloadTooLarge,
		)
	case err != nil:
		return "", fmt.Errorf("ingest image: %w", err)
	}

	return url, nil
}
