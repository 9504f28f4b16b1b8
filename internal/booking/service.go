// AngelaMos | 2026
// service.go

package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/property"
)

type PropertyLookup interface {
	GetByID(ctx context.Context, id string) (*property.Property, error)
}

type Service struct {
	repo       Repository
	properties PropertyLookup
	validator  *validator.Validate
}

func NewService(repo Repository, properties PropertyLookup) *Service {
	return &Service{
		repo:       repo,
		properties: properties,
		validator:  core.NewValidator(),
	}
}

// Create records a pending request from renterID. The property's owner and
// title are copied onto the booking now and never refreshed. Repeat
// requests for the same property are accepted.
func (s *Service) Create(
	ctx context.Context,
	renterID string,
	req CreateBookingRequest,
) (*Booking, error) {
	ctx, end := core.StartSpan(ctx, "booking.Create",
		attribute.String("property.id", req.PropertyID),
	)
	b, err := s.create(ctx, renterID, req)
	end(err)
	return b, err
}

func (s *Service) create(
	ctx context.Context,
	renterID string,
	req CreateBookingRequest,
) (*Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:            uuid.New().String(),
		PropertyID:    prop.ID,
		OwnerID:       prop.OwnerID,
		RenterID:      renterID,
		PropertyTitle: prop.Title,
		Message:       req.Message,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "booking requested",
		"booking_id", b.ID,
		"property_id", b.PropertyID,
		"renter_id", renterID,
	)
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, renterID string) ([]RenterView, error) {
	return s.repo.ListByRenter(ctx, renterID)
}

func (s *Service) ListIncoming(ctx context.Context, ownerID string) ([]OwnerView, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateStatus sets the status of a booking addressed to ownerID. Someone
// else's booking is reported exactly like a missing one.
func (s *Service) UpdateStatus(
	ctx context.Context,
	ownerID, id, status string,
) (*Booking, error) {
	ctx, end := core.StartSpan(ctx, "booking.UpdateStatus",
		attribute.String("booking.id", id),
		attribute.String("booking.status", status),
	)
	b, err := s.updateStatus(ctx, ownerID, id, status)
	end(err)
	return b, err
}

func (s *Service) updateStatus(
	ctx context.Context,
	ownerID, id, status string,
) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, core.ValidationError(
			"status must be one of: pending, accepted, rejected",
		)
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("update booking status: %w", core.ErrNotFound)
	}

	b, err := s.repo.UpdateStatusOwned(ctx, id, ownerID, status)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "booking status changed",
		"booking_id", b.ID,
		"status", b.Status,
	)
	return b, nil
}

func (s *Service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}
