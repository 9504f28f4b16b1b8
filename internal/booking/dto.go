// AngelaMos | 2026
// dto.go

package booking

import (
	"database/sql"
	"time"
)

type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	Message    string `json:"message"    validate:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BookingResponse struct {
	ID            string    `json:"_id"`
	PropertyID    string    `json:"property"`
	OwnerID       string    `json:"ownerId"`
	RenterID      string    `json:"renter"`
	PropertyTitle string    `json:"propertyTitle"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type RenterViewResponse struct {
	ID               string    `json:"_id"`
	PropertyID       string    `json:"propertyId"`
	PropertyTitle    *string   `json:"propertyTitle"`
	PropertyLocation *string   `json:"propertyLocation"`
	OwnerName        *string   `json:"ownerName"`
	OwnerEmail       *string   `json:"ownerEmail"`
	OwnerPhone       *string   `json:"ownerPhone"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

type OwnerViewResponse struct {
	ID            string    `json:"_id"`
	PropertyID    string    `json:"propertyId"`
	RenterName    *string   `json:"renterName"`
	RenterEmail   *string   `json:"renterEmail"`
	PropertyTitle *string   `json:"propertyTitle"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		OwnerID:       b.OwnerID,
		RenterID:      b.RenterID,
		PropertyTitle: b.PropertyTitle,
		Message:       b.Message,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func ToRenterViewResponseList(views []RenterView) []RenterViewResponse {
	out := make([]RenterViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, RenterViewResponse{
			ID:               v.ID,
			PropertyID:       v.PropertyID,
			PropertyTitle:    nullable(v.PropertyTitle),
			PropertyLocation: nullable(v.PropertyLocation),
			OwnerName:        nullable(v.OwnerName),
			OwnerEmail:       nullable(v.OwnerEmail),
			OwnerPhone:       nullable(v.OwnerPhone),
			Message:          v.Message,
			Status:           v.Status,
			CreatedAt:        v.CreatedAt,
		})
	}
	return out
}

func ToOwnerViewResponseList(views []OwnerView) []OwnerViewResponse {
	out := make([]OwnerViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, OwnerViewResponse{
			ID:            v.ID,
			PropertyID:    v.PropertyID,
			RenterName:    nullable(v.RenterName),
			RenterEmail:   nullable(v.RenterEmail),
			PropertyTitle: nullable(v.PropertyTitle),
			Message:       v.Message,
			Status:        v.Status,
			CreatedAt:     v.CreatedAt,
		})
	}
	return out
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
