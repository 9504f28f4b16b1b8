// AngelaMos | 2026
// dto.go

package property

import (
	"time"
)

type CreatePropertyRequest struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Rent        float64  `json:"rent"        validate:"required,gt=0"`
	Location    string   `json:"location"    validate:"required,max=200"`
	Bedrooms    *int     `json:"bedrooms"    validate:"omitempty,gte=0"`
	Bathrooms   *int     `json:"bathrooms"   validate:"omitempty,gte=0"`
	Size        *float64 `json:"size"        validate:"omitempty,gte=0"`
	Furnished   bool     `json:"furnished"`
	Type        string   `json:"type"        validate:"omitempty,oneof=apartment house villa"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Rent        *float64 `json:"rent"        validate:"omitempty,gt=0"`
	Location    *string  `json:"location"    validate:"omitempty,min=1,max=200"`
	Bedrooms    *int     `json:"bedrooms"    validate:"omitempty,gte=0"`
	Bathrooms   *int     `json:"bathrooms"   validate:"omitempty,gte=0"`
	Size        *float64 `json:"size"        validate:"omitempty,gte=0"`
	Furnished   *bool    `json:"furnished"`
	Type        *string  `json:"type"        validate:"omitempty,oneof=apartment house villa"`
}

func (r UpdatePropertyRequest) toPatch() Patch {
	return Patch{
		Title:       r.Title,
		Description: r.Description,
		Rent:        r.Rent,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Size:        r.Size,
		Furnished:   r.Furnished,
		Type:        r.Type,
	}
}

type PropertyResponse struct {
	ID          string    `json:"_id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rent        float64   `json:"rent"`
	Location    string    `json:"location"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	Size        *float64  `json:"size,omitempty"`
	Furnished   bool      `json:"furnished"`
	Type        string    `json:"type"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OwnerSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListingResponse replaces the ownerId string with the owner object, or
// null when the owner is gone.
type ListingResponse struct {
	PropertyResponse
	OwnerID *OwnerSummary `json:"ownerId"`
}

type AddPropertyResponse struct {
	Message  string           `json:"message"`
	Property PropertyResponse `json:"property"`
}

func ToPropertyResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Rent:        p.Rent,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Size:        p.Size,
		Furnished:   p.Furnished,
		Type:        p.Type,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPropertyResponseList(props []Property) []PropertyResponse {
	responses := make([]PropertyResponse, 0, len(props))
	for i := range props {
		responses = append(responses, ToPropertyResponse(&props[i]))
	}
	return responses
}

func ToListingResponseList(listings []Listing) []ListingResponse {
	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		resp := ListingResponse{PropertyResponse: ToPropertyResponse(&l.Property)}
		if l.OwnerName.Valid {
			resp.OwnerID = &OwnerSummary{
				ID:    l.OwnerID,
				Name:  l.OwnerName.String,
				Email: l.OwnerEmail.String,
			}
		}
		responses = append(responses, resp)
	}
	return responses
}
