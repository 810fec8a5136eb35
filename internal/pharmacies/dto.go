package pharmacies

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/types"
)

// LocationDTO is the lat/lng pair exposed over the API.
type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PharmacyDTO is the public representation of a pharmacy.
type PharmacyDTO struct {
	ID             uuid.UUID     `json:"id"`
	OwnerID        uuid.UUID     `json:"owner_id"`
	Name           string        `json:"name"`
	Phone          *string       `json:"phone,omitempty"`
	Address        types.Address `json:"address"`
	Location       *LocationDTO  `json:"location,omitempty"`
	DistanceMeters *float64      `json:"distance_meters,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ToDTO maps the model to its public shape.
func ToDTO(pharmacy *models.Pharmacy) *PharmacyDTO {
	if pharmacy == nil {
		return nil
	}
	dto := &PharmacyDTO{
		ID:        pharmacy.ID,
		OwnerID:   pharmacy.OwnerID,
		Name:      pharmacy.Name,
		Phone:     pharmacy.Phone,
		Address:   pharmacy.Address,
		CreatedAt: pharmacy.CreatedAt,
		UpdatedAt: pharmacy.UpdatedAt,
	}
	if pharmacy.Location.Lat != 0 || pharmacy.Location.Lng != 0 {
		dto.Location = &LocationDTO{Lat: pharmacy.Location.Lat, Lng: pharmacy.Location.Lng}
	}
	return dto
}

// HitToDTO maps a distance-annotated row to its public shape.
func HitToDTO(hit *PharmacyHit) *PharmacyDTO {
	if hit == nil {
		return nil
	}
	dto := ToDTO(&hit.Pharmacy)
	distance := hit.DistanceMeters
	dto.DistanceMeters = &distance
	return dto
}
