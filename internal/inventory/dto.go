package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/pkg/db/models"
)

// ListingDTO is the public representation of an inventory listing.
type ListingDTO struct {
	ID         uuid.UUID              `json:"id"`
	PharmacyID uuid.UUID              `json:"pharmacy_id"`
	MedicineID uuid.UUID              `json:"medicine_id"`
	Price      decimal.Decimal        `json:"price"`
	Stock      int                    `json:"stock"`
	Medicine   *medicines.MedicineDTO `json:"medicine,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ListingPageDTO wraps one page of a pharmacy's listings.
type ListingPageDTO struct {
	Items []ListingDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
	Limit int          `json:"limit"`
}

// ToDTO maps the model to its public shape.
func ToDTO(listing *models.InventoryListing) *ListingDTO {
	if listing == nil {
		return nil
	}
	return &ListingDTO{
		ID:         listing.ID,
		PharmacyID: listing.PharmacyID,
		MedicineID: listing.MedicineID,
		Price:      listing.Price,
		Stock:      listing.Stock,
		Medicine:   medicines.ToDTO(listing.Medicine),
		CreatedAt:  listing.CreatedAt,
		UpdatedAt:  listing.UpdatedAt,
	}
}
