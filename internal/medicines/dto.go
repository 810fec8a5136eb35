package medicines

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
)

// MedicineDTO is the public representation of a catalog entry.
type MedicineDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Brand       *string            `json:"brand,omitempty"`
	GenericName *string            `json:"generic_name,omitempty"`
	Form        enums.MedicineForm `json:"form"`
	Strength    *string            `json:"strength,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// MedicineListDTO wraps a catalog page.
type MedicineListDTO struct {
	Items []MedicineDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Limit int           `json:"limit"`
}

// ToDTO maps the model to its public shape.
func ToDTO(medicine *models.Medicine) *MedicineDTO {
	if medicine == nil {
		return nil
	}
	return &MedicineDTO{
		ID:          medicine.ID,
		Name:        medicine.Name,
		Brand:       medicine.Brand,
		GenericName: medicine.GenericName,
		Form:        medicine.Form,
		Strength:    medicine.Strength,
		CreatedAt:   medicine.CreatedAt,
		UpdatedAt:   medicine.UpdatedAt,
	}
}
