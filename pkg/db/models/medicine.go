package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/pkg/enums"
)

// Medicine is a catalog entry. Identity is immutable; descriptive fields are
// mutable. A unique expression index enforces case-insensitive uniqueness on
// (name, brand, strength).
type Medicine struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string             `gorm:"column:name;not null;index"`
	Brand       *string            `gorm:"column:brand;index"`
	GenericName *string            `gorm:"column:generic_name;index"`
	Form        enums.MedicineForm `gorm:"column:form;type:medicine_form;not null;default:'other'"`
	Strength    *string            `gorm:"column:strength"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
