package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryListing links one medicine to one pharmacy with a price and stock
// count. At most one listing exists per (pharmacy, medicine) pair; writes use
// upsert semantics on that key.
type InventoryListing struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PharmacyID uuid.UUID       `gorm:"column:pharmacy_id;type:uuid;not null;uniqueIndex:idx_inventory_pharmacy_medicine"`
	MedicineID uuid.UUID       `gorm:"column:medicine_id;type:uuid;not null;uniqueIndex:idx_inventory_pharmacy_medicine"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock      int             `gorm:"column:stock;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
	Pharmacy *Pharmacy `gorm:"foreignKey:PharmacyID"`
}
