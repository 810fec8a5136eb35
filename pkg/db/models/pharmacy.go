package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/pkg/types"
)

// Pharmacy is a registered store with a single geographic point. Location
// defaults to (0,0) when the owner never set coordinates; geo queries must
// tolerate that degenerate point.
type Pharmacy struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID            `gorm:"column:owner_id;type:uuid;not null;index"`
	Name      string               `gorm:"column:name;not null"`
	Phone     *string              `gorm:"column:phone"`
	Address   types.Address        `gorm:"column:address;type:jsonb"`
	Location  types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
