package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
)

// Repository wires together inventory listing persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a listing by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryListing, error) {
	var listing models.InventoryListing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Upsert writes the listing keyed on (pharmacy_id, medicine_id), overwriting
// price and stock when the pair already exists.
func (r *Repository) Upsert(ctx context.Context, listing *models.InventoryListing) (*models.InventoryListing, error) {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pharmacy_id"}, {Name: "medicine_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "stock", "updated_at"}),
		}).
		Create(listing).Error
	if err != nil {
		return nil, err
	}

	var stored models.InventoryListing
	if err := r.db.WithContext(ctx).
		First(&stored, "pharmacy_id = ? AND medicine_id = ?", listing.PharmacyID, listing.MedicineID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByPharmacy returns the pharmacy's listings, most recently updated first.
func (r *Repository) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]models.InventoryListing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryListing{}).
		Where("pharmacy_id = ?", pharmacyID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryListing
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Preload("Medicine").
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete removes a listing by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryListing{}).Error
}

// InStockByMedicineIDs loads every in-stock listing for the given medicines
// with its pharmacy attached. The search path does its own ordering.
func (r *Repository) InStockByMedicineIDs(ctx context.Context, medicineIDs []uuid.UUID) ([]models.InventoryListing, error) {
	if len(medicineIDs) == 0 {
		return nil, nil
	}
	var rows []models.InventoryListing
	if err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Pharmacy").
		Where("medicine_id IN ? AND stock > 0", medicineIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PageInStockByMedicineIDs pages in-stock listings at the database level for
// searches without a location. Price ordering is optional; the fallback is
// insertion order.
func (r *Repository) PageInStockByMedicineIDs(ctx context.Context, medicineIDs []uuid.UUID, orderByPrice bool, offset, limit int) ([]models.InventoryListing, int64, error) {
	if len(medicineIDs) == 0 {
		return nil, 0, nil
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryListing{}).
		Where("medicine_id IN ? AND stock > 0", medicineIDs).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("medicine_id IN ? AND stock > 0", medicineIDs).
		Preload("Medicine").
		Preload("Pharmacy")
	if orderByPrice {
		query = query.Order("price ASC")
	} else {
		query = query.Order("created_at ASC")
	}

	var rows []models.InventoryListing
	if err := query.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
