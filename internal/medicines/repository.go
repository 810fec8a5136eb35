package medicines

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
)

// Repository wires together medicine catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a medicine by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// FindByIDs loads the given medicines without any ordering guarantee.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Medicine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Medicine
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new medicine row.
func (r *Repository) Create(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if medicine.ID == uuid.Nil {
		medicine.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return nil, err
	}
	return medicine, nil
}

// FindByIdentity looks up a medicine by its case-insensitive
// name/strength/form/brand identity.
func (r *Repository) FindByIdentity(ctx context.Context, name string, form enums.MedicineForm, brand, strength *string) (*models.Medicine, error) {
	query := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", strings.TrimSpace(name)).
		Where("lower(form) = lower(?)", string(form))

	if brand != nil && strings.TrimSpace(*brand) != "" {
		query = query.Where("lower(brand) = lower(?)", strings.TrimSpace(*brand))
	} else {
		query = query.Where("(brand IS NULL OR brand = '')")
	}
	if strength != nil && strings.TrimSpace(*strength) != "" {
		query = query.Where("lower(strength) = lower(?)", strings.TrimSpace(*strength))
	} else {
		query = query.Where("(strength IS NULL OR strength = '')")
	}

	var medicine models.Medicine
	if err := query.First(&medicine).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// textClause matches the query as a case-insensitive substring of the name,
// generic name, or brand.
func textClause() string {
	return "(lower(name) LIKE lower(?) OR lower(generic_name) LIKE lower(?) OR lower(brand) LIKE lower(?))"
}

// List pages through the catalog, optionally filtered by a text query.
func (r *Repository) List(ctx context.Context, q string, offset, limit int) ([]models.Medicine, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if trimmed := strings.TrimSpace(q); trimmed != "" {
			like := "%" + trimmed + "%"
			return db.Where(textClause(), like, like, like)
		}
		return db
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&models.Medicine{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Medicine
	if err := filter(r.db.WithContext(ctx)).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SearchCandidates returns up to cap medicines matching the query text. The
// cap bounds the fan-out of listing lookups in the search path.
func (r *Repository) SearchCandidates(ctx context.Context, q string, cap int) ([]models.Medicine, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	var rows []models.Medicine
	if err := r.db.WithContext(ctx).
		Where(textClause(), like, like, like).
		Order("name ASC").
		Limit(cap).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
