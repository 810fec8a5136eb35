package pharmacies

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
)

// PharmacyHit is a pharmacy row annotated with its distance from a search origin.
type PharmacyHit struct {
	models.Pharmacy `gorm:"embedded"`
	DistanceMeters  float64 `gorm:"column:distance_meters"`
}

// Repository wires together pharmacy persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a pharmacy by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Pharmacy, error) {
	var pharmacy models.Pharmacy
	if err := r.db.WithContext(ctx).First(&pharmacy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pharmacy, nil
}

// FindByIDs loads the given pharmacies without any ordering guarantee.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Pharmacy, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Pharmacy
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByOwner returns all pharmacies owned by the user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Pharmacy, error) {
	var rows []models.Pharmacy
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new pharmacy row.
func (r *Repository) Create(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	if pharmacy.ID == uuid.Nil {
		pharmacy.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(pharmacy).Error; err != nil {
		return nil, err
	}
	return pharmacy, nil
}

// Update persists the full pharmacy row.
func (r *Repository) Update(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	if err := r.db.WithContext(ctx).Save(pharmacy).Error; err != nil {
		return nil, err
	}
	return pharmacy, nil
}

// Delete removes the pharmacy by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pharmacy{}).Error
}

// textPredicate builds the shared text-match clause: substring match on name,
// city, and state, plus exact pincode match when the query is all digits.
func textPredicate(q string) (string, []any) {
	like := "%" + q + "%"
	clause := "(name ILIKE ? OR address->>'city' ILIKE ? OR address->>'state' ILIKE ?"
	args := []any{like, like, like}
	if isDigits(q) {
		clause += " OR address->>'pincode' = ?"
		args = append(args, q)
	}
	clause += ")"
	return clause, args
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SearchByText pages through pharmacies matching the query, ordered by name.
func (r *Repository) SearchByText(ctx context.Context, q string, offset, limit int) ([]models.Pharmacy, int64, error) {
	clause, args := textPredicate(strings.TrimSpace(q))

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Pharmacy{}).
		Where(clause, args...).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Pharmacy
	if err := r.db.WithContext(ctx).
		Where(clause, args...).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

const searchWithinRadiusQuery = `
SELECT p.*,
       ST_Distance(p.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) AS distance_meters
FROM pharmacies p
WHERE %s
  AND p.location IS NOT NULL
  AND ST_DWithin(p.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
ORDER BY distance_meters ASC, p.name ASC
LIMIT ? OFFSET ?
`

const countWithinRadiusQuery = `
SELECT count(*)
FROM pharmacies p
WHERE %s
  AND p.location IS NOT NULL
  AND ST_DWithin(p.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
`

// SearchWithinRadius pages through matching pharmacies inside the radius,
// nearest first. Distance is reported in meters.
func (r *Repository) SearchWithinRadius(ctx context.Context, q string, lat, lng, radiusMeters float64, offset, limit int) ([]PharmacyHit, int64, error) {
	clause, clauseArgs := textPredicate(strings.TrimSpace(q))

	query := withTextClause(searchWithinRadiusQuery, clause)
	args := append([]any{lng, lat}, clauseArgs...)
	args = append(args, lng, lat, radiusMeters, limit, offset)

	var hits []PharmacyHit
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&hits).Error; err != nil {
		return nil, 0, err
	}

	countQuery := withTextClause(countWithinRadiusQuery, clause)
	countArgs := append(append([]any{}, clauseArgs...), lng, lat, radiusMeters)

	var total int64
	if err := r.db.WithContext(ctx).Raw(countQuery, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}
	return hits, total, nil
}

const nearbyIDsQuery = `
SELECT id
FROM pharmacies
WHERE id IN ? AND location IS NOT NULL
  AND ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
ORDER BY location <-> ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
`

// NearbyIDs returns the subset of the given pharmacies that lie within
// radiusMeters of the origin, nearest first via the KNN operator. Pharmacies
// without a stored location are omitted.
func (r *Repository) NearbyIDs(ctx context.Context, ids []uuid.UUID, lat, lng, radiusMeters float64) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ordered []uuid.UUID
	if err := r.db.WithContext(ctx).Raw(nearbyIDsQuery, ids, lng, lat, radiusMeters, lng, lat).Scan(&ordered).Error; err != nil {
		return nil, err
	}
	return ordered, nil
}

func withTextClause(template, clause string) string {
	return strings.Replace(template, "%s", clause, 1)
}
