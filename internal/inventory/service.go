package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

// Service exposes inventory management for pharmacy owners.
type Service interface {
	UpsertListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input UpsertListingInput) (*ListingDTO, error)
	ListListings(ctx context.Context, pharmacyID uuid.UUID, params pagination.Params) (*ListingPageDTO, error)
	DeleteListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, listingID uuid.UUID) error
}

// UpsertListingInput holds the validated payload to write a listing.
type UpsertListingInput struct {
	PharmacyID uuid.UUID
	MedicineID uuid.UUID
	Price      decimal.Decimal
	Stock      int
}

type listingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryListing, error)
	Upsert(ctx context.Context, listing *models.InventoryListing) (*models.InventoryListing, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]models.InventoryListing, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pharmacyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pharmacy, error)
}

type medicineLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error)
}

type service struct {
	repo       listingStore
	pharmacies pharmacyLoader
	medicines  medicineLoader
}

// NewService constructs an inventory service instance.
func NewService(repo listingStore, pharmacies pharmacyLoader, medicines medicineLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if pharmacies == nil {
		return nil, fmt.Errorf("pharmacy repository required")
	}
	if medicines == nil {
		return nil, fmt.Errorf("medicine repository required")
	}
	return &service{repo: repo, pharmacies: pharmacies, medicines: medicines}, nil
}

// UpsertListing writes the price/stock for a (pharmacy, medicine) pair after
// ownership and existence checks.
func (s *service) UpsertListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input UpsertListingInput) (*ListingDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	pharmacy, err := s.pharmacies.FindByID(ctx, input.PharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pharmacy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy")
	}
	if pharmacy.OwnerID != actorID && actorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "pharmacy belongs to another owner")
	}

	if _, err := s.medicines.FindByID(ctx, input.MedicineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading medicine")
	}

	stored, err := s.repo.Upsert(ctx, &models.InventoryListing{
		PharmacyID: input.PharmacyID,
		MedicineID: input.MedicineID,
		Price:      input.Price,
		Stock:      input.Stock,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upserting listing")
	}
	return ToDTO(stored), nil
}

// ListListings pages a pharmacy's listings, most recently updated first.
func (s *service) ListListings(ctx context.Context, pharmacyID uuid.UUID, params pagination.Params) (*ListingPageDTO, error) {
	if _, err := s.pharmacies.FindByID(ctx, pharmacyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pharmacy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy")
	}

	params = pagination.Normalize(params)
	rows, total, err := s.repo.ListByPharmacy(ctx, pharmacyID, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing inventory")
	}

	items := make([]ListingDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *ToDTO(&rows[i]))
	}
	return &ListingPageDTO{
		Items: items,
		Total: total,
		Page:  params.Page,
		Pages: pagination.PageCount(total, params.Limit),
		Limit: params.Limit,
	}, nil
}

// DeleteListing removes a listing after an ownership check.
func (s *service) DeleteListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, listingID uuid.UUID) error {
	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading listing")
	}

	pharmacy, err := s.pharmacies.FindByID(ctx, listing.PharmacyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy")
	}
	if pharmacy.OwnerID != actorID && actorRole != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "pharmacy belongs to another owner")
	}

	if err := s.repo.Delete(ctx, listingID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting listing")
	}
	return nil
}
