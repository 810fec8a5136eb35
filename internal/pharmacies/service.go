package pharmacies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/types"
)

// Service exposes pharmacy management operations.
type Service interface {
	CreatePharmacy(ctx context.Context, ownerID uuid.UUID, ownerRole enums.UserRole, input CreatePharmacyInput) (*PharmacyDTO, error)
	UpdatePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID, input UpdatePharmacyInput) (*PharmacyDTO, error)
	DeletePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID) error
	GetPharmacy(ctx context.Context, pharmacyID uuid.UUID) (*PharmacyDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]PharmacyDTO, error)
}

// CreatePharmacyInput holds the validated payload to create a pharmacy.
type CreatePharmacyInput struct {
	Name     string
	Phone    *string
	Address  types.Address
	Location *LocationDTO
}

// UpdatePharmacyInput holds optional mutation values for a pharmacy.
type UpdatePharmacyInput struct {
	Name     *string
	Phone    *string
	Address  *types.Address
	Location *LocationDTO
}

type pharmacyStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pharmacy, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Pharmacy, error)
	Create(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error)
	Update(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo pharmacyStore
}

// NewService constructs a pharmacy service instance.
func NewService(repo pharmacyStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pharmacy repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePharmacy registers a new pharmacy for the owner.
func (s *service) CreatePharmacy(ctx context.Context, ownerID uuid.UUID, ownerRole enums.UserRole, input CreatePharmacyInput) (*PharmacyDTO, error) {
	if ownerRole != enums.UserRoleOwner && ownerRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners can register pharmacies")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy name is required")
	}
	if err := validateLocation(input.Location); err != nil {
		return nil, err
	}

	pharmacy := &models.Pharmacy{
		OwnerID: ownerID,
		Name:    name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if input.Location != nil {
		pharmacy.Location = types.GeographyPoint{Lat: input.Location.Lat, Lng: input.Location.Lng}
	}

	created, err := s.repo.Create(ctx, pharmacy)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating pharmacy")
	}
	return ToDTO(created), nil
}

// UpdatePharmacy applies the provided mutations after an ownership check.
func (s *service) UpdatePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID, input UpdatePharmacyInput) (*PharmacyDTO, error) {
	pharmacy, err := s.loadOwned(ctx, actorID, actorRole, pharmacyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy name cannot be empty")
		}
		pharmacy.Name = name
	}
	if input.Phone != nil {
		pharmacy.Phone = input.Phone
	}
	if input.Address != nil {
		pharmacy.Address = *input.Address
	}
	if input.Location != nil {
		if err := validateLocation(input.Location); err != nil {
			return nil, err
		}
		pharmacy.Location = types.GeographyPoint{Lat: input.Location.Lat, Lng: input.Location.Lng}
	}

	updated, err := s.repo.Update(ctx, pharmacy)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating pharmacy")
	}
	return ToDTO(updated), nil
}

// DeletePharmacy removes the pharmacy and cascades to its listings.
func (s *service) DeletePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, actorRole, pharmacyID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, pharmacyID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting pharmacy")
	}
	return nil
}

// GetPharmacy returns the public pharmacy detail.
func (s *service) GetPharmacy(ctx context.Context, pharmacyID uuid.UUID) (*PharmacyDTO, error) {
	pharmacy, err := s.repo.FindByID(ctx, pharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pharmacy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy")
	}
	return ToDTO(pharmacy), nil
}

// ListMine returns the pharmacies owned by the caller.
func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]PharmacyDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing pharmacies")
	}
	dtos := make([]PharmacyDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *ToDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) loadOwned(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID) (*models.Pharmacy, error) {
	pharmacy, err := s.repo.FindByID(ctx, pharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pharmacy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy")
	}
	if pharmacy.OwnerID != actorID && actorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "pharmacy belongs to another owner")
	}
	return pharmacy, nil
}

func validateLocation(loc *LocationDTO) error {
	if loc == nil {
		return nil
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return pkgerrors.New(pkgerrors.CodeValidation, "lat must be between -90 and 90")
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "lng must be between -180 and 180")
	}
	return nil
}
