package medicines

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
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

// Service exposes catalog operations.
type Service interface {
	ListMedicines(ctx context.Context, q string, params pagination.Params) (*MedicineListDTO, error)
	GetMedicine(ctx context.Context, id uuid.UUID) (*MedicineDTO, error)
	CreateMedicine(ctx context.Context, actorRole enums.UserRole, input CreateMedicineInput) (*MedicineDTO, error)
}

// CreateMedicineInput holds the validated payload to add a catalog entry.
type CreateMedicineInput struct {
	Name        string
	Brand       *string
	GenericName *string
	Form        enums.MedicineForm
	Strength    *string
}

type medicineStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error)
	FindByIdentity(ctx context.Context, name string, form enums.MedicineForm, brand, strength *string) (*models.Medicine, error)
	Create(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error)
	List(ctx context.Context, q string, offset, limit int) ([]models.Medicine, int64, error)
}

type service struct {
	repo medicineStore
}

// NewService constructs a medicine service instance.
func NewService(repo medicineStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("medicine repository required")
	}
	return &service{repo: repo}, nil
}

// ListMedicines pages through the catalog ordered by name.
func (s *service) ListMedicines(ctx context.Context, q string, params pagination.Params) (*MedicineListDTO, error) {
	params = pagination.Normalize(params)

	rows, total, err := s.repo.List(ctx, q, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing medicines")
	}

	items := make([]MedicineDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *ToDTO(&rows[i]))
	}
	return &MedicineListDTO{
		Items: items,
		Total: total,
		Page:  params.Page,
		Pages: pagination.PageCount(total, params.Limit),
		Limit: params.Limit,
	}, nil
}

// GetMedicine returns one catalog entry.
func (s *service) GetMedicine(ctx context.Context, id uuid.UUID) (*MedicineDTO, error) {
	medicine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading medicine")
	}
	return ToDTO(medicine), nil
}

// CreateMedicine adds a catalog entry. Identity (name, strength, form, brand)
// is deduplicated case-insensitively.
func (s *service) CreateMedicine(ctx context.Context, actorRole enums.UserRole, input CreateMedicineInput) (*MedicineDTO, error) {
	if actorRole != enums.UserRoleOwner && actorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners can add medicines")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine name is required")
	}
	form := input.Form
	if form == "" {
		form = enums.MedicineFormOther
	}
	if !form.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid medicine form %q", input.Form))
	}

	brand := trimOptional(input.Brand)
	strength := trimOptional(input.Strength)

	if _, err := s.repo.FindByIdentity(ctx, name, form, brand, strength); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "medicine already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking medicine identity")
	}

	created, err := s.repo.Create(ctx, &models.Medicine{
		Name:        name,
		Brand:       brand,
		GenericName: trimOptional(input.GenericName),
		Form:        form,
		Strength:    strength,
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "medicine already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating medicine")
	}
	return ToDTO(created), nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
