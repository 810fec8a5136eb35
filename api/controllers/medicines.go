package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/api/validators"
	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

type createMedicinePayload struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Brand       *string `json:"brand"`
	GenericName *string `json:"generic_name"`
	Form        string  `json:"form"`
	Strength    *string `json:"strength"`
}

// MedicineList pages the catalog, optionally filtered by a q substring.
func MedicineList(svc medicines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "medicine service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<20)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, 1<<20)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		result, err := svc.ListMedicines(ctx, q, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MedicineGet(svc medicines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "medicine service unavailable"))
			return
		}

		medicineID, err := validators.ParseURLParamUUID(chi.URLParam(r, "medicineId"), "medicineId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		found, err := svc.GetMedicine(ctx, medicineID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// MedicineCreate adds a catalog entry. Restricted to owner and admin roles.
func MedicineCreate(svc medicines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "medicine service unavailable"))
			return
		}

		_, role, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createMedicinePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var form enums.MedicineForm
		if trimmed := strings.TrimSpace(payload.Form); trimmed != "" {
			parsed, err := enums.ParseMedicineForm(trimmed)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form"))
				return
			}
			form = parsed
		}

		input := medicines.CreateMedicineInput{
			Name:        payload.Name,
			Brand:       payload.Brand,
			GenericName: payload.GenericName,
			Form:        form,
			Strength:    payload.Strength,
		}
		created, err := svc.CreateMedicine(ctx, role, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
