package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/api/validators"
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
	"github.com/hardikraval/medlocate-backend/pkg/types"
)

type createPharmacyPayload struct {
	Name     string                    `json:"name" validate:"required,min=2"`
	Phone    *string                   `json:"phone" validate:"omitempty,min=7"`
	Address  types.Address             `json:"address"`
	Location *pharmacies.LocationDTO   `json:"location"`
}

type updatePharmacyPayload struct {
	Name     *string                   `json:"name" validate:"omitempty,min=2"`
	Phone    *string                   `json:"phone" validate:"omitempty,min=7"`
	Address  *types.Address            `json:"address"`
	Location *pharmacies.LocationDTO   `json:"location"`
}

// PharmacyCreate registers a pharmacy owned by the calling user.
func PharmacyCreate(svc pharmacies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createPharmacyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := pharmacies.CreatePharmacyInput{
			Name:     payload.Name,
			Phone:    payload.Phone,
			Address:  payload.Address,
			Location: payload.Location,
		}
		created, err := svc.CreatePharmacy(ctx, actorID, role, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func PharmacyGet(svc pharmacies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		pharmacyID, err := validators.ParseURLParamUUID(chi.URLParam(r, "pharmacyId"), "pharmacyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		found, err := svc.GetPharmacy(ctx, pharmacyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

func PharmacyUpdate(svc pharmacies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pharmacyID, err := validators.ParseURLParamUUID(chi.URLParam(r, "pharmacyId"), "pharmacyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updatePharmacyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := pharmacies.UpdatePharmacyInput{
			Name:     payload.Name,
			Phone:    payload.Phone,
			Address:  payload.Address,
			Location: payload.Location,
		}
		updated, err := svc.UpdatePharmacy(ctx, actorID, role, pharmacyID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func PharmacyDelete(svc pharmacies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pharmacyID, err := validators.ParseURLParamUUID(chi.URLParam(r, "pharmacyId"), "pharmacyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeletePharmacy(ctx, actorID, role, pharmacyID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PharmacyListMine returns the pharmacies owned by the calling user.
func PharmacyListMine(svc pharmacies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		actorID, _, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		owned, err := svc.ListMine(ctx, actorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, owned)
	}
}
