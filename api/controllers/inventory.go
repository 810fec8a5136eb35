package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/api/validators"
	"github.com/hardikraval/medlocate-backend/internal/inventory"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

type upsertListingPayload struct {
	MedicineID uuid.UUID       `json:"medicine_id" validate:"required"`
	Price      decimal.Decimal `json:"price" validate:"required"`
	Stock      int             `json:"stock" validate:"min=0"`
}

// InventoryUpsert creates or replaces the listing for a medicine at the
// pharmacy in the URL.
func InventoryUpsert(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
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

		var payload upsertListingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := inventory.UpsertListingInput{
			PharmacyID: pharmacyID,
			MedicineID: payload.MedicineID,
			Price:      payload.Price,
			Stock:      payload.Stock,
		}
		listing, err := svc.UpsertListing(ctx, actorID, role, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		pharmacyID, err := validators.ParseURLParamUUID(chi.URLParam(r, "pharmacyId"), "pharmacyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
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

		result, err := svc.ListListings(ctx, pharmacyID, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actorID, role, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingID, err := validators.ParseURLParamUUID(chi.URLParam(r, "listingId"), "listingId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteListing(ctx, actorID, role, listingID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
