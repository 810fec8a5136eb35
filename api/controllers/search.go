package controllers

import (
	"net/http"
	"strings"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/api/validators"
	"github.com/hardikraval/medlocate-backend/internal/search"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

// Search answers /search requests, dispatching on the kind parameter.
func Search(svc search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		query, err := parseSearchQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var result any
		switch query.Kind {
		case enums.SearchKindPharmacy:
			result, err = svc.SearchPharmacies(ctx, query)
		case enums.SearchKindMedicine:
			result, err = svc.SearchMedicines(ctx, query)
		default:
			result, err = svc.SearchAll(ctx, query)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseSearchQuery(r *http.Request) (search.Query, error) {
	lat, err := validators.ParseQueryFloat(r, "lat")
	if err != nil {
		return search.Query{}, err
	}
	lng, err := validators.ParseQueryFloat(r, "lng")
	if err != nil {
		return search.Query{}, err
	}
	radius, err := validators.ParseQueryFloat(r, "radius_km")
	if err != nil {
		return search.Query{}, err
	}
	page, err := validators.ParseQueryInt(r, "page", 0, 1, 1<<20)
	if err != nil {
		return search.Query{}, err
	}
	// Oversize limits are clamped by pagination.Normalize, matching the
	// radius clamp discipline.
	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 1<<20)
	if err != nil {
		return search.Query{}, err
	}

	query := search.Query{
		Q:    strings.TrimSpace(r.URL.Query().Get("q")),
		Lat:  lat,
		Lng:  lng,
		Kind: enums.SearchKind(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind")))),
		Sort: enums.SearchSort(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort")))),
		Page: pagination.Params{Page: page, Limit: limit},
	}
	if radius != nil {
		query.RadiusKm = *radius
	}

	// Defaults and range checks happen inside the service; kind is resolved
	// here so the handler can dispatch before normalization.
	normalized, err := search.Normalize(query)
	if err != nil {
		return search.Query{}, err
	}
	query.Kind = normalized.Kind
	return query, nil
}
