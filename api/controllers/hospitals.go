package controllers

import (
	"net/http"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/api/validators"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/gis"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
)

const defaultHospitalRadiusKm = 5

// HospitalsNearby proxies the GIS service for hospitals around a coordinate.
func HospitalsNearby(finder *gis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if finder == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gis client unavailable"))
			return
		}

		lat, err := validators.ParseQueryFloat(r, "lat")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		lng, err := validators.ParseQueryFloat(r, "lng")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if lat == nil || lng == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng are required"))
			return
		}
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range"))
			return
		}

		radius, err := validators.ParseQueryFloat(r, "radius_km")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		radiusKm := float64(defaultHospitalRadiusKm)
		if radius != nil && *radius > 0 {
			radiusKm = *radius
		}

		collection, err := finder.NearbyHospitals(ctx, *lat, *lng, radiusKm)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, collection)
	}
}
