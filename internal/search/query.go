package search

import (
	"strings"

	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

const (
	// DefaultRadiusKm applies when the caller sends coordinates without a radius.
	DefaultRadiusKm = 10
	MinRadiusKm     = 1
	MaxRadiusKm     = 50
)

// Query is a normalized search request. Build one with Normalize before
// handing it to the service.
type Query struct {
	Q        string
	Lat      *float64
	Lng      *float64
	RadiusKm float64
	Kind     enums.SearchKind
	Sort     enums.SearchSort
	Page     pagination.Params
}

// HasLocation reports whether the caller supplied a coordinate pair.
func (q Query) HasLocation() bool {
	return q.Lat != nil && q.Lng != nil
}

// RadiusMeters converts the clamped radius for PostGIS predicates.
func (q Query) RadiusMeters() float64 {
	return q.RadiusKm * 1000
}

// Normalize validates the raw query and applies defaults and clamps. The
// returned query is safe to execute.
func Normalize(q Query) (Query, error) {
	q.Q = strings.TrimSpace(q.Q)
	if q.Q == "" {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "q is required")
	}

	if (q.Lat == nil) != (q.Lng == nil) {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng must be provided together")
	}
	if q.Lat != nil {
		if *q.Lat < -90 || *q.Lat > 90 {
			return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "lat must be between -90 and 90")
		}
		if *q.Lng < -180 || *q.Lng > 180 {
			return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "lng must be between -180 and 180")
		}
	}

	if q.RadiusKm == 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if q.RadiusKm < MinRadiusKm {
		q.RadiusKm = MinRadiusKm
	}
	if q.RadiusKm > MaxRadiusKm {
		q.RadiusKm = MaxRadiusKm
	}

	if q.Kind == "" {
		q.Kind = enums.SearchKindAll
	}
	if !q.Kind.IsValid() {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "kind must be one of medicine, pharmacy, all")
	}

	if q.Sort == "" {
		if q.HasLocation() {
			q.Sort = enums.SearchSortDistance
		} else {
			q.Sort = enums.SearchSortPrice
		}
	}
	if !q.Sort.IsValid() {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "sort must be one of distance, price")
	}

	q.Page = pagination.Normalize(q.Page)
	return q, nil
}
