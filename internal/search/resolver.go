package search

import (
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	"github.com/hardikraval/medlocate-backend/pkg/geo"
)

// resolveDistance backfills a haversine distance for hits the database
// returned without one. Rows with no stored coordinates stay unresolved.
func resolveDistance(dto *pharmacies.PharmacyDTO, q Query) {
	if dto == nil || dto.Location == nil || !q.HasLocation() {
		return
	}
	if dto.DistanceMeters != nil && *dto.DistanceMeters > 0 {
		return
	}
	distance := geo.DistanceMeters(
		geo.Point{Lat: *q.Lat, Lng: *q.Lng},
		geo.Point{Lat: dto.Location.Lat, Lng: dto.Location.Lng},
	)
	dto.DistanceMeters = &distance
}
