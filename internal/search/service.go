package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/metrics"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

// allLegLimit caps how many preview items each leg of a combined search returns.
const allLegLimit = 5

// Service answers location-aware searches over pharmacies and medicine listings.
type Service interface {
	SearchPharmacies(ctx context.Context, q Query) (*PharmacyResultDTO, error)
	SearchMedicines(ctx context.Context, q Query) (*MedicineResultDTO, error)
	SearchAll(ctx context.Context, q Query) (*AllResultDTO, error)
}

type pharmacySearcher interface {
	SearchByText(ctx context.Context, q string, offset, limit int) ([]models.Pharmacy, int64, error)
	SearchWithinRadius(ctx context.Context, q string, lat, lng, radiusMeters float64, offset, limit int) ([]pharmacies.PharmacyHit, int64, error)
	NearbyIDs(ctx context.Context, ids []uuid.UUID, lat, lng, radiusMeters float64) ([]uuid.UUID, error)
}

type medicineSearcher interface {
	SearchCandidates(ctx context.Context, q string, cap int) ([]models.Medicine, error)
}

type listingSearcher interface {
	InStockByMedicineIDs(ctx context.Context, medicineIDs []uuid.UUID) ([]models.InventoryListing, error)
	PageInStockByMedicineIDs(ctx context.Context, medicineIDs []uuid.UUID, orderByPrice bool, offset, limit int) ([]models.InventoryListing, int64, error)
}

type service struct {
	pharmacies   pharmacySearcher
	medicines    medicineSearcher
	listings     listingSearcher
	metrics      *metrics.SearchMetrics
	candidateCap int
}

// NewService constructs the search service. The candidate cap bounds how many
// catalog entries a medicine search fans out to.
func NewService(pharmacySearch pharmacySearcher, medicineSearch medicineSearcher, listingSearch listingSearcher, searchMetrics *metrics.SearchMetrics, candidateCap int) (Service, error) {
	if pharmacySearch == nil {
		return nil, fmt.Errorf("pharmacy searcher required")
	}
	if medicineSearch == nil {
		return nil, fmt.Errorf("medicine searcher required")
	}
	if listingSearch == nil {
		return nil, fmt.Errorf("listing searcher required")
	}
	if candidateCap <= 0 {
		return nil, fmt.Errorf("candidate cap must be positive")
	}
	return &service{
		pharmacies:   pharmacySearch,
		medicines:    medicineSearch,
		listings:     listingSearch,
		metrics:      searchMetrics,
		candidateCap: candidateCap,
	}, nil
}

// SearchPharmacies pages pharmacies matching the query text. With a location
// the result is radius-filtered and ordered nearest first; without one it is
// ordered by name.
func (s *service) SearchPharmacies(ctx context.Context, q Query) (result *PharmacyResultDTO, err error) {
	defer s.instrument(string(enums.SearchKindPharmacy), time.Now(), &err)

	q, err = Normalize(q)
	if err != nil {
		return nil, err
	}
	return s.pharmacyLeg(ctx, q)
}

// SearchMedicines pages in-stock listings for medicines matching the query
// text, ranked by price or by pharmacy proximity.
func (s *service) SearchMedicines(ctx context.Context, q Query) (result *MedicineResultDTO, err error) {
	defer s.instrument(string(enums.SearchKindMedicine), time.Now(), &err)

	q, err = Normalize(q)
	if err != nil {
		return nil, err
	}
	return s.medicineLeg(ctx, q)
}

// SearchAll runs both legs concurrently and returns truncated previews with
// full match counts. Page math is deliberately absent from the combined shape.
func (s *service) SearchAll(ctx context.Context, q Query) (result *AllResultDTO, err error) {
	defer s.instrument(string(enums.SearchKindAll), time.Now(), &err)

	q, err = Normalize(q)
	if err != nil {
		return nil, err
	}

	legQuery := q
	legQuery.Page = pagination.Params{Page: 1, Limit: allLegLimit}
	if q.Page.Limit < allLegLimit {
		legQuery.Page.Limit = q.Page.Limit
	}

	var (
		wg           sync.WaitGroup
		pharmacyPage *PharmacyResultDTO
		medicinePage *MedicineResultDTO
		pharmacyErr  error
		medicineErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pharmacyPage, pharmacyErr = s.pharmacyLeg(ctx, legQuery)
	}()
	go func() {
		defer wg.Done()
		medicinePage, medicineErr = s.medicineLeg(ctx, legQuery)
	}()
	wg.Wait()

	if combined := multierr.Combine(pharmacyErr, medicineErr); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "combined search failed")
	}

	return &AllResultDTO{
		Kind: enums.SearchKindAll,
		Pharmacies: PharmacyLegDTO{
			Items: pharmacyPage.Items,
			Total: pharmacyPage.Total,
		},
		Medicines: MedicineLegDTO{
			Items: medicinePage.Items,
			Total: medicinePage.Total,
		},
	}, nil
}

func (s *service) pharmacyLeg(ctx context.Context, q Query) (*PharmacyResultDTO, error) {
	result := &PharmacyResultDTO{
		Kind:  enums.SearchKindPharmacy,
		Items: []pharmacies.PharmacyDTO{},
		Page:  q.Page.Page,
		Limit: q.Page.Limit,
	}

	if q.HasLocation() {
		hits, total, err := s.pharmacies.SearchWithinRadius(ctx, q.Q, *q.Lat, *q.Lng, q.RadiusMeters(), q.Page.Offset(), q.Page.Limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "radius pharmacy search")
		}
		for i := range hits {
			dto := pharmacies.HitToDTO(&hits[i])
			resolveDistance(dto, q)
			result.Items = append(result.Items, *dto)
		}
		result.Total = total
	} else {
		rows, total, err := s.pharmacies.SearchByText(ctx, q.Q, q.Page.Offset(), q.Page.Limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "text pharmacy search")
		}
		for i := range rows {
			result.Items = append(result.Items, *pharmacies.ToDTO(&rows[i]))
		}
		result.Total = total
	}

	result.Pages = pagination.PageCount(result.Total, q.Page.Limit)
	return result, nil
}

func (s *service) medicineLeg(ctx context.Context, q Query) (*MedicineResultDTO, error) {
	result := &MedicineResultDTO{
		Kind:  enums.SearchKindMedicine,
		Items: []ListingResultDTO{},
		Page:  q.Page.Page,
		Limit: q.Page.Limit,
	}

	matched, err := s.medicines.SearchCandidates(ctx, q.Q, s.candidateCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "medicine candidate search")
	}
	if len(matched) == 0 {
		return result, nil
	}

	medicineIDs := make([]uuid.UUID, 0, len(matched))
	for i := range matched {
		medicineIDs = append(medicineIDs, matched[i].ID)
	}

	if !q.HasLocation() {
		rows, total, err := s.listings.PageInStockByMedicineIDs(ctx, medicineIDs, q.Sort == enums.SearchSortPrice, q.Page.Offset(), q.Page.Limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "paging listings")
		}
		for i := range rows {
			result.Items = append(result.Items, listingResult(&rows[i], nil))
		}
		result.Total = total
		result.Pages = pagination.PageCount(total, q.Page.Limit)
		return result, nil
	}

	rows, err := s.listings.InStockByMedicineIDs(ctx, medicineIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading listings")
	}
	if len(rows) == 0 {
		return result, nil
	}

	ranks, err := s.distanceRanks(ctx, rows, q)
	if err != nil {
		return nil, err
	}
	// No pharmacy inside the radius means no results, regardless of stock.
	if len(ranks) == 0 {
		return result, nil
	}

	items := make([]ListingResultDTO, 0, len(rows))
	for i := range rows {
		rank, ok := ranks[rows[i].PharmacyID]
		if !ok {
			continue
		}
		value := rank
		items = append(items, listingResult(&rows[i], &value))
	}

	sortListings(items, q.Sort)
	if q.Sort == enums.SearchSortDistance {
		s.metrics.IncDistanceRankFallback(string(enums.SearchKindMedicine))
	}

	result.Total = int64(len(items))
	start, end := pagination.Slice(len(items), q.Page)
	result.Items = items[start:end]
	result.Pages = pagination.PageCount(result.Total, q.Page.Limit)
	return result, nil
}

// distanceRanks resolves which of the listings' pharmacies sit inside the
// search radius and maps each to its ordinal position, nearest first.
// Pharmacies outside the radius or without coordinates are absent.
func (s *service) distanceRanks(ctx context.Context, rows []models.InventoryListing, q Query) (map[uuid.UUID]int, error) {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	pharmacyIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		id := rows[i].PharmacyID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		pharmacyIDs = append(pharmacyIDs, id)
	}

	ordered, err := s.pharmacies.NearbyIDs(ctx, pharmacyIDs, *q.Lat, *q.Lng, q.RadiusMeters())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ranking pharmacies by distance")
	}

	ranks := make(map[uuid.UUID]int, len(ordered))
	for i, id := range ordered {
		ranks[id] = i
	}
	return ranks, nil
}

// sortListings applies the requested discipline with a stable sort so ties
// keep their original order.
func sortListings(items []ListingResultDTO, discipline enums.SearchSort) {
	switch discipline {
	case enums.SearchSortPrice:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case enums.SearchSortDistance:
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := items[i].DistanceRank, items[j].DistanceRank
			if ri == nil {
				return false
			}
			if rj == nil {
				return true
			}
			return *ri < *rj
		})
	}
}

func listingResult(row *models.InventoryListing, rank *int) ListingResultDTO {
	return ListingResultDTO{
		ListingID:    row.ID,
		Price:        row.Price,
		Stock:        row.Stock,
		DistanceRank: rank,
		Medicine:     medicines.ToDTO(row.Medicine),
		Pharmacy:     pharmacies.ToDTO(row.Pharmacy),
	}
}

func (s *service) instrument(kind string, start time.Time, err *error) {
	s.metrics.ObserveDuration(kind, time.Since(start))
	if err != nil && *err != nil {
		s.metrics.IncFailure(kind)
		return
	}
	s.metrics.IncSuccess(kind)
}
