package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
)

// PharmacyResultDTO is one page of pharmacy matches.
type PharmacyResultDTO struct {
	Kind  enums.SearchKind         `json:"kind"`
	Items []pharmacies.PharmacyDTO `json:"items"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Pages int                      `json:"pages"`
	Limit int                      `json:"limit"`
}

// ListingResultDTO is one in-stock listing matched by a medicine search. When
// the caller supplied a location, DistanceRank orders pharmacies nearest
// first; pharmacies without coordinates carry no rank and sort last. The rank
// is a sorting key only and never serialized.
type ListingResultDTO struct {
	ListingID    uuid.UUID               `json:"listing_id"`
	Price        decimal.Decimal         `json:"price"`
	Stock        int                     `json:"stock"`
	DistanceRank *int                    `json:"-"`
	Medicine     *medicines.MedicineDTO  `json:"medicine"`
	Pharmacy     *pharmacies.PharmacyDTO `json:"pharmacy"`
}

// MedicineResultDTO is one page of listing matches.
type MedicineResultDTO struct {
	Kind  enums.SearchKind   `json:"kind"`
	Items []ListingResultDTO `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Pages int                `json:"pages"`
	Limit int                `json:"limit"`
}

// PharmacyLegDTO is the truncated pharmacy preview inside a combined result.
// It carries the full match count but no page math.
type PharmacyLegDTO struct {
	Items []pharmacies.PharmacyDTO `json:"items"`
	Total int64                    `json:"total"`
}

// MedicineLegDTO is the truncated listing preview inside a combined result.
type MedicineLegDTO struct {
	Items []ListingResultDTO `json:"items"`
	Total int64              `json:"total"`
}

// AllResultDTO combines previews of both search legs.
type AllResultDTO struct {
	Kind       enums.SearchKind `json:"kind"`
	Pharmacies PharmacyLegDTO   `json:"pharmacies"`
	Medicines  MedicineLegDTO   `json:"medicines"`
}
