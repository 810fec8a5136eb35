package enums

import "fmt"

// SearchKind selects which result shape a search request returns.
type SearchKind string

const (
	SearchKindMedicine SearchKind = "medicine"
	SearchKindPharmacy SearchKind = "pharmacy"
	SearchKindAll      SearchKind = "all"
)

var validSearchKinds = []SearchKind{
	SearchKindMedicine,
	SearchKindPharmacy,
	SearchKindAll,
}

func (k SearchKind) String() string {
	return string(k)
}

func (k SearchKind) IsValid() bool {
	for _, candidate := range validSearchKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSearchKind converts raw input into a SearchKind.
func ParseSearchKind(value string) (SearchKind, error) {
	for _, candidate := range validSearchKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid search kind %q", value)
}

// SearchSort selects the ordering applied to search results.
type SearchSort string

const (
	SearchSortDistance SearchSort = "distance"
	SearchSortPrice    SearchSort = "price"
)

var validSearchSorts = []SearchSort{
	SearchSortDistance,
	SearchSortPrice,
}

func (s SearchSort) String() string {
	return string(s)
}

func (s SearchSort) IsValid() bool {
	for _, candidate := range validSearchSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSearchSort converts raw input into a SearchSort.
func ParseSearchSort(value string) (SearchSort, error) {
	for _, candidate := range validSearchSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid search sort %q", value)
}
