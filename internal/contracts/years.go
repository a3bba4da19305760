package contracts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MinYear and MaxYear bound the year indices of a breakdown
const (
	MinYear = 1
	MaxYear = 5
)

// YearSet is an order-irrelevant set of selected year indices
type YearSet map[int]struct{}

// NewYearSet builds a YearSet, rejecting empty input and indices outside 1..5.
// Duplicates collapse.
func NewYearSet(years ...int) (YearSet, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("year set must not be empty")
	}

	set := make(YearSet, len(years))
	for _, y := range years {
		if y < MinYear || y > MaxYear {
			return nil, fmt.Errorf("year %d out of range %d..%d", y, MinYear, MaxYear)
		}
		set[y] = struct{}{}
	}
	return set, nil
}

// AllYears returns {1,2,3,4,5}
func AllYears() YearSet {
	set, _ := NewYearSet(1, 2, 3, 4, 5)
	return set
}

// ParseYearSet parses "1,2,3" style input
func ParseYearSet(s string) (YearSet, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", part, err)
		}
		years = append(years, y)
	}
	return NewYearSet(years...)
}

// Contains reports whether year is selected
func (s YearSet) Contains(year int) bool {
	_, ok := s[year]
	return ok
}

// Sorted returns the selected years in ascending order
func (s YearSet) Sorted() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Equal reports exact set equality with years
func (s YearSet) Equal(years ...int) bool {
	other := make(map[int]struct{}, len(years))
	for _, y := range years {
		other[y] = struct{}{}
	}
	if len(other) != len(s) {
		return false
	}
	for y := range other {
		if !s.Contains(y) {
			return false
		}
	}
	return true
}

// String renders the set as "1,2,3"
func (s YearSet) String() string {
	parts := make([]string, 0, len(s))
	for _, y := range s.Sorted() {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, ",")
}
