// Package query evaluates a SearchSpec against a slice of properties:
// filter, then sort, then paginate. Every function here is pure and leaves
// its input untouched.
package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"homefinder-listings/internal/models"

	"golang.org/x/text/cases"
)

const (
	// DefaultLimit is the page size of property searches.
	DefaultLimit = 9
	// DefaultContactLimit is the page size of the admin contact listing.
	DefaultContactLimit = 10
	// DefaultFeatured is how many listings the featured strip shows.
	DefaultFeatured = 3
)

// Properties runs the full pipeline and returns one page of results.
func Properties(props []models.Property, spec models.SearchSpec) models.Page[models.Property] {
	filtered := Filter(props, spec)
	Sort(filtered, spec.SortBy)
	return Paginate(filtered, spec.Page, spec.Limit, DefaultLimit)
}

// Filter returns a new slice holding clones of the properties that satisfy every active predicate.
func Filter(props []models.Property, spec models.SearchSpec) []models.Property {
	preds := predicates(spec)
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if matchAll(&p, preds) {
			out = append(out, p.Clone())
		}
	}
	return out
}

type predicate func(*models.Property) bool

func matchAll(p *models.Property, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func predicates(spec models.SearchSpec) []predicate {
	var preds []predicate
	fold := cases.Fold()

	if term := strings.TrimSpace(spec.Search); term != "" {
		preds = append(preds, locationMatcher(fold, term))
	}
	if term := strings.TrimSpace(spec.Location); term != "" {
		preds = append(preds, locationMatcher(fold, term))
	}
	if lo, hi, ok := ParsePriceRange(spec.PriceRange); ok {
		preds = append(preds, func(p *models.Property) bool {
			return p.Price >= lo && (hi == nil || p.Price <= *hi)
		})
	}
	if t := strings.TrimSpace(spec.PropertyType); t != "" && t != models.AllTypes {
		preds = append(preds, func(p *models.Property) bool {
			return string(p.PropertyType) == t
		})
	}
	if n, ok := ParseBedrooms(spec.Bedrooms); ok {
		preds = append(preds, func(p *models.Property) bool {
			return p.Bedrooms >= n
		})
	}
	return preds
}

func locationMatcher(fold cases.Caser, term string) predicate {
	needle := fold.String(term)
	return func(p *models.Property) bool {
		for _, field := range []string{p.City, p.Address, p.Zip} {
			if strings.Contains(fold.String(field), needle) {
				return true
			}
		}
		return false
	}
}

// ParsePriceRange reads "min-max" or "min+". ok is false when min is
// missing or not a number, in which case the filter does not apply. A
// missing or unparsable max leaves the range open above.
func ParsePriceRange(raw string) (lo float64, hi *float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil, false
	}
	minPart, maxPart, hasMax := strings.Cut(strings.TrimSuffix(raw, "+"), "-")
	lo, err := strconv.ParseFloat(strings.TrimSpace(minPart), 64)
	if err != nil {
		return 0, nil, false
	}
	if hasMax {
		if v, err := strconv.ParseFloat(strings.TrimSpace(maxPart), 64); err == nil {
			hi = &v
		}
	}
	return lo, hi, true
}

// ParseBedrooms reads "N+" or "N". "Any", empty and garbage disable the filter.
func ParseBedrooms(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == models.AnyBedrooms {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Sort orders props in place. Unknown keys fall back to newest first.
func Sort(props []models.Property, sortBy string) {
	switch sortBy {
	case models.SortPriceLow:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case models.SortPriceHigh:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// Paginate slices items into one page. A page below 1 becomes 1 and a
// limit below 1 becomes defaultLimit. Data is never nil.
func Paginate[T any](items []T, page, limit, defaultLimit int) models.Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	total := len(items)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	result := models.Page[T]{
		Data:       []T{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
	}

	// bounds are checked in page units so huge page or limit values cannot overflow
	if page-1 >= pages {
		return result
	}
	start := (page - 1) * limit
	end := start + min(limit, total-start)
	result.Data = append(result.Data, items[start:end]...)
	return result
}

// Featured picks up to n available listings, flagged ones first, otherwise in collection order.
func Featured(props []models.Property, n int) []models.Property {
	if n < 1 {
		n = DefaultFeatured
	}
	out := make([]models.Property, 0, n)
	for _, flagged := range []bool{true, false} {
		for _, p := range props {
			if len(out) == n {
				return out
			}
			if p.IsAvailable() && p.Featured == flagged {
				out = append(out, p.Clone())
			}
		}
	}
	return out
}
