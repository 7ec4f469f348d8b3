package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sort orders of Filter.
const (
	SortRecent    = "recent"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// PriceRanges offered by the storefront filter.
var PriceRanges = []string{"0-10000", "10000-50000", "50000-100000", "100000+"} //nolint:gochecknoglobals

// Filter selects products on the listing page. Zero values match everything.
type Filter struct {
	Category   string `query:"category"`
	PriceRange string `query:"price"`
	Search     string `query:"q"`
	Sort       string `query:"sort"`
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return (f.Category != "" && f.Category != AllCategories) || f.PriceRange != "" || strings.TrimSpace(f.Search) != ""
}

// ParsePriceRange parses "min-max" (inclusive) or "min+" (strictly above min).
func ParsePriceRange(s string) (minPrice, maxPrice float64, exclusiveMin, ok bool) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "+") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
		if err != nil {
			return 0, 0, false, false
		}

		return v, math.Inf(1), true, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false, false
	}

	minV, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return 0, 0, false, false
	}

	maxV, err := strconv.ParseFloat(hi, 64)
	if err != nil || maxV < minV {
		return 0, 0, false, false
	}

	return minV, maxV, false, true
}

// Apply returns the products matching f, sorted by f.Sort.
// An unparsable price range matches everything.
func (f Filter) Apply(products []Product) []Product {
	minP, maxP, exclusive, hasRange := ParsePriceRange(f.PriceRange)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Product, 0, len(products))

	for _, p := range products {
		if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
			continue
		}

		if hasRange && (p.Price > maxP || p.Price < minP || (exclusive && p.Price == minP)) {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		out = append(out, p)
	}

	sortProducts(out, f.Sort)

	return out
}

func sortProducts(products []Product, order string) {
	var less func(a, b Product) bool

	switch order {
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortName:
		less = func(a, b Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		// ListProducts already returns newest first
		return
	}

	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
