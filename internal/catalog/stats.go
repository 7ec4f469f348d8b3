package catalog

import (
	"context"
)

// recentProducts is the size of Stats.Recent.
const recentProducts = 5

// Stats summarizes the catalog for the dashboard.
type Stats struct {
	TotalProducts   int
	TotalStock      int
	TotalValue      float64
	TotalCategories int
	Recent          []Product
}

// CategoryOverview summarizes the categories page.
type CategoryOverview struct {
	TotalCategories int
	TotalProducts   int64
	// AveragePerCategory is rounded down.
	AveragePerCategory int64
	MostUsedColor      string
}

// Stats computes the dashboard figures.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return Stats{}, err
	}

	names, err := r.ListCategoryNames(ctx)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{
		TotalProducts:   len(products),
		TotalCategories: len(names) - 1,
		Recent:          products[:min(recentProducts, len(products))],
	}

	for _, p := range products {
		s.TotalStock += p.Quantity
		s.TotalValue += p.Price * float64(p.Quantity)
	}

	return s, nil
}

// Overview summarizes stats. The most used color is the palette color most
// categories share, ties going to the first one met.
func Overview(stats []CategoryStats) CategoryOverview {
	o := CategoryOverview{TotalCategories: len(stats)}
	colors := map[string]int{}
	best := 0

	for _, c := range stats {
		o.TotalProducts += c.ProductCount
		colors[c.Color]++

		if colors[c.Color] > best {
			best = colors[c.Color]
			o.MostUsedColor = c.Color
		}
	}

	if o.TotalCategories > 0 {
		o.AveragePerCategory = o.TotalProducts / int64(o.TotalCategories)
	}

	return o
}
