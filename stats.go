package sheet2pdf

// Stats summarizes a validated product collection.
type Stats struct {
	Count      int
	PriceMin   float64
	PriceMax   float64
	PriceAvg   float64
	Categories map[string]int
	Sizes      map[string]int
	Colors     map[string]int
}

// Aggregate computes summary statistics over products. An empty input yields
// zero-valued stats; price aggregates only consider products with a price
// greater than zero, and frequency maps only count non-empty values.
func Aggregate(products []Product) Stats {
	stats := Stats{
		Count:      len(products),
		Categories: make(map[string]int),
		Sizes:      make(map[string]int),
		Colors:     make(map[string]int),
	}

	var sum float64
	var priced int

	for _, p := range products {
		if p.Price > 0 {
			if priced == 0 || p.Price < stats.PriceMin {
				stats.PriceMin = p.Price
			}
			if p.Price > stats.PriceMax {
				stats.PriceMax = p.Price
			}
			sum += p.Price
			priced++
		}
		if p.Category != "" {
			stats.Categories[p.Category]++
		}
		if p.Size != "" {
			stats.Sizes[p.Size]++
		}
		if p.Color != "" {
			stats.Colors[p.Color]++
		}
	}

	if priced > 0 {
		stats.PriceAvg = sum / float64(priced)
	}
	return stats
}
