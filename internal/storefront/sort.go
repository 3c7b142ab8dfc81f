package storefront

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

// SortMode orders the product grid client-side
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortRating    SortMode = "rating"
)

// ParseSortMode accepts the mode names above; empty means default
func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc, SortPriceDesc, SortRating:
		return mode, nil
	default:
		return SortDefault, fmt.Errorf("unknown sort mode %q", s)
	}
}

// sortProducts returns a sorted copy; ties keep their natural order
func sortProducts(products []models.Product, mode SortMode) []models.Product {
	sorted := slices.Clone(products)

	switch mode {
	case SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}

	return sorted
}
