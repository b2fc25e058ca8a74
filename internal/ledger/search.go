package ledger

import (
	"slices"
	"strings"

	"github.com/roach88/matamazon/internal/domain"
)

// SearchProducts returns in-stock products whose name contains query
// (case-sensitive), sorted by ascending price then ascending id.
// The result is never nil.
func (s *System) SearchProducts(query string) []domain.Product {
	return s.search(query, nil)
}

// SearchProductsUpTo is SearchProducts limited to products priced at most
// maxPrice.
func (s *System) SearchProductsUpTo(query string, maxPrice float64) []domain.Product {
	return s.search(query, &maxPrice)
}

func (s *System) search(query string, maxPrice *float64) []domain.Product {
	res := []domain.Product{}
	for p := range s.products.values() {
		if p.Quantity == 0 {
			continue
		}
		if !strings.Contains(p.Name, query) {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		res = append(res, *p)
	}
	slices.SortFunc(res, domain.CompareProducts)
	return res
}
