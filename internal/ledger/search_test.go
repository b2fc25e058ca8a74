package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/domain"
)

func catalogLedger(t *testing.T) *System {
	t.Helper()
	s := New()
	require.NoError(t, s.RegisterSupplier(mustSupplier(t, 1, "Acme", "NYC", "5th Ave")))
	for _, p := range []domain.Product{
		{ID: 5, Name: "Blue Widget", Price: 3, SupplierID: 1, Quantity: 1},
		{ID: 2, Name: "Red Widget", Price: 3, SupplierID: 1, Quantity: 4},
		{ID: 9, Name: "Widget", Price: 1.5, SupplierID: 1, Quantity: 2},
		{ID: 4, Name: "Green Widget", Price: 0.5, SupplierID: 1, Quantity: 0},
		{ID: 7, Name: "Gizmo", Price: 10, SupplierID: 1, Quantity: 6},
	} {
		require.NoError(t, s.AddOrUpdateProduct(p))
	}
	return s
}

func ids(products []domain.Product) []int {
	out := []int{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchProductsOrdering(t *testing.T) {
	s := catalogLedger(t)

	// Price ascending, id breaks the tie at 3.0, out-of-stock product 4 hidden.
	assert.Equal(t, []int{9, 2, 5}, ids(s.SearchProducts("Widget")))
	assert.Equal(t, []int{9, 2, 5, 7}, ids(s.SearchProducts("")))
}

func TestSearchProductsMaxPrice(t *testing.T) {
	s := catalogLedger(t)

	assert.Equal(t, []int{9, 2, 5}, ids(s.SearchProductsUpTo("Widget", 3)))
	assert.Equal(t, []int{9}, ids(s.SearchProductsUpTo("Widget", 2.99)))
	assert.Empty(t, s.SearchProductsUpTo("Widget", 1))
}

func TestSearchProductsCaseSensitive(t *testing.T) {
	s := catalogLedger(t)

	assert.Empty(t, s.SearchProducts("widget"))
	assert.Equal(t, []int{2}, ids(s.SearchProducts("Red")))
}

func TestSearchProductsEmptyResults(t *testing.T) {
	s := catalogLedger(t)

	res := s.SearchProducts("Green")
	require.NotNil(t, res)
	assert.Empty(t, res, "all matches out of stock")

	res = s.SearchProducts("Sprocket")
	require.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearchReflectsStock(t *testing.T) {
	s := catalogLedger(t)

	_, err := s.PlaceOrder(1, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 2}, ids(s.SearchProducts("Widget")))

	_, err = s.RemoveOrder(1)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 2, 5}, ids(s.SearchProducts("Widget")))
}
