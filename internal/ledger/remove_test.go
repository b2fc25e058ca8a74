package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/domain"
)

func TestParseClassType(t *testing.T) {
	tests := []struct {
		token string
		want  ClassType
	}{
		{"customer", ClassCustomer},
		{"  Product ", ClassProduct},
		{"SUPPLIER", ClassSupplier},
		{"\tOrder\n", ClassOrder},
	}
	for _, tt := range tests {
		got, err := ParseClassType(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseClassType("warehouse")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidIdentifier(err))
	assert.Equal(t, "Invalid class_type: warehouse", err.Error())
}

func TestRemoveBlockedByLiveOrder(t *testing.T) {
	s := acmeLedger(t)
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 7, "Dana", "Haifa", "Herzl 1")))
	_, err := s.PlaceOrder(7, 10, 2)
	require.NoError(t, err)

	before := s.State()
	for _, ct := range []string{"customer", "product", "supplier"} {
		id := map[string]int{"customer": 7, "product": 10, "supplier": 1}[ct]
		_, err := s.RemoveObject(id, ct)
		require.Error(t, err, ct)
		assert.True(t, domain.IsInvalidIdentifier(err), ct)
	}
	assert.Equal(t, before, s.State())
}

func TestRemoveMissing(t *testing.T) {
	s := New()
	for _, ct := range []string{"customer", "product", "supplier", "order"} {
		_, err := s.RemoveObject(5, ct)
		require.Error(t, err, ct)
		assert.True(t, domain.IsInvalidIdentifier(err), ct)
	}

	_, err := s.RemoveObject(-1, "customer")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidIdentifier(err))

	_, err = s.RemoveObject(1, "nope")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidIdentifier(err))
}

func TestRemoveOrderRestoresStock(t *testing.T) {
	s := acmeLedger(t)
	_, err := s.PlaceOrder(7, 10, 2)
	require.NoError(t, err)

	restored, err := s.RemoveObject(1, " ORDER ")
	require.NoError(t, err)
	assert.Equal(t, 2, restored)

	p, _ := s.Product(10)
	assert.Equal(t, 3, p.Quantity)
	_, ok := s.Order(1)
	assert.False(t, ok)

	// ids are never reused
	_, err = s.PlaceOrder(7, 10, 1)
	require.NoError(t, err)
	_, ok = s.Order(2)
	assert.True(t, ok)
	_, ok = s.Order(1)
	assert.False(t, ok)
}

func TestRemoveAfterOrderCancelled(t *testing.T) {
	s := acmeLedger(t)
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 7, "Dana", "Haifa", "Herzl 1")))
	_, err := s.PlaceOrder(7, 10, 1)
	require.NoError(t, err)
	_, err = s.RemoveOrder(1)
	require.NoError(t, err)

	_, err = s.RemoveObject(7, "customer")
	require.NoError(t, err)
	_, err = s.RemoveObject(10, "product")
	require.NoError(t, err)
	_, err = s.RemoveObject(1, "supplier")
	require.NoError(t, err)

	assert.Empty(t, s.Customers())
	assert.Empty(t, s.Products())
	assert.Empty(t, s.Suppliers())
}

func TestRemoveSupplierWithUnorderedProducts(t *testing.T) {
	s := acmeLedger(t)

	require.NoError(t, s.RemoveSupplier(1))
	p, ok := s.Product(10)
	require.True(t, ok, "products outlive their supplier")
	assert.Equal(t, 1, p.SupplierID)

	// The product can still be ordered, but it can no longer be updated.
	msg, err := s.PlaceOrder(7, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, OrderAccepted, msg)

	err = s.AddOrUpdateProduct(mustProduct(t, 10, "Widget", 2.5, 1, 9))
	require.Error(t, err)
	assert.True(t, domain.IsInvalidIdentifier(err))
}

func TestReRegisteredContactMovesToEnd(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 1, "A", "X", "Y")))
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 2, "B", "X", "Y")))
	require.NoError(t, s.RemoveCustomer(1))
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 1, "A2", "X", "Y")))

	var ids []int
	for _, c := range s.Customers() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{2, 1}, ids)
}
