package ledger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportOrdersScenario(t *testing.T) {
	s := acmeLedger(t)
	_, err := s.PlaceOrder(7, 10, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = s.ExportOrders().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t,
		`{"NYC": ["Order(id=1, customer_id=7, product_id=10, quantity=2, total_price=5.0)"]}`,
		buf.String())
}

func TestExportOrdersGrouping(t *testing.T) {
	s := acmeLedger(t)
	require.NoError(t, s.RegisterSupplier(mustSupplier(t, 2, "Beta", "LA", "Main St")))
	require.NoError(t, s.RegisterSupplier(mustSupplier(t, 3, "Gamma", "NYC", "Broadway")))
	require.NoError(t, s.AddOrUpdateProduct(mustProduct(t, 20, "Gear", 1, 2, 5)))
	require.NoError(t, s.AddOrUpdateProduct(mustProduct(t, 30, "Bolt", 0.25, 3, 5)))

	for _, pid := range []int{20, 10, 30, 20} {
		msg, err := s.PlaceOrder(7, pid, 1)
		require.NoError(t, err)
		require.Equal(t, OrderAccepted, msg)
	}

	groups := s.ExportOrders()
	require.Len(t, groups, 2)
	assert.Equal(t, "LA", groups[0].City)
	assert.Equal(t, "NYC", groups[1].City)
	assert.Equal(t, []string{
		"Order(id=1, customer_id=7, product_id=20, quantity=1, total_price=1.0)",
		"Order(id=4, customer_id=7, product_id=20, quantity=1, total_price=1.0)",
	}, groups.Get("LA"))
	assert.Equal(t, []string{
		"Order(id=2, customer_id=7, product_id=10, quantity=1, total_price=2.5)",
		"Order(id=3, customer_id=7, product_id=30, quantity=1, total_price=0.25)",
	}, groups.Get("NYC"))
	assert.Nil(t, groups.Get("Paris"))

	raw, err := json.Marshal(groups)
	require.NoError(t, err)
	var decoded map[string][]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, groups.Get("LA"), decoded["LA"])
}

func TestExportOrdersSkipsOrphanedSupplier(t *testing.T) {
	s := acmeLedger(t)
	require.NoError(t, s.RemoveSupplier(1))
	_, err := s.PlaceOrder(7, 10, 1)
	require.NoError(t, err)

	assert.Empty(t, s.ExportOrders())

	var buf bytes.Buffer
	_, err = s.ExportOrders().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "{}", buf.String())
}

func TestOrdersWriteToEscapesNonASCII(t *testing.T) {
	groups := OrdersByCity{{City: "Tel Aviv-Yafo é", Orders: []string{"a\"b\\c\n", "😀"}}}

	var buf bytes.Buffer
	_, err := groups.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, `{"Tel Aviv-Yafo \u00e9": ["a\"b\\c\n", "\ud83d\ude00"]}`, buf.String())
}

func TestExportSystem(t *testing.T) {
	s := acmeLedger(t)
	require.NoError(t, s.RegisterCustomer(mustCustomer(t, 7, "Dana", "Haifa", "Herzl 1")))

	var buf bytes.Buffer
	require.NoError(t, s.ExportSystem(&buf))
	assert.Equal(t, "Customer(id=7, name='Dana', city='Haifa', address='Herzl 1')\n"+
		"Supplier(id=1, name='Acme', city='NYC', address='5th Ave')\n"+
		"Product(id=10, name='Widget', price=2.5, supplier_id=1, quantity=3)\n",
		buf.String())

	path := filepath.Join(t.TempDir(), "state.txt")
	require.NoError(t, s.ExportSystemToFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
}

func TestExportSystemEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().ExportSystem(&buf))
	assert.Empty(t, buf.String())
}
