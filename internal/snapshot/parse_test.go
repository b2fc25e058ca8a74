package snapshot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/domain"
)

func TestParseLineValues(t *testing.T) {
	c, err := parseLine(`Product(10, "Wid\"get", 2.5, supplier_id=+1, quantity=-(3))`)
	require.Error(t, err, "parenthesized values are outside the grammar")
	assert.ErrorIs(t, err, ErrUnparseable)

	c, err = parseLine(`Product(10, 'Widget\n', 2.5e0, 0x1, -3, )  # trailing comment`)
	require.NoError(t, err)
	assert.Equal(t, "Product", c.name)
	require.Len(t, c.args, 5)
	assert.Equal(t, int64(10), c.args[0].value)
	assert.Equal(t, "Widget\n", c.args[1].value)
	assert.Equal(t, 2.5, c.args[2].value)
	assert.Equal(t, int64(1), c.args[3].value)
	assert.Equal(t, int64(-3), c.args[4].value)
}

func TestParseLineLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"0", int64(0)},
		{"1_000", int64(1000)},
		{"-5", int64(-5)},
		{"--5", int64(5)},
		{".5", 0.5},
		{"5.", 5.0},
		{"1e-3", 0.001},
		{"True", true},
		{"False", false},
		{"None", nil},
		{"-True", int64(-1)},
		{"+False", int64(0)},
		{`'it\'s'`, "it's"},
		{`"tab\there"`, "tab\there"},
		{`'\x41é'`, "Aé"},
		{`'back\qslash'`, `back\qslash`},
		{`"# not a comment"`, "# not a comment"},
		{"undefined", undefinedName{name: "undefined"}},
		{"-'text'", badOperand{typeName: "str"}},
		{"-None", badOperand{typeName: "NoneType"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c, err := parseLine("Order(" + tt.src + ")")
			require.NoError(t, err)
			require.Len(t, c.args, 1)
			assert.Equal(t, tt.want, c.args[0].value)
		})
	}
}

func TestParseLineSyntaxErrors(t *testing.T) {
	lines := []string{
		"Customer",
		"Customer(",
		"Customer(1, 'a'",
		"Customer(1 'a')",
		"Customer(1,, 'a')",
		"Customer(1, 'a') extra",
		"Customer(id=1, 'a', 'b', 'c')",
		"Customer(id=1, id=2)",
		"Customer('unterminated)",
		"Customer('''triple''')",
		"Customer(r'raw', 'a', 'b', 'c')",
		"Customer(01, 'a', 'b', 'c')",
		"Customer(1x, 'a', 'b', 'c')",
		"Customer(1 + 2, 'a', 'b', 'c')",
		"Customer(1; 'a')",
		"x = Customer(1, 'a', 'b', 'c')",
		"99999999999999999999",
		"Customer(99999999999999999999, 'a', 'b', 'c')",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := parseLine(line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}

func TestBuildEntities(t *testing.T) {
	tests := []struct {
		line string
		want any
	}{
		{
			"Customer(7, 'Dana', 'Haifa', 'Herzl 1')",
			domain.Customer{Contact: domain.Contact{ID: 7, Name: "Dana", City: "Haifa", Address: "Herzl 1"}},
		},
		{
			"Supplier(address='5th Ave', city='NYC', name='Acme', id=1)",
			domain.Supplier{Contact: domain.Contact{ID: 1, Name: "Acme", City: "NYC", Address: "5th Ave"}},
		},
		{
			"Product(10, 'Widget', 3, 1, quantity=0)",
			domain.Product{ID: 10, Name: "Widget", Price: 3, SupplierID: 1, Quantity: 0},
		},
		{
			"Customer(8, None, 12, 2.0)",
			domain.Customer{Contact: domain.Contact{ID: 8, Name: "None", City: "12", Address: "2.0"}},
		},
		{
			"Order(1, 7, 10, 2, 5.0)",
			domain.Order{ID: 1, CustomerID: 7, ProductID: 10, Quantity: 2, TotalPrice: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, err := parseLine(tt.line)
			require.NoError(t, err)
			got, err := build(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildValidationFailures(t *testing.T) {
	tests := []struct {
		line     string
		isAmount bool
	}{
		{"Customer(-1, 'a', 'b', 'c')", false},
		{"Customer(True, 'a', 'b', 'c')", false},
		{"Customer(1.0, 'a', 'b', 'c')", false},
		{"Supplier('1', 'a', 'b', 'c')", false},
		{"Product(1, 'x', 2.5, -1, 3)", false},
		{"Product(1, 'x', 2.5, 1, False)", false},
		{"Product(1, 'x', -2.5, 1, 3)", true},
		{"Product(1, 'x', True, 1, 3)", true},
		{"Product(1, 'x', '2.5', 1, 3)", true},
		{"Order(1, 7, 10, 2, -5.0)", true},
		{"Order(1, 7, 10, 2.5, 5.0)", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, err := parseLine(tt.line)
			require.NoError(t, err)
			_, err = build(c)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnparseable)
			assert.Equal(t, tt.isAmount, domain.IsInvalidAmount(err))
			assert.Equal(t, !tt.isAmount, domain.IsInvalidIdentifier(err))
		})
	}
}

func TestBuildArgumentErrors(t *testing.T) {
	lines := []string{
		"Customer(1, 'a', 'b')",
		"Customer(1, 'a', 'b', 'c', 'd')",
		"Customer(1, 'a', 'b', zip='c')",
		"Customer(1, 'a', 'b', 'c', id=2)",
		"Product(1, 'x', -'2', 1, 3)",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			c, err := parseLine(line)
			require.NoError(t, err)
			_, err = build(c)
			require.Error(t, err)
			var argErr *ArgumentError
			assert.True(t, errors.As(err, &argErr), "got %v", err)
		})
	}
}

func TestBuildUndefinedNamesAreSkipped(t *testing.T) {
	lines := []string{
		"Warehouse(1, 'a')",
		"InvalidIdException('boom')",
		"Customer(x, 'a', 'b', 'c')",
		// the name error comes first, before the argument count is checked
		"Customer(x)",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			c, err := parseLine(line)
			require.NoError(t, err)
			_, err = build(c)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}
