package harness

import (
	"fmt"
	"reflect"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, actual %s", e.Type, e.Expected, e.Actual)
}

func evaluate(s *ledger.System, a Assertion) error {
	switch a.Type {
	case AssertProduct:
		return assertProduct(s, a)
	case AssertPresent, AssertAbsent:
		return assertPresence(s, a)
	case AssertOrderCount:
		if got := len(s.Orders()); got != a.Value {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Value), Actual: fmt.Sprint(got)}
		}
		return nil
	case AssertNextOrderID:
		if got := s.NextOrderID(); got != a.Value {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Value), Actual: fmt.Sprint(got)}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertProduct compares the named fields of a product. Field names follow
// the product description (id, name, price, supplier_id, quantity).
func assertProduct(s *ledger.System, a Assertion) error {
	p, ok := s.Product(a.ID)
	if !ok {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("product %d", a.ID), Actual: "no such product"}
	}

	actual := productFields(p)
	for field, want := range a.Expect {
		got, known := actual[field]
		if !known {
			return fmt.Errorf("product has no field %q", field)
		}
		if !valuesEqual(want, got) {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("product %d %s=%v", a.ID, field, want),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
	}
	return nil
}

func productFields(p domain.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"price":       p.Price,
		"supplier_id": p.SupplierID,
		"quantity":    p.Quantity,
	}
}

// valuesEqual compares a YAML-decoded value with a field value; numbers
// compare by value regardless of int/float representation.
func valuesEqual(want, got any) bool {
	if w, ok := toFloat(want); ok {
		g, ok := toFloat(got)
		return ok && w == g
	}
	return reflect.DeepEqual(want, got)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func assertPresence(s *ledger.System, a Assertion) error {
	var exists bool
	switch a.Class {
	case "customer":
		_, exists = s.Customer(a.ID)
	case "supplier":
		_, exists = s.Supplier(a.ID)
	case "product":
		_, exists = s.Product(a.ID)
	case "order":
		_, exists = s.Order(a.ID)
	}

	want := a.Type == AssertPresent
	if exists != want {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s %d %s", a.Class, a.ID, presence(want)),
			Actual:   presence(exists),
		}
	}
	return nil
}

func presence(exists bool) string {
	if exists {
		return "present"
	}
	return "absent"
}
