package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
)

// createTestStore opens a fresh database in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestState builds a ledger with one customer, two suppliers, two
// products and one live order, and returns its state.
func createTestState(t *testing.T) ledger.State {
	t.Helper()
	s := ledger.New()
	steps := []error{
		s.RegisterSupplier(domain.Supplier{Contact: domain.Contact{ID: 2, Name: "Beta", City: "LA", Address: "Main St"}}),
		s.RegisterCustomer(domain.Customer{Contact: domain.Contact{ID: 7, Name: "Dana", City: "Haifa", Address: "Herzl 1"}}),
		s.RegisterSupplier(domain.Supplier{Contact: domain.Contact{ID: 1, Name: "Acme", City: "NYC", Address: "5th Ave"}}),
		s.AddOrUpdateProduct(domain.Product{ID: 10, Name: "Widget", Price: 2.5, SupplierID: 1, Quantity: 3}),
		s.AddOrUpdateProduct(domain.Product{ID: 4, Name: "Gear", Price: 0.1, SupplierID: 2, Quantity: 9}),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("setup step %d: %v", i, err)
		}
	}
	if _, err := s.PlaceOrder(7, 10, 2); err != nil {
		t.Fatalf("PlaceOrder() failed: %v", err)
	}
	if _, err := s.PlaceOrder(7, 4, 1); err != nil {
		t.Fatalf("PlaceOrder() failed: %v", err)
	}
	if _, err := s.RemoveOrder(2); err != nil {
		t.Fatalf("RemoveOrder() failed: %v", err)
	}
	return s.State()
}
