package ledger

import (
	"fmt"

	"github.com/roach88/matamazon/internal/domain"
)

// State is a complete copy of a ledger: every registry in insertion order
// plus the next order id.
type State struct {
	Customers   []domain.Customer `json:"customers"`
	Suppliers   []domain.Supplier `json:"suppliers"`
	Products    []domain.Product  `json:"products"`
	Orders      []domain.Order    `json:"orders"`
	NextOrderID int               `json:"next_order_id"`
}

// State captures the current ledger contents.
func (s *System) State() State {
	return State{
		Customers:   s.customers.snapshot(),
		Suppliers:   s.suppliers.snapshot(),
		Products:    s.products.snapshot(),
		Orders:      s.orders.snapshot(),
		NextOrderID: s.orderIDs.peek(),
	}
}

// Restore rebuilds a ledger from a captured State.
//
// Orders are installed as-is without touching stock, since the captured
// product quantities already account for them. Restore rejects states no
// sequence of ledger operations could have produced: duplicate ids, a
// customer/supplier id collision, an order whose product is missing, or a
// next order id not above every order id. A product whose supplier was
// removed is legal.
func Restore(st State, opts ...Option) (*System, error) {
	s := New(opts...)

	for _, c := range st.Customers {
		if err := s.RegisterCustomer(c); err != nil {
			return nil, fmt.Errorf("restore customer %d: %w", c.ID, err)
		}
	}
	for _, sup := range st.Suppliers {
		if err := s.RegisterSupplier(sup); err != nil {
			return nil, fmt.Errorf("restore supplier %d: %w", sup.ID, err)
		}
	}

	for _, p := range st.Products {
		p, err := domain.NewProduct(p.ID, p.Name, p.Price, p.SupplierID, p.Quantity)
		if err != nil {
			return nil, fmt.Errorf("restore product: %w", err)
		}
		if s.products.has(p.ID) {
			return nil, fmt.Errorf("restore product %d: %w", p.ID,
				domain.IdentifierError("id", p.ID, "Invalid id: already exists"))
		}
		s.products.put(p.ID, &p)
	}

	if st.NextOrderID < 1 {
		return nil, domain.IdentifierError("next_order_id", st.NextOrderID,
			"Invalid next_order_id: %d", st.NextOrderID)
	}
	for _, o := range st.Orders {
		o, err := domain.NewOrder(o.ID, o.CustomerID, o.ProductID, o.Quantity, o.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("restore order: %w", err)
		}
		switch {
		case o.ID == 0 || o.ID >= st.NextOrderID:
			return nil, domain.IdentifierError("id", o.ID,
				"Order id %d outside issued range [1, %d)", o.ID, st.NextOrderID)
		case s.orders.has(o.ID):
			return nil, domain.IdentifierError("id", o.ID, "Invalid id: already exists")
		case !s.products.has(o.ProductID):
			return nil, domain.IdentifierError("product_id", o.ProductID,
				"Order %d references missing product %d", o.ID, o.ProductID)
		}
		s.orders.put(o.ID, &o)
	}
	s.orderIDs = newSequence(st.NextOrderID)

	s.logger.Debug("ledger restored",
		"customers", s.customers.len(), "suppliers", s.suppliers.len(),
		"products", s.products.len(), "orders", s.orders.len())
	return s, nil
}
