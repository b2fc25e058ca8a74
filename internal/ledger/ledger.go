package ledger

import (
	"log/slog"

	"github.com/roach88/matamazon/internal/domain"
)

// System is the ledger: customers, suppliers, products, orders and the
// order-id sequence, plus the operations that mutate them under the
// integrity rules described in the package documentation.
type System struct {
	customers *registry[domain.Customer]
	suppliers *registry[domain.Supplier]
	products  *registry[domain.Product]
	orders    *registry[domain.Order]
	orderIDs  *sequence
	logger    *slog.Logger
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for mutation records.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty ledger. The first order placed gets id 1.
func New(opts ...Option) *System {
	s := &System{
		customers: newRegistry[domain.Customer](),
		suppliers: newRegistry[domain.Supplier](),
		products:  newRegistry[domain.Product](),
		orders:    newRegistry[domain.Order](),
		orderIDs:  newSequence(1),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterEntity adds a contact to the customer or supplier registry.
// Fails with ErrInvalidIdentifier if the id is invalid or already used by
// any customer or supplier.
func (s *System) RegisterEntity(c domain.Contact, role domain.Role) error {
	if _, err := domain.ValidateIdentifier("id", c.ID); err != nil {
		return err
	}
	if s.contactIDInUse(c.ID) {
		return domain.IdentifierError("id", c.ID, "Invalid id: already exists")
	}

	switch role {
	case domain.RoleCustomer:
		s.customers.put(c.ID, &domain.Customer{Contact: c})
	case domain.RoleSupplier:
		s.suppliers.put(c.ID, &domain.Supplier{Contact: c})
	default:
		return domain.IdentifierError("role", role, "Invalid role: %s", role)
	}

	s.logger.Debug("registered contact", "role", role.String(), "id", c.ID)
	return nil
}

// RegisterCustomer is RegisterEntity with RoleCustomer.
func (s *System) RegisterCustomer(c domain.Customer) error {
	return s.RegisterEntity(c.Contact, domain.RoleCustomer)
}

// RegisterSupplier is RegisterEntity with RoleSupplier.
func (s *System) RegisterSupplier(sup domain.Supplier) error {
	return s.RegisterEntity(sup.Contact, domain.RoleSupplier)
}

// contactIDInUse checks the shared customer/supplier namespace.
func (s *System) contactIDInUse(id int) bool {
	return s.customers.has(id) || s.suppliers.has(id)
}

// Customer returns a copy of the customer with the given id.
func (s *System) Customer(id int) (domain.Customer, bool) {
	c, ok := s.customers.get(id)
	if !ok {
		return domain.Customer{}, false
	}
	return *c, true
}

// Supplier returns a copy of the supplier with the given id.
func (s *System) Supplier(id int) (domain.Supplier, bool) {
	sup, ok := s.suppliers.get(id)
	if !ok {
		return domain.Supplier{}, false
	}
	return *sup, true
}

// Product returns a copy of the product with the given id.
func (s *System) Product(id int) (domain.Product, bool) {
	p, ok := s.products.get(id)
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// Order returns a copy of the order with the given id.
func (s *System) Order(id int) (domain.Order, bool) {
	o, ok := s.orders.get(id)
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

// Customers returns all customers in registration order.
func (s *System) Customers() []domain.Customer {
	return s.customers.snapshot()
}

// Suppliers returns all suppliers in registration order.
func (s *System) Suppliers() []domain.Supplier {
	return s.suppliers.snapshot()
}

// Products returns all products in catalog order.
func (s *System) Products() []domain.Product {
	return s.products.snapshot()
}

// Orders returns all live orders in placement order.
func (s *System) Orders() []domain.Order {
	return s.orders.snapshot()
}

// NextOrderID returns the id the next accepted order will receive.
func (s *System) NextOrderID() int {
	return s.orderIDs.peek()
}
