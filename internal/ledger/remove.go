package ledger

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/matamazon/internal/domain"
)

// ClassType names the kind of object RemoveObject deletes.
type ClassType string

const (
	ClassCustomer ClassType = "customer"
	ClassProduct  ClassType = "product"
	ClassSupplier ClassType = "supplier"
	ClassOrder    ClassType = "order"
)

// ParseClassType normalizes a class-type token, ignoring case and
// surrounding whitespace. Unknown tokens fail with ErrInvalidIdentifier.
func ParseClassType(token string) (ClassType, error) {
	ct := ClassType(cases.Fold().String(strings.TrimSpace(token)))
	switch ct {
	case ClassCustomer, ClassProduct, ClassSupplier, ClassOrder:
		return ct, nil
	}
	return "", domain.IdentifierError("class_type", token, "Invalid class_type: %s", token)
}

// RemoveObject deletes the object of the given class. For orders it returns
// the quantity given back to the product; for every other class it returns 0.
func (s *System) RemoveObject(id int, classType string) (int, error) {
	if _, err := domain.ValidateIdentifier("id", id); err != nil {
		return 0, err
	}
	ct, err := ParseClassType(classType)
	if err != nil {
		return 0, err
	}

	switch ct {
	case ClassCustomer:
		return 0, s.RemoveCustomer(id)
	case ClassProduct:
		return 0, s.RemoveProduct(id)
	case ClassSupplier:
		return 0, s.RemoveSupplier(id)
	default:
		return s.RemoveOrder(id)
	}
}

// RemoveCustomer deletes a customer that no live order references.
func (s *System) RemoveCustomer(id int) error {
	if !s.customers.has(id) {
		return domain.IdentifierError("id", id, "Customer id does not exist: %d", id)
	}
	for o := range s.orders.values() {
		if o.CustomerID == id {
			return domain.IdentifierError("id", id, "Cannot remove customer with existing orders: %d", id)
		}
	}

	s.customers.remove(id)
	s.logger.Debug("customer removed", "customer_id", id)
	return nil
}

// RemoveProduct deletes a product that no live order references.
func (s *System) RemoveProduct(id int) error {
	if !s.products.has(id) {
		return domain.IdentifierError("id", id, "Product id does not exist: %d", id)
	}
	for o := range s.orders.values() {
		if o.ProductID == id {
			return domain.IdentifierError("id", id, "Cannot remove product with existing orders: %d", id)
		}
	}

	s.products.remove(id)
	s.logger.Debug("product removed", "product_id", id)
	return nil
}

// RemoveSupplier deletes a supplier unless a live order references one of
// its products. Products themselves are left in the catalog.
func (s *System) RemoveSupplier(id int) error {
	if !s.suppliers.has(id) {
		return domain.IdentifierError("id", id, "Supplier id does not exist: %d", id)
	}
	for o := range s.orders.values() {
		p, ok := s.products.get(o.ProductID)
		if ok && p.SupplierID == id {
			return domain.IdentifierError("id", id, "Cannot remove supplier with existing orders: %d", id)
		}
	}

	s.suppliers.remove(id)
	s.logger.Debug("supplier removed", "supplier_id", id)
	return nil
}

// RemoveOrder cancels an order and returns its quantity to the product, if
// the product still exists. The returned value is the order's quantity.
// The order id is never handed out again.
func (s *System) RemoveOrder(id int) (int, error) {
	order, ok := s.orders.remove(id)
	if !ok {
		return 0, domain.IdentifierError("id", id, "Order id does not exist: %d", id)
	}

	if p, ok := s.products.get(order.ProductID); ok {
		p.Quantity += order.Quantity
	}

	s.logger.Debug("order removed", "order_id", id, "product_id", order.ProductID, "restored", order.Quantity)
	return order.Quantity, nil
}
