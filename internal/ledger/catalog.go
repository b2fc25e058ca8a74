package ledger

import (
	"github.com/roach88/matamazon/internal/domain"
)

// AddOrUpdateProduct inserts p when its id is new, otherwise overwrites the
// stored name, price and quantity. The supplier must exist, and an existing
// product's supplier_id can never change.
func (s *System) AddOrUpdateProduct(p domain.Product) error {
	p, err := domain.NewProduct(p.ID, p.Name, p.Price, p.SupplierID, p.Quantity)
	if err != nil {
		return err
	}
	if !s.suppliers.has(p.SupplierID) {
		return domain.IdentifierError("supplier_id", p.SupplierID, "Supplier does not exist")
	}

	existing, ok := s.products.get(p.ID)
	if !ok {
		s.products.put(p.ID, &p)
		s.logger.Debug("product added", "product_id", p.ID, "supplier_id", p.SupplierID, "quantity", p.Quantity)
		return nil
	}

	if existing.SupplierID != p.SupplierID {
		return domain.IdentifierError("supplier_id", p.SupplierID, "Cannot change supplier_id for existing product")
	}

	existing.Name = p.Name
	existing.Price = p.Price
	existing.Quantity = p.Quantity
	s.logger.Debug("product updated", "product_id", p.ID, "quantity", p.Quantity)
	return nil
}
