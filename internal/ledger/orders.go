package ledger

import (
	"github.com/roach88/matamazon/internal/domain"
)

// Placement outcomes returned by PlaceOrder. A rejected placement is a normal
// business result, not an error.
const (
	OrderAccepted     = "The order has been accepted in the system"
	ProductNotFound   = "The product does not exist in the system"
	InsufficientStock = "The quantity requested for this product is greater than the quantity in stock"
)

// DefaultOrderQuantity is used when a caller does not name a quantity.
const DefaultOrderQuantity = 1

// PlaceOrder takes quantity units of a product for a customer.
//
// Malformed ids or quantities fail with ErrInvalidIdentifier. A missing
// product or a quantity above the current stock returns ProductNotFound or
// InsufficientStock and changes nothing. Ordering exactly the remaining stock
// is allowed. On success the stock is decremented, the order is stored under
// the next order id and OrderAccepted is returned.
func (s *System) PlaceOrder(customerID, productID, quantity int) (string, error) {
	if _, err := domain.ValidateIdentifier("customer_id", customerID); err != nil {
		return "", err
	}
	if _, err := domain.ValidateIdentifier("product_id", productID); err != nil {
		return "", err
	}
	if _, err := domain.ValidateIdentifier("quantity", quantity); err != nil {
		return "", err
	}

	product, ok := s.products.get(productID)
	if !ok {
		s.logger.Info("order rejected", "product_id", productID, "outcome", ProductNotFound)
		return ProductNotFound, nil
	}
	if quantity > product.Quantity {
		s.logger.Info("order rejected",
			"product_id", productID, "requested", quantity, "in_stock", product.Quantity,
			"outcome", InsufficientStock)
		return InsufficientStock, nil
	}

	order, err := domain.NewOrder(s.orderIDs.peek(), customerID, productID, quantity,
		product.Price*float64(quantity))
	if err != nil {
		return "", err
	}

	product.Quantity -= quantity
	s.orderIDs.advance()
	s.orders.put(order.ID, &order)

	s.logger.Debug("order placed",
		"order_id", order.ID, "customer_id", customerID, "product_id", productID,
		"quantity", quantity, "stock_left", product.Quantity)
	return OrderAccepted, nil
}
