package domain

import (
	"cmp"
	"fmt"
)

// Role selects which contact registry an entity belongs to.
type Role int

const (
	RoleCustomer Role = iota
	RoleSupplier
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleSupplier:
		return "supplier"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Contact holds the fields shared by customers and suppliers.
type Contact struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// NewContact validates id and returns the contact.
func NewContact(id int, name, city, address string) (Contact, error) {
	if _, err := ValidateIdentifier("id", id); err != nil {
		return Contact{}, err
	}
	return Contact{ID: id, Name: name, City: city, Address: address}, nil
}

func (c Contact) describe(kind string) string {
	return fmt.Sprintf("%s(id=%d, name='%s', city='%s', address='%s')",
		kind, c.ID, c.Name, c.City, c.Address)
}

// Customer places orders.
type Customer struct {
	Contact
}

// NewCustomer returns a validated customer.
func NewCustomer(id int, name, city, address string) (Customer, error) {
	c, err := NewContact(id, name, city, address)
	if err != nil {
		return Customer{}, err
	}
	return Customer{Contact: c}, nil
}

func (c Customer) String() string {
	return c.describe("Customer")
}

// Supplier provides products. Its city keys the orders export.
type Supplier struct {
	Contact
}

// NewSupplier returns a validated supplier.
func NewSupplier(id int, name, city, address string) (Supplier, error) {
	c, err := NewContact(id, name, city, address)
	if err != nil {
		return Supplier{}, err
	}
	return Supplier{Contact: c}, nil
}

func (s Supplier) String() string {
	return s.describe("Supplier")
}

// Product is a catalog entry with its current stock.
type Product struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	SupplierID int     `json:"supplier_id"`
	Quantity   int     `json:"quantity"`
}

// NewProduct validates all identifier and amount fields in the order
// id, supplier_id, quantity, price.
func NewProduct(id int, name string, price float64, supplierID, quantity int) (Product, error) {
	if _, err := ValidateIdentifier("id", id); err != nil {
		return Product{}, err
	}
	if _, err := ValidateIdentifier("supplier_id", supplierID); err != nil {
		return Product{}, err
	}
	if _, err := ValidateIdentifier("quantity", quantity); err != nil {
		return Product{}, err
	}
	if _, err := ValidateAmount("price", price); err != nil {
		return Product{}, err
	}
	return Product{
		ID:         id,
		Name:       name,
		Price:      price,
		SupplierID: supplierID,
		Quantity:   quantity,
	}, nil
}

func (p Product) String() string {
	return fmt.Sprintf("Product(id=%d, name='%s', price=%s, supplier_id=%d, quantity=%d)",
		p.ID, p.Name, FormatFloat(p.Price), p.SupplierID, p.Quantity)
}

// CompareProducts orders products by ascending price, then ascending id.
// Distinct product ids make it a strict total order.
func CompareProducts(a, b Product) int {
	if c := cmp.Compare(a.Price, b.Price); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Order records a placed order. Orders never change after creation.
type Order struct {
	ID         int     `json:"id"`
	CustomerID int     `json:"customer_id"`
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// NewOrder validates all fields in the order id, customer_id, product_id,
// quantity, total_price.
func NewOrder(id, customerID, productID, quantity int, totalPrice float64) (Order, error) {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"id", id},
		{"customer_id", customerID},
		{"product_id", productID},
		{"quantity", quantity},
	} {
		if _, err := ValidateIdentifier(f.name, f.value); err != nil {
			return Order{}, err
		}
	}
	if _, err := ValidateAmount("total_price", totalPrice); err != nil {
		return Order{}, err
	}
	return Order{
		ID:         id,
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}, nil
}

func (o Order) String() string {
	return fmt.Sprintf("Order(id=%d, customer_id=%d, product_id=%d, quantity=%d, total_price=%s)",
		o.ID, o.CustomerID, o.ProductID, o.Quantity, FormatFloat(o.TotalPrice))
}
