package snapshot

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/matamazon/internal/domain"
)

// cueSections maps top-level list fields to entity type names, in the order
// they are read.
var cueSections = []struct {
	path string
	typ  string
}{
	{"customers", "Customer"},
	{"suppliers", "Supplier"},
	{"products", "Product"},
}

// ReadCUE reads a CUE snapshot document:
//
//	customers: [{id: 7, name: "Dana", city: "Haifa", address: "Herzl 1"}]
//	suppliers: [{id: 1, name: "Acme", city: "NYC", address: "5th Ave"}]
//	products: [{id: 10, name: "Widget", price: 2.5, supplier_id: 1, quantity: 3}]
//
// A document that does not compile is an error as a whole. Entries are
// validated exactly like object-literal lines.
func (l Loader) ReadCUE(data []byte, filename string) (Bundle, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Bundle{}, fmt.Errorf("compile CUE snapshot: %w", err)
	}

	var b Bundle
	for _, section := range cueSections {
		list := value.LookupPath(cue.ParsePath(section.path))
		if !list.Exists() {
			continue
		}
		iter, err := list.List()
		if err != nil {
			return Bundle{}, fmt.Errorf("%s: %w", section.path, err)
		}

		for i := 0; iter.Next(); i++ {
			c, err := cueCall(section.typ, iter.Value())
			if err != nil {
				return Bundle{}, fmt.Errorf("%s[%d]: %w", section.path, i, err)
			}
			entity, err := build(c)
			if err != nil {
				return Bundle{}, fmt.Errorf("%s[%d]: %w", section.path, i, err)
			}
			switch e := entity.(type) {
			case domain.Customer:
				b.Customers = append(b.Customers, e)
			case domain.Supplier:
				b.Suppliers = append(b.Suppliers, e)
			case domain.Product:
				b.Products = append(b.Products, e)
			}
		}
	}
	l.logger().Debug("read CUE snapshot", "file", filename,
		"customers", len(b.Customers), "suppliers", len(b.Suppliers), "products", len(b.Products))
	return b, nil
}

// cueCall turns a CUE struct into a keyword-only call.
func cueCall(typ string, v cue.Value) (call, error) {
	iter, err := v.Fields()
	if err != nil {
		return call{}, &ArgumentError{Type: typ, Message: fmt.Sprintf("expected a struct: %v", err)}
	}

	c := call{name: typ}
	for iter.Next() {
		lit, err := cueLiteral(iter.Value())
		if err != nil {
			return call{}, &ArgumentError{Type: typ, Message: fmt.Sprintf("field %s: %v", iter.Label(), err)}
		}
		c.args = append(c.args, arg{keyword: iter.Label(), value: lit})
	}
	return c, nil
}

// cueLiteral converts a concrete scalar to the literal types build accepts.
func cueLiteral(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.NullKind:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported value of kind %s", v.Kind())
	}
}
