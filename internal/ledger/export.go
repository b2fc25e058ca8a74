package ledger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf16"
)

// ExportSystem writes one line per customer, then per supplier, then per
// product, each in registry order.
func (s *System) ExportSystem(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for c := range s.customers.values() {
		fmt.Fprintln(bw, c.String())
	}
	for sup := range s.suppliers.values() {
		fmt.Fprintln(bw, sup.String())
	}
	for p := range s.products.values() {
		fmt.Fprintln(bw, p.String())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export system: %w", err)
	}
	return nil
}

// ExportSystemToFile writes ExportSystem's output to path, replacing any
// existing file.
func (s *System) ExportSystemToFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export system: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("export system: %w", closeErr)
		}
	}()
	return s.ExportSystem(f)
}

// CityOrders lists the order descriptions shipped from one supplier city.
type CityOrders struct {
	City   string
	Orders []string
}

// OrdersByCity groups order descriptions by supplier city. Cities keep the
// order in which they were first seen.
type OrdersByCity []CityOrders

// Get returns the descriptions for city, or nil.
func (o OrdersByCity) Get(city string) []string {
	for _, g := range o {
		if g.City == city {
			return g.Orders
		}
	}
	return nil
}

// ExportOrders groups every live order by the city of the supplier of its
// product. Orders whose product or supplier no longer exists are skipped.
func (s *System) ExportOrders() OrdersByCity {
	out := OrdersByCity{}
	index := make(map[string]int)

	for o := range s.orders.values() {
		p, ok := s.products.get(o.ProductID)
		if !ok {
			continue
		}
		sup, ok := s.suppliers.get(p.SupplierID)
		if !ok {
			continue
		}

		i, seen := index[sup.City]
		if !seen {
			i = len(out)
			index[sup.City] = i
			out = append(out, CityOrders{City: sup.City})
		}
		out[i].Orders = append(out[i].Orders, o.String())
	}
	return out
}

// MarshalJSON encodes the groups as a compact JSON object, keeping city
// order.
func (o OrdersByCity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.City)
		if err != nil {
			return nil, err
		}
		orders := g.Orders
		if orders == nil {
			orders = []string{}
		}
		val, err := json.Marshal(orders)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteTo writes the groups in the export layout:
//
//	{"NYC": ["Order(...)", "Order(...)"], "LA": ["Order(...)"]}
//
// Non-ASCII characters are escaped and no trailing newline is written.
func (o OrdersByCity) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range o {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeASCIIString(&buf, g.City)
		buf.WriteString(": [")
		for j, desc := range g.Orders {
			if j > 0 {
				buf.WriteString(", ")
			}
			writeASCIIString(&buf, desc)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.WriteTo(w)
}

// writeASCIIString writes s as a JSON string literal that contains only
// printable ASCII.
func writeASCIIString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				buf.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(buf, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
}
