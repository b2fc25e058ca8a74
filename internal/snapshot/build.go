package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/matamazon/internal/domain"
)

// ArgumentError reports a call whose arguments do not fit the constructor:
// missing or surplus arguments, unknown keywords, or an invalid operand.
// Unlike syntax errors it aborts the load.
type ArgumentError struct {
	Type    string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s(): %s", e.Type, e.Message)
}

// fields lists constructor parameters in positional order.
var fields = map[string][]string{
	"Customer": {"id", "name", "city", "address"},
	"Supplier": {"id", "name", "city", "address"},
	"Product":  {"id", "name", "price", "supplier_id", "quantity"},
	"Order":    {"id", "customer_id", "product_id", "quantity", "total_price"},
}

// build evaluates a parsed call into a domain entity (domain.Customer,
// domain.Supplier, domain.Product or domain.Order).
func build(c call) (any, error) {
	params, ok := fields[c.name]
	if !ok {
		return nil, unparseable("name %q is not defined", c.name)
	}
	for _, a := range c.args {
		switch v := a.value.(type) {
		case undefinedName:
			return nil, unparseable("name %q is not defined", v.name)
		case badOperand:
			return nil, &ArgumentError{Message: "bad operand type for unary sign: '" + v.typeName + "'"}
		}
	}

	values, err := bind(c, params)
	if err != nil {
		return nil, err
	}

	switch c.name {
	case "Customer":
		id, err := domain.ValidateIdentifier("id", values["id"])
		if err != nil {
			return nil, err
		}
		return domain.NewCustomer(id, pyText(values["name"]), pyText(values["city"]), pyText(values["address"]))
	case "Supplier":
		id, err := domain.ValidateIdentifier("id", values["id"])
		if err != nil {
			return nil, err
		}
		return domain.NewSupplier(id, pyText(values["name"]), pyText(values["city"]), pyText(values["address"]))
	case "Product":
		ints, err := identifiers(values, "id", "supplier_id", "quantity")
		if err != nil {
			return nil, err
		}
		price, err := domain.ValidateAmount("price", values["price"])
		if err != nil {
			return nil, err
		}
		return domain.NewProduct(ints[0], pyText(values["name"]), price, ints[1], ints[2])
	default:
		ints, err := identifiers(values, "id", "customer_id", "product_id", "quantity")
		if err != nil {
			return nil, err
		}
		total, err := domain.ValidateAmount("total_price", values["total_price"])
		if err != nil {
			return nil, err
		}
		return domain.NewOrder(ints[0], ints[1], ints[2], ints[3], total)
	}
}

// bind maps positional and keyword arguments onto params.
func bind(c call, params []string) (map[string]any, error) {
	values := make(map[string]any, len(params))
	positional := 0
	for _, a := range c.args {
		if a.keyword != "" {
			continue
		}
		if positional >= len(params) {
			return nil, &ArgumentError{Type: c.name, Message: fmt.Sprintf(
				"takes %d positional arguments but %d were given", len(params), countPositional(c))}
		}
		values[params[positional]] = a.value
		positional++
	}

	for _, a := range c.args {
		if a.keyword == "" {
			continue
		}
		if !contains(params, a.keyword) {
			return nil, &ArgumentError{Type: c.name, Message: fmt.Sprintf(
				"got an unexpected keyword argument '%s'", a.keyword)}
		}
		if _, dup := values[a.keyword]; dup {
			return nil, &ArgumentError{Type: c.name, Message: fmt.Sprintf(
				"got multiple values for argument '%s'", a.keyword)}
		}
		values[a.keyword] = a.value
	}

	var missing []string
	for _, name := range params {
		if _, ok := values[name]; !ok {
			missing = append(missing, "'"+name+"'")
		}
	}
	if len(missing) > 0 {
		return nil, &ArgumentError{Type: c.name, Message: fmt.Sprintf(
			"missing %d required arguments: %s", len(missing), strings.Join(missing, ", "))}
	}
	return values, nil
}

// identifiers validates the named fields in order.
func identifiers(values map[string]any, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := domain.ValidateIdentifier(name, values[name])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func countPositional(c call) int {
	n := 0
	for _, a := range c.args {
		if a.keyword == "" {
			n++
		}
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// pyText renders a literal the way it prints when used as text.
func pyText(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return domain.FormatFloat(val)
	default:
		return fmt.Sprint(val)
	}
}

func pyTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "NoneType"
	case string:
		return "str"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	default:
		return fmt.Sprintf("%T", v)
	}
}
