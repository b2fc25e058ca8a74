package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1 << 20

// Dispatcher applies commands to a ledger, one ledger operation per command.
// Search results are written to the output writer; nothing else is.
type Dispatcher struct {
	system *ledger.System
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-command records.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher over system that prints search results
// to out.
func NewDispatcher(system *ledger.System, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		system: system,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes every command in r in order. Blank lines are skipped. It
// stops at the first failing command and returns its error wrapped with the
// line number; commands before it stay applied.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo, executed := 0, 0
	for sc.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, ok := Parse(sc.Text())
		if !ok {
			continue
		}
		cmd.Line = lineNo

		if err := d.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		executed++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read command log: %w", err)
	}

	d.logger.Debug("command log done", "lines", lineNo, "commands", executed)
	return nil
}

// Execute applies a single command. Unknown keywords are ignored.
func (d *Dispatcher) Execute(cmd Command) error {
	d.logger.Debug("command", "line", cmd.Line, "kind", string(cmd.Kind), "args", cmd.Args)

	switch cmd.Kind {
	case KindRegister:
		return d.register(cmd)
	case KindAdd, KindUpdate:
		return d.upsert(cmd)
	case KindOrder:
		return d.order(cmd)
	case KindRemove:
		return d.remove(cmd)
	case KindSearch:
		return d.search(cmd)
	default:
		d.logger.Warn("ignoring unknown command", "line", cmd.Line, "kind", string(cmd.Kind))
		return nil
	}
}

// register adds a customer when the kind token is "customer" in any case,
// and a supplier for any other token.
func (d *Dispatcher) register(cmd Command) error {
	kind, err := cmd.arg(0, "kind")
	if err != nil {
		return err
	}
	id, err := cmd.intArg(1, "id")
	if err != nil {
		return err
	}
	name, err := cmd.textArg(2, "name")
	if err != nil {
		return err
	}
	city, err := cmd.textArg(3, "city")
	if err != nil {
		return err
	}
	address, err := cmd.textArg(4, "address")
	if err != nil {
		return err
	}

	if cases.Fold().String(kind) == domain.RoleCustomer.String() {
		c, err := domain.NewCustomer(id, name, city, address)
		if err != nil {
			return err
		}
		return d.system.RegisterCustomer(c)
	}
	sup, err := domain.NewSupplier(id, name, city, address)
	if err != nil {
		return err
	}
	return d.system.RegisterSupplier(sup)
}

func (d *Dispatcher) upsert(cmd Command) error {
	id, err := cmd.intArg(0, "id")
	if err != nil {
		return err
	}
	name, err := cmd.textArg(1, "name")
	if err != nil {
		return err
	}
	price, err := cmd.floatArg(2, "price")
	if err != nil {
		return err
	}
	supplierID, err := cmd.intArg(3, "supplier_id")
	if err != nil {
		return err
	}
	quantity, err := cmd.intArg(4, "quantity")
	if err != nil {
		return err
	}

	p, err := domain.NewProduct(id, name, price, supplierID, quantity)
	if err != nil {
		return err
	}
	return d.system.AddOrUpdateProduct(p)
}

func (d *Dispatcher) order(cmd Command) error {
	customerID, err := cmd.intArg(0, "customer_id")
	if err != nil {
		return err
	}
	productID, err := cmd.intArg(1, "product_id")
	if err != nil {
		return err
	}
	quantity := ledger.DefaultOrderQuantity
	if len(cmd.Args) > 2 {
		if quantity, err = cmd.intArg(2, "quantity"); err != nil {
			return err
		}
	}

	outcome, err := d.system.PlaceOrder(customerID, productID, quantity)
	if err != nil {
		return err
	}
	d.logger.Debug("order outcome", "line", cmd.Line, "outcome", outcome)
	return nil
}

func (d *Dispatcher) remove(cmd Command) error {
	id, err := cmd.intArg(0, "id")
	if err != nil {
		return err
	}
	classType, err := cmd.arg(1, "class_type")
	if err != nil {
		return err
	}

	restored, err := d.system.RemoveObject(id, classType)
	if err != nil {
		return err
	}
	d.logger.Debug("removed", "line", cmd.Line, "class_type", classType, "id", id, "restored", restored)
	return nil
}

func (d *Dispatcher) search(cmd Command) error {
	query, err := cmd.textArg(0, "query")
	if err != nil {
		return err
	}

	var results []domain.Product
	if len(cmd.Args) > 1 {
		maxPrice, err := cmd.floatArg(1, "max_price")
		if err != nil {
			return err
		}
		results = d.system.SearchProductsUpTo(query, maxPrice)
	} else {
		results = d.system.SearchProducts(query)
	}

	if _, err := io.WriteString(d.out, FormatProducts(results)+"\n"); err != nil {
		return fmt.Errorf("write search results: %w", err)
	}
	return nil
}

// FormatProducts renders products as a bracketed, comma-separated list of
// their descriptions.
func FormatProducts(products []domain.Product) string {
	descs := make([]string, len(products))
	for i, p := range products {
		descs[i] = p.String()
	}
	return "[" + strings.Join(descs, ", ") + "]"
}
