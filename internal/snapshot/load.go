package snapshot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
	"github.com/roach88/matamazon/internal/store"
)

// maxLineSize bounds a single snapshot line.
const maxLineSize = 1 << 20

// Bundle holds the entities read from a snapshot, grouped by type in file
// order.
type Bundle struct {
	Customers []domain.Customer
	Suppliers []domain.Supplier
	Products  []domain.Product
}

// Apply feeds the bundle to s: customers, then suppliers, then products.
// It stops at the first rejected entity.
func (b Bundle) Apply(s *ledger.System) error {
	for _, c := range b.Customers {
		if err := s.RegisterCustomer(c); err != nil {
			return fmt.Errorf("register customer %d: %w", c.ID, err)
		}
	}
	for _, sup := range b.Suppliers {
		if err := s.RegisterSupplier(sup); err != nil {
			return fmt.Errorf("register supplier %d: %w", sup.ID, err)
		}
	}
	for _, p := range b.Products {
		if err := s.AddOrUpdateProduct(p); err != nil {
			return fmt.Errorf("add product %d: %w", p.ID, err)
		}
	}
	return nil
}

// Loader reads snapshots into ledgers.
type Loader struct {
	// Logger receives skipped-line records. Defaults to slog.Default().
	Logger *slog.Logger

	// LedgerOptions are passed to every ledger the loader creates.
	LedgerOptions []ledger.Option
}

func (l Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Read parses an object-literal snapshot. Blank and unparseable lines are
// skipped; argument and validation errors are returned with the line number.
func (l Loader) Read(r io.Reader) (Bundle, error) {
	var b Bundle
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		entity, err := l.readLine(line)
		if errors.Is(err, ErrUnparseable) {
			l.logger().Debug("skipping snapshot line", "line", lineNo, "reason", err)
			continue
		}
		if err != nil {
			return Bundle{}, fmt.Errorf("line %d: %w", lineNo, err)
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
	if err := sc.Err(); err != nil {
		return Bundle{}, fmt.Errorf("read snapshot: %w", err)
	}
	return b, nil
}

func (l Loader) readLine(line string) (any, error) {
	c, err := parseLine(line)
	if err != nil {
		return nil, err
	}
	return build(c)
}

// Load reads an object-literal snapshot and applies it to a new ledger.
func (l Loader) Load(r io.Reader) (*ledger.System, error) {
	b, err := l.Read(r)
	if err != nil {
		return nil, err
	}
	s := ledger.New(l.LedgerOptions...)
	if err := b.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads the snapshot at path. The format follows the extension:
// .cue for CUE documents, .db or .sqlite for a stored run (the latest one),
// anything else for object-literal text.
func (l Loader) LoadFile(ctx context.Context, path string) (*ledger.System, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		b, err := l.ReadCUE(data, path)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", path, err)
		}
		s := ledger.New(l.LedgerOptions...)
		if err := b.Apply(s); err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", path, err)
		}
		return s, nil

	case ".db", ".sqlite":
		return l.loadStore(ctx, path)

	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		defer f.Close()
		s, err := l.Load(f)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", path, err)
		}
		return s, nil
	}
}

func (l Loader) loadStore(ctx context.Context, path string) (*ledger.System, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer st.Close()

	run, err := st.LatestRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	state, err := st.LoadState(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	l.logger().Debug("restoring stored run", "path", path, "run_id", run.ID)

	s, err := ledger.Restore(state, l.LedgerOptions...)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return s, nil
}
