package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
)

var (
	// ErrNoRuns is returned by LatestRun on an empty database.
	ErrNoRuns = errors.New("no runs stored")

	// ErrRunNotFound is returned when a run id is unknown.
	ErrRunNotFound = errors.New("run not found")
)

// Run describes one stored ledger state.
type Run struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	NextOrderID int    `json:"next_order_id"`
}

// LatestRun returns the most recently written run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, next_order_id FROM runs
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&r.ID, &r.Seq, &r.NextOrderID)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, next_order_id FROM runs WHERE id = ?
	`, runID).Scan(&r.ID, &r.Seq, &r.NextOrderID)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns every run, oldest first. Returns an empty slice (not nil)
// when there are none.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, next_order_id FROM runs ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq, &r.NextOrderID); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LoadState reads a stored run back into a ledger.State. Every registry
// comes back in the order it was written.
func (s *Store) LoadState(ctx context.Context, runID string) (ledger.State, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return ledger.State{}, err
	}
	st := ledger.State{NextOrderID: run.NextOrderID}

	st.Customers, err = queryAll(ctx, s.db, `
		SELECT id, name, city, address FROM customers
		WHERE run_id = ? ORDER BY pos ASC
	`, runID, func(rows *sql.Rows) (domain.Customer, error) {
		var c domain.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Address)
		return c, err
	})
	if err != nil {
		return ledger.State{}, fmt.Errorf("load customers: %w", err)
	}

	st.Suppliers, err = queryAll(ctx, s.db, `
		SELECT id, name, city, address FROM suppliers
		WHERE run_id = ? ORDER BY pos ASC
	`, runID, func(rows *sql.Rows) (domain.Supplier, error) {
		var sup domain.Supplier
		err := rows.Scan(&sup.ID, &sup.Name, &sup.City, &sup.Address)
		return sup, err
	})
	if err != nil {
		return ledger.State{}, fmt.Errorf("load suppliers: %w", err)
	}

	st.Products, err = queryAll(ctx, s.db, `
		SELECT id, name, price, supplier_id, quantity FROM products
		WHERE run_id = ? ORDER BY pos ASC
	`, runID, func(rows *sql.Rows) (domain.Product, error) {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.SupplierID, &p.Quantity)
		return p, err
	})
	if err != nil {
		return ledger.State{}, fmt.Errorf("load products: %w", err)
	}

	st.Orders, err = queryAll(ctx, s.db, `
		SELECT id, customer_id, product_id, quantity, total_price FROM orders
		WHERE run_id = ? ORDER BY pos ASC
	`, runID, func(rows *sql.Rows) (domain.Order, error) {
		var o domain.Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.TotalPrice)
		return o, err
	})
	if err != nil {
		return ledger.State{}, fmt.Errorf("load orders: %w", err)
	}

	return st, nil
}

// queryAll runs a single-argument query and scans every row.
// Returns an empty slice (not nil) if no rows match.
func queryAll[T any](ctx context.Context, db *sql.DB, query string, arg any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
