package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/matamazon/internal/ledger"
)

// NewRunID returns a time-sortable UUIDv7 run id.
//
// Panics if UUID generation fails (should never happen in practice).
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SaveState writes st as a new run under a fresh UUIDv7 id and returns it.
func (s *Store) SaveState(ctx context.Context, st ledger.State) (string, error) {
	runID := NewRunID()
	if err := s.SaveRun(ctx, runID, st); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveRun writes st as a new run with the given id in a single transaction.
// Writing an id that already exists fails.
func (s *Store) SaveRun(ctx context.Context, runID string, st ledger.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, next_order_id)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?)
	`, runID, st.NextOrderID)
	if err != nil {
		return fmt.Errorf("save run: insert run: %w", err)
	}

	if err := insertRows(ctx, tx, `
		INSERT INTO customers (run_id, pos, id, name, city, address)
		VALUES (?, ?, ?, ?, ?, ?)
	`, len(st.Customers), func(i int) []any {
		c := st.Customers[i]
		return []any{runID, i, c.ID, c.Name, c.City, c.Address}
	}); err != nil {
		return fmt.Errorf("save run: customers: %w", err)
	}

	if err := insertRows(ctx, tx, `
		INSERT INTO suppliers (run_id, pos, id, name, city, address)
		VALUES (?, ?, ?, ?, ?, ?)
	`, len(st.Suppliers), func(i int) []any {
		sup := st.Suppliers[i]
		return []any{runID, i, sup.ID, sup.Name, sup.City, sup.Address}
	}); err != nil {
		return fmt.Errorf("save run: suppliers: %w", err)
	}

	if err := insertRows(ctx, tx, `
		INSERT INTO products (run_id, pos, id, name, price, supplier_id, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, len(st.Products), func(i int) []any {
		p := st.Products[i]
		return []any{runID, i, p.ID, p.Name, p.Price, p.SupplierID, p.Quantity}
	}); err != nil {
		return fmt.Errorf("save run: products: %w", err)
	}

	if err := insertRows(ctx, tx, `
		INSERT INTO orders (run_id, pos, id, customer_id, product_id, quantity, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, len(st.Orders), func(i int) []any {
		o := st.Orders[i]
		return []any{runID, i, o.ID, o.CustomerID, o.ProductID, o.Quantity, o.TotalPrice}
	}); err != nil {
		return fmt.Errorf("save run: orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}
	return nil
}

// insertRows executes query once per row using a prepared statement.
func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, row func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
