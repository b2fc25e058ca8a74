// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AcmeLedger returns a ledger holding supplier 1 (Acme, NYC), customer 7
// (Dana, Haifa) and product 10 (Widget, 2.5, three in stock).
func AcmeLedger(t testing.TB) *ledger.System {
	t.Helper()
	s := ledger.New(ledger.WithLogger(DiscardLogger()))

	sup, err := domain.NewSupplier(1, "Acme", "NYC", "5th Ave")
	require.NoError(t, err)
	require.NoError(t, s.RegisterSupplier(sup))

	c, err := domain.NewCustomer(7, "Dana", "Haifa", "Herzl 1")
	require.NoError(t, err)
	require.NoError(t, s.RegisterCustomer(c))

	p, err := domain.NewProduct(10, "Widget", 2.5, 1, 3)
	require.NoError(t, err)
	require.NoError(t, s.AddOrUpdateProduct(p))
	return s
}
