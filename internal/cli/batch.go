package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/matamazon/internal/command"
	"github.com/roach88/matamazon/internal/ledger"
	"github.com/roach88/matamazon/internal/snapshot"
	"github.com/roach88/matamazon/internal/store"
)

// runBatch loads the starting snapshot, applies the command log and writes
// the exports. Nothing is exported when any step before the export fails.
func runBatch(ctx context.Context, opts *RootOptions, stdout, stderr io.Writer) (err error) {
	logger := newLogger(stderr, opts)
	defer func() {
		if err != nil {
			logger.Debug("batch failed", "error", err)
		}
	}()

	ledgerOpts := []ledger.Option{ledger.WithLogger(logger)}

	var system *ledger.System
	if opts.System != "" {
		loader := snapshot.Loader{Logger: logger, LedgerOptions: ledgerOpts}
		system, err = loader.LoadFile(ctx, opts.System)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to load snapshot", err)
		}
		logger.Debug("snapshot loaded", "path", opts.System,
			"customers", len(system.Customers()), "suppliers", len(system.Suppliers()),
			"products", len(system.Products()))
	} else {
		system = ledger.New(ledgerOpts...)
	}

	if err := executeLog(ctx, system, opts.Log, stdout, logger); err != nil {
		return WrapExitError(ExitFailure, "failed to process command log", err)
	}

	if err := writeOrders(system.ExportOrders(), opts.OrdersOut, stdout); err != nil {
		return WrapExitError(ExitFailure, "failed to export orders", err)
	}

	if opts.SystemOut != "" {
		if err := system.ExportSystemToFile(opts.SystemOut); err != nil {
			return WrapExitError(ExitFailure, "failed to export system", err)
		}
	}

	if opts.Database != "" {
		if err := saveRun(ctx, system, opts.Database, logger); err != nil {
			return WrapExitError(ExitFailure, "failed to save run", err)
		}
	}
	return nil
}

func executeLog(ctx context.Context, system *ledger.System, path string, stdout io.Writer, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := command.NewDispatcher(system, stdout, command.WithLogger(logger))
	if err := d.Run(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeOrders(orders ledger.OrdersByCity, path string, stdout io.Writer) (err error) {
	if path == "" {
		_, err = orders.WriteTo(stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = orders.WriteTo(f)
	return err
}

func saveRun(ctx context.Context, system *ledger.System, path string, logger *slog.Logger) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	runID, err := st.SaveState(ctx, system.State())
	if err != nil {
		return err
	}
	logger.Info("run saved", "db", path, "run_id", runID)
	return nil
}
