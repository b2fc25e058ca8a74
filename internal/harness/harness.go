package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/matamazon/internal/command"
	"github.com/roach88/matamazon/internal/domain"
	"github.com/roach88/matamazon/internal/ledger"
	"github.com/roach88/matamazon/internal/snapshot"
	"github.com/roach88/matamazon/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Output is what the commands printed.
	Output string `json:"output"`

	// Orders is the orders export of the final ledger.
	Orders string `json:"orders"`

	// System is the final-state export of the final ledger.
	System string `json:"system"`

	// ErrorKind classifies Err; empty when the scenario ran to the end.
	ErrorKind string `json:"error_kind,omitempty"`

	// Err is the error that stopped the snapshot load or the command log.
	Err error `json:"-"`

	// Errors contains failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final ledger state.
	State ledger.State `json:"state"`
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario on a fresh ledger and checks its expectations.
//
// A snapshot or command failure is part of the result, not a returned error;
// the returned error is reserved for scenarios that cannot run at all.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	logger := testutil.DiscardLogger()
	ledgerOpts := []ledger.Option{ledger.WithLogger(logger)}
	loader := snapshot.Loader{Logger: logger, LedgerOptions: ledgerOpts}

	result := &Result{Pass: true, Errors: []string{}}

	var system *ledger.System
	var err error
	switch {
	case scenario.SnapshotFile != "":
		system, err = loader.LoadFile(ctx, scenario.SnapshotFile)
	case scenario.Snapshot != "":
		system, err = loader.Load(strings.NewReader(scenario.Snapshot))
	default:
		system = ledger.New(ledgerOpts...)
	}

	var out bytes.Buffer
	if err == nil {
		d := command.NewDispatcher(system, &out, command.WithLogger(logger))
		err = d.Run(ctx, strings.NewReader(strings.Join(scenario.Commands, "\n")))
	} else {
		// Keep the export empty when the snapshot never loaded.
		system = ledger.New(ledgerOpts...)
	}

	if err != nil {
		result.Err = err
		result.ErrorKind = classify(err)
	}

	result.Output = out.String()
	var orders bytes.Buffer
	if _, err := system.ExportOrders().WriteTo(&orders); err != nil {
		return nil, fmt.Errorf("export orders: %w", err)
	}
	result.Orders = orders.String()
	var export bytes.Buffer
	if err := system.ExportSystem(&export); err != nil {
		return nil, fmt.Errorf("export system: %w", err)
	}
	result.System = export.String()
	result.State = system.State()

	checkExpect(scenario.Expect, result)
	for i, a := range scenario.Assertions {
		if err := evaluate(system, a); err != nil {
			result.AddError("assertions[%d]: %v", i, err)
		}
	}
	return result, nil
}

// classify maps an error to an error kind.
func classify(err error) string {
	var argErr *snapshot.ArgumentError
	switch {
	case domain.IsInvalidIdentifier(err):
		return ErrorInvalidIdentifier
	case domain.IsInvalidAmount(err):
		return ErrorInvalidAmount
	case errors.Is(err, command.ErrMalformed):
		return ErrorMalformed
	case errors.As(err, &argErr):
		return ErrorArgument
	default:
		return "unknown"
	}
}

func checkExpect(want ExpectClause, result *Result) {
	switch {
	case want.Error == "" && result.Err != nil:
		result.AddError("unexpected error: %v", result.Err)
	case want.Error != "" && result.Err == nil:
		result.AddError("expected %s error, scenario succeeded", want.Error)
	case want.Error != result.ErrorKind && result.Err != nil:
		result.AddError("expected %s error, got %s: %v", want.Error, result.ErrorKind, result.Err)
	}

	if want.Output != nil && *want.Output != result.Output {
		result.AddError("output mismatch:\n  expected: %q\n  actual:   %q", *want.Output, result.Output)
	}
	if want.Orders != nil && *want.Orders != result.Orders {
		result.AddError("orders mismatch:\n  expected: %q\n  actual:   %q", *want.Orders, result.Orders)
	}
}
