package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matamazon/internal/ledger"
	"github.com/roach88/matamazon/internal/store"
)

// InspectOptions holds flags for the inspect and runs commands.
type InspectOptions struct {
	*RootOptions
	Database string
	RunID    string // inspect only; latest run when empty
	Format   string // "json" | "text"
}

// InspectResult is the JSON payload of inspect.
type InspectResult struct {
	Run    store.Run           `json:"run"`
	State  ledger.State        `json:"state"`
	Orders ledger.OrdersByCity `json:"orders"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a stored run",
		Long: `Show the final state saved by a batch run with --db.

Text output is a header line, the final-state export and the orders
export of the run. JSON output wraps the full state and the orders in the
standard response envelope.

Examples:
  matamazon inspect --db ./matamazon.db
  matamazon inspect --db ./matamazon.db --run 0190c8f2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkInspectOptions(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), opts, cmd)
		},
	}

	addInspectFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id (default latest)")

	return cmd
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		Long: `List the runs saved in a database, oldest first.

Examples:
  matamazon runs --db ./matamazon.db
  matamazon runs --db ./matamazon.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkInspectOptions(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd.Context(), opts, cmd)
		},
	}

	addInspectFlags(cmd, opts)

	return cmd
}

func addInspectFlags(cmd *cobra.Command, opts *InspectOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", opts.Config.DB, "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
}

func checkInspectOptions(opts *InspectOptions) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}
	if opts.Database == "" {
		return NewExitError(ExitUsage, "missing required flag --db")
	}
	return nil
}

func runInspect(ctx context.Context, opts *InspectOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var run store.Run
	if opts.RunID == "" {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.GetRun(ctx, opts.RunID)
	}
	if err != nil {
		return reportStoreError(out, err)
	}

	state, err := st.LoadState(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load run", err)
	}
	system, err := ledger.Restore(state)
	if err != nil {
		return WrapExitError(ExitFailure, "stored run is inconsistent", err)
	}

	if opts.Format == "json" {
		return out.Success(InspectResult{
			Run:    run,
			State:  state,
			Orders: system.ExportOrders(),
		})
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "run %s (seq %d, next order id %d)\n", run.ID, run.Seq, run.NextOrderID)
	if err := system.ExportSystem(&buf); err != nil {
		return WrapExitError(ExitFailure, "failed to render run", err)
	}
	if _, err := system.ExportOrders().WriteTo(&buf); err != nil {
		return WrapExitError(ExitFailure, "failed to render run", err)
	}
	buf.WriteByte('\n')
	return out.Success(buf.String())
}

func runRuns(ctx context.Context, opts *InspectOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return out.Success(runs)
	}

	var buf bytes.Buffer
	for _, r := range runs {
		fmt.Fprintf(&buf, "%d\t%s\tnext_order_id=%d\n", r.Seq, r.ID, r.NextOrderID)
	}
	return out.Success(buf.String())
}

// openExisting opens a database that must already exist; store.Open alone
// would create an empty one.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitFailure, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open database", err)
	}
	return st, nil
}

// reportStoreError writes a lookup failure through the formatter and turns
// it into an ExitError.
func reportStoreError(out *OutputFormatter, err error) error {
	code := "E_STORE"
	switch {
	case errors.Is(err, store.ErrNoRuns):
		code = "E_NO_RUNS"
	case errors.Is(err, store.ErrRunNotFound):
		code = "E_RUN_NOT_FOUND"
	}
	if out.Format == "json" {
		if writeErr := out.Error(code, err.Error()); writeErr != nil {
			return WrapExitError(ExitFailure, "failed to write output", writeErr)
		}
	}
	return WrapExitError(ExitFailure, "failed to find run", err)
}
