package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/matamazon/internal/config"
)

// RootOptions holds the batch flags and the global flags.
type RootOptions struct {
	Verbose   bool
	Log       string // command log (required for a batch)
	System    string // snapshot to start from
	OrdersOut string // orders export; stdout when empty
	SystemOut string // final-state export; skipped when empty
	Database  string // SQLite file receiving the final state; skipped when empty

	Config config.Config
}

// ValidFormats defines the allowed output formats of the inspection commands.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the matamazon command, configured from the
// environment.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.Load())
}

func newRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "matamazon",
		Short: "matamazon - inventory and order ledger",
		Long: `Run a command log against an in-memory inventory/order ledger.

The ledger starts empty, or from the snapshot given with -s. Every line of
the command log (-l) is applied in order; search results go to stdout. When
the log is done the orders, grouped by supplier city, are written to -o (or
stdout) and the final customers, suppliers and products to -os.

Example:
  matamazon -l commands.log -s system.txt -o orders.json -os system.out
  matamazon -l commands.log --db ./matamazon.db -v`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Log == "" {
				return NewExitError(ExitUsage, "missing required flag --log")
			}
			return runBatch(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid arguments", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.Flags().StringVarP(&opts.Log, "log", "l", "", "command log to execute (required)")
	cmd.Flags().StringVarP(&opts.System, "system", "s", "", "snapshot to load first (.txt, .cue, .db)")
	cmd.Flags().StringVarP(&opts.OrdersOut, "orders-out", "o", "", "file for the orders export (default stdout)")
	cmd.Flags().StringVar(&opts.SystemOut, "system-out", "", "file for the final-state export (also -os)")
	cmd.Flags().StringVar(&opts.Database, "db", cfg.DB, "SQLite database to save the final state in")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// Main runs the matamazon command with args (without the program name) and
// returns the process exit code.
//
// Usage errors print UsageMessage on stderr. A failing batch prints
// FailureMessage on stdout; the cause is logged at debug level. Failures of
// the inspection commands are printed on stderr.
func Main(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if !isSubcommand(cmd, args) {
		normalized, err := normalizeArgs(args)
		if err != nil {
			fmt.Fprintln(stderr, UsageMessage)
			return ExitUsage
		}
		args = normalized
	}
	cmd.SetArgs(args)

	executed, err := cmd.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	switch {
	case executed == cmd && code == ExitUsage:
		fmt.Fprintln(stderr, UsageMessage)
	case executed == cmd:
		fmt.Fprintln(stdout, FailureMessage)
	case code == ExitUsage:
		fmt.Fprintf(stderr, "Error: %v\n%s", err, executed.UsageString())
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}

func isSubcommand(root *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "completion":
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == args[0] || c.HasAlias(args[0]) {
			return true
		}
	}
	return false
}

// batchValueFlags maps every accepted spelling of a valued batch flag to its
// long form.
var batchValueFlags = map[string]string{
	"-l": "--log", "--log": "--log",
	"-s": "--system", "--system": "--system",
	"-o": "--orders-out", "--orders-out": "--orders-out",
	"-os": "--system-out", "--system-out": "--system-out",
	"--db": "--db",
}

var batchSwitches = map[string]bool{
	"-v": true, "--verbose": true,
	"-h": true, "--help": true,
}

// normalizeArgs checks batch arguments and rewrites valued flags to
// --name=value, so the legacy two-letter -os flag survives pflag's
// shorthand parsing and values starting with '-' are taken verbatim.
//
// Every token must be a known flag; a valued flag needs a following token
// that is not itself a flag.
func normalizeArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if batchSwitches[tok] {
			out = append(out, tok)
			continue
		}

		name, inline, hasInline := strings.Cut(tok, "=")
		long, ok := batchValueFlags[name]
		if !ok {
			return nil, fmt.Errorf("unexpected argument %q", tok)
		}
		if hasInline {
			if !strings.HasPrefix(name, "--") {
				return nil, fmt.Errorf("unexpected argument %q", tok)
			}
			out = append(out, long+"="+inline)
			continue
		}

		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag %s needs a value", tok)
		}
		val := args[i+1]
		if isFlagToken(val) {
			return nil, fmt.Errorf("flag %s needs a value, got flag %s", tok, val)
		}
		out = append(out, long+"="+val)
		i++
	}
	return out, nil
}

func isFlagToken(tok string) bool {
	_, valued := batchValueFlags[tok]
	return valued || batchSwitches[tok]
}

// newLogger builds the stderr text logger: the configured level, or debug
// when verbose.
func newLogger(w io.Writer, opts *RootOptions) *slog.Logger {
	level := opts.Config.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
