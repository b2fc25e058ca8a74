package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// goldenText renders a result as the golden file body: the command output,
// the orders export and the final-state export, plus the error kind when
// the scenario stopped early.
func goldenText(r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# output\n%s", r.Output)
	fmt.Fprintf(&b, "# orders\n%s\n", r.Orders)
	fmt.Fprintf(&b, "# system\n%s", r.System)
	if r.ErrorKind != "" {
		fmt.Fprintf(&b, "# error\n%s\n", r.ErrorKind)
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its outcome against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario cannot run. Test failure (via goldie) occurs
// if the outcome doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, goldenText(result))
}
