package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a ledger scenario: a starting snapshot, a command log and
// what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Snapshot is inline object-literal snapshot text.
	Snapshot string `yaml:"snapshot,omitempty"`

	// SnapshotFile is a snapshot path, resolved relative to the scenario
	// file by LoadScenario. Mutually exclusive with Snapshot.
	SnapshotFile string `yaml:"snapshot_file,omitempty"`

	// Commands are command log lines, executed in order.
	Commands []string `yaml:"commands"`

	// Expect describes the observable outcome.
	Expect ExpectClause `yaml:"expect"`

	// Assertions validate the final ledger state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies expected output and failure.
type ExpectClause struct {
	// Output is the exact text printed by the commands. Nil skips the check.
	Output *string `yaml:"output,omitempty"`

	// Orders is the exact orders export. Nil skips the check.
	Orders *string `yaml:"orders,omitempty"`

	// Error is the expected error kind; empty means success is expected.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates final ledger state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Class is the object class (used by present and absent).
	Class string `yaml:"class,omitempty"`

	// ID is the object id (used by product, present and absent).
	ID int `yaml:"id,omitempty"`

	// Expect holds expected product fields (used by product).
	// Subset match: only the given fields are compared.
	Expect map[string]any `yaml:"expect,omitempty"`

	// Value is the expected number (used by order_count and next_order_id).
	Value int `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertProduct     = "product"
	AssertPresent     = "present"
	AssertAbsent      = "absent"
	AssertOrderCount  = "order_count"
	AssertNextOrderID = "next_order_id"
)

// Error kinds accepted by ExpectClause.Error.
const (
	ErrorInvalidIdentifier = "invalid_identifier"
	ErrorInvalidAmount     = "invalid_amount"
	ErrorMalformed         = "malformed"
	ErrorArgument          = "argument"
)

var validErrorKinds = map[string]bool{
	ErrorInvalidIdentifier: true,
	ErrorInvalidAmount:     true,
	ErrorMalformed:         true,
	ErrorArgument:          true,
}

var validClasses = map[string]bool{
	"customer": true,
	"supplier": true,
	"product":  true,
	"order":    true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.SnapshotFile != "" && !filepath.IsAbs(scenario.SnapshotFile) {
		scenario.SnapshotFile = filepath.Join(filepath.Dir(path), scenario.SnapshotFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Snapshot != "" && s.SnapshotFile != "" {
		return fmt.Errorf("snapshot and snapshot_file are mutually exclusive")
	}

	if s.SnapshotFile != "" {
		if _, err := os.Stat(s.SnapshotFile); os.IsNotExist(err) {
			return fmt.Errorf("snapshot file not found: %s", s.SnapshotFile)
		}
	}

	if len(s.Commands) == 0 {
		return fmt.Errorf("commands list is required and must be non-empty")
	}

	if s.Expect.Error != "" && !validErrorKinds[s.Expect.Error] {
		return fmt.Errorf("expect.error: unknown error kind %q", s.Expect.Error)
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertProduct:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for product", index)
		}
	case AssertPresent, AssertAbsent:
		if !validClasses[a.Class] {
			return fmt.Errorf("assertions[%d]: class must be customer, supplier, product or order for %s", index, a.Type)
		}
	case AssertOrderCount:
		if a.Value < 0 {
			return fmt.Errorf("assertions[%d]: value must be non-negative for order_count", index)
		}
	case AssertNextOrderID:
		if a.Value < 1 {
			return fmt.Errorf("assertions[%d]: value must be positive for next_order_id", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
