// Package command reads the line-oriented command log and applies each
// command to a ledger.
//
// One command per line, whitespace-delimited:
//
//	register <customer|supplier> <id> <name> <city> <address>
//	add <id> <name> <price> <supplier_id> <quantity>
//	update <id> <name> <price> <supplier_id> <quantity>
//	order <customer_id> <product_id> [<quantity>]
//	remove <id> <class_type>
//	search <query> [<max_price>]
//
// Underscores in names, cities, addresses and search queries stand for
// spaces. Tokens past the ones a command uses are ignored.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is a command keyword.
type Kind string

const (
	KindRegister Kind = "register"
	KindAdd      Kind = "add"
	KindUpdate   Kind = "update"
	KindOrder    Kind = "order"
	KindRemove   Kind = "remove"
	KindSearch   Kind = "search"
)

// ErrMalformed is returned for a missing token or one that does not parse
// as the number a command expects.
var ErrMalformed = errors.New("malformed command")

// Command is one parsed log line.
type Command struct {
	Kind Kind
	Args []string // tokens after the keyword
	Line int      // 1-based line number in the log, 0 if unknown
}

// Parse splits a log line into a command. It reports false for a blank
// line. The keyword is not checked here; unknown keywords are the
// dispatcher's concern.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Kind: Kind(fields[0]), Args: fields[1:]}, true
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Kind)
	}
	return string(c.Kind) + " " + strings.Join(c.Args, " ")
}

// arg returns the i-th argument or an ErrMalformed naming it.
func (c Command) arg(i int, name string) (string, error) {
	if i >= len(c.Args) {
		return "", fmt.Errorf("%w: %s: missing %s", ErrMalformed, c.Kind, name)
	}
	return c.Args[i], nil
}

func (c Command) textArg(i int, name string) (string, error) {
	tok, err := c.arg(i, name)
	if err != nil {
		return "", err
	}
	return decodeToken(tok), nil
}

func (c Command) intArg(i int, name string) (int, error) {
	tok, err := c.arg(i, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s %q is not an integer", ErrMalformed, c.Kind, name, tok)
	}
	return n, nil
}

func (c Command) floatArg(i int, name string) (float64, error) {
	tok, err := c.arg(i, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s %q is not a number", ErrMalformed, c.Kind, name, tok)
	}
	return f, nil
}

// decodeToken turns underscores back into spaces.
func decodeToken(tok string) string {
	return strings.ReplaceAll(tok, "_", " ")
}
