package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparseable marks a line the loader skips: a syntax error or a name
// that is not one of the known entity types.
var ErrUnparseable = errors.New("unparseable snapshot line")

// call is a parsed constructor expression.
type call struct {
	name string
	args []arg
}

// arg is one argument. keyword is empty for positional arguments.
// value is an int64, float64, bool, string, nil for None, or one of the
// deferred failures below.
type arg struct {
	keyword string
	value   any
}

// undefinedName is an argument naming an unknown identifier. Like a bad
// operand it only fails when the call is evaluated, so the callee name is
// checked first.
type undefinedName struct {
	name string
}

// badOperand is a unary sign applied to a string or None.
type badOperand struct {
	typeName string
}

// unparseable wraps a syntax problem as ErrUnparseable.
func unparseable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnparseable, fmt.Sprintf(format, args...))
}

// parseLine parses one snapshot line into a call.
func parseLine(line string) (call, error) {
	toks, err := lex(line)
	if err != nil {
		return call{}, unparseable("%v", err)
	}
	p := &parser{toks: toks}
	return p.parseCall()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, unparseable("col %d: expected %s", t.pos, what)
	}
	return t, nil
}

// parseCall parses NAME '(' [arg {',' arg} [',']] ')' EOF.
func (p *parser) parseCall() (call, error) {
	name, err := p.expect(tokIdent, "type name")
	if err != nil {
		return call{}, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return call{}, err
	}

	c := call{name: name.text}
	seen := make(map[string]bool)
	for p.peek().kind != tokRParen {
		a, err := p.parseArg()
		if err != nil {
			return call{}, err
		}
		if a.keyword == "" && len(seen) > 0 {
			return call{}, unparseable("positional argument follows keyword argument")
		}
		if a.keyword != "" {
			if seen[a.keyword] {
				return call{}, unparseable("keyword argument repeated: %s", a.keyword)
			}
			seen[a.keyword] = true
		}
		c.args = append(c.args, a)

		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		if p.peek().kind != tokRParen {
			return call{}, unparseable("col %d: expected ',' or ')'", p.peek().pos)
		}
	}
	p.next()

	if t := p.peek(); t.kind != tokEOF {
		return call{}, unparseable("col %d: trailing input", t.pos)
	}
	return c, nil
}

// parseArg parses [NAME '='] value.
func (p *parser) parseArg() (arg, error) {
	if p.peek().kind == tokIdent && p.toks[p.pos+1].kind == tokAssign {
		kw := p.next()
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return arg{}, err
		}
		return arg{keyword: kw.text, value: v}, nil
	}
	v, err := p.parseValue()
	if err != nil {
		return arg{}, err
	}
	return arg{value: v}, nil
}

// parseValue parses a literal with any number of leading unary signs.
// A sign applied to True or False yields an integer; applied to a string or
// None it is an argument error.
func (p *parser) parseValue() (any, error) {
	negate := false
	signed := false
	for p.peek().kind == tokMinus || p.peek().kind == tokPlus {
		if p.next().kind == tokMinus {
			negate = !negate
		}
		signed = true
	}

	t := p.next()
	var v any
	switch t.kind {
	case tokInt:
		n, err := strconv.ParseInt(t.text, 0, 64)
		if err != nil {
			return nil, unparseable("invalid integer %q", t.text)
		}
		v = n
	case tokFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(t.text, "_", ""), 64)
		if err != nil {
			return nil, unparseable("invalid float %q", t.text)
		}
		v = f
	case tokString:
		v = t.text
	case tokIdent:
		switch t.text {
		case "True":
			v = true
		case "False":
			v = false
		case "None":
			v = nil
		default:
			v = undefinedName{name: t.text}
		}
	default:
		return nil, unparseable("col %d: expected a value", t.pos)
	}

	if !signed {
		return v, nil
	}
	if _, ok := v.(undefinedName); ok {
		return v, nil
	}
	switch val := v.(type) {
	case int64:
		if negate {
			return -val, nil
		}
		return val, nil
	case float64:
		if negate {
			return -val, nil
		}
		return val, nil
	case bool:
		n := int64(0)
		if val {
			n = 1
		}
		if negate {
			n = -n
		}
		return n, nil
	default:
		return badOperand{typeName: pyTypeName(v)}, nil
	}
}
