package snapshot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokLParen
	tokRParen
	tokComma
	tokAssign
	tokMinus
	tokPlus
)

type token struct {
	kind tokenKind
	text string // identifier name, literal source, or decoded string
	pos  int
}

// lex splits a line into tokens. A '#' outside a string ends the line.
func lex(line string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '#':
			i = len(line)
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		case r == '=':
			toks = append(toks, token{kind: tokAssign, pos: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case r == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case r == '\'' || r == '"':
			s, n, err := lexString(line[i:])
			if err != nil {
				return nil, fmt.Errorf("col %d: %w", i, err)
			}
			toks = append(toks, token{kind: tokString, text: s, pos: i})
			i += n
		case r == '.' || (r >= '0' && r <= '9'):
			tok, n, err := lexNumber(line[i:])
			if err != nil {
				return nil, fmt.Errorf("col %d: %w", i, err)
			}
			tok.pos = i
			toks = append(toks, tok)
			i += n
		case r == '_' || unicode.IsLetter(r):
			j := i + size
			for j < len(line) {
				r2, s2 := utf8.DecodeRuneInString(line[j:])
				if r2 != '_' && !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
					break
				}
				j += s2
			}
			word := line[i:j]
			if j < len(line) && (line[j] == '\'' || line[j] == '"') {
				// string prefixes (r'', b'', f'', ...) are not supported
				return nil, fmt.Errorf("col %d: unsupported string prefix %q", i, word)
			}
			toks = append(toks, token{kind: tokIdent, text: word, pos: i})
			i = j
		default:
			return nil, fmt.Errorf("col %d: unexpected character %q", i, r)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(line)})
	return toks, nil
}

// lexString decodes a single- or double-quoted literal at the start of s
// and returns the decoded text and the number of bytes consumed.
func lexString(s string) (string, int, error) {
	quote := s[0]
	if strings.HasPrefix(s, strings.Repeat(string(quote), 3)) {
		return "", 0, fmt.Errorf("triple-quoted strings are not supported")
	}

	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("unterminated string")
			}
			n, err := decodeEscape(&b, s[i:])
			if err != nil {
				return "", 0, err
			}
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("unterminated string")
}

// decodeEscape handles the escape sequence at the start of s (s[0] is the
// backslash). Unknown escapes are kept verbatim, backslash included.
func decodeEscape(b *strings.Builder, s string) (int, error) {
	switch s[1] {
	case '\\', '\'', '"':
		b.WriteByte(s[1])
		return 2, nil
	case 'n':
		b.WriteByte('\n')
		return 2, nil
	case 't':
		b.WriteByte('\t')
		return 2, nil
	case 'r':
		b.WriteByte('\r')
		return 2, nil
	case '0':
		b.WriteByte(0)
		return 2, nil
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[s[1]]
		if len(s) < 2+width {
			return 0, fmt.Errorf("truncated \\%c escape", s[1])
		}
		code, err := strconv.ParseUint(s[2:2+width], 16, 32)
		if err != nil || code > unicode.MaxRune {
			return 0, fmt.Errorf("invalid \\%c escape", s[1])
		}
		b.WriteRune(rune(code))
		return 2 + width, nil
	default:
		b.WriteByte('\\')
		return 1, nil
	}
}

// lexNumber scans an integer or float literal.
func lexNumber(s string) (token, int, error) {
	i := 0
	isFloat := false
	digits := func() {
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '_') {
			i++
		}
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
		strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O") ||
		strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") {
		i = 2
		for i < len(s) && (isHexDigit(s[i]) || s[i] == '_') {
			i++
		}
	} else {
		digits()
		if i < len(s) && s[i] == '.' {
			isFloat = true
			i++
			digits()
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			isFloat = true
			i++
			if i < len(s) && (s[i] == '+' || s[i] == '-') {
				i++
			}
			digits()
		}
	}

	text := s[:i]
	if i < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[i:]); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return token{}, 0, fmt.Errorf("invalid number literal %q", s[:i+1])
		}
	}

	if isFloat {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64); err != nil {
			return token{}, 0, fmt.Errorf("invalid float literal %q", text)
		}
		return token{kind: tokFloat, text: text}, i, nil
	}

	// Decimal literals with leading zeros are only valid when all zeros.
	if len(text) > 1 && text[0] == '0' && text[1] >= '0' && text[1] <= '9' &&
		strings.Trim(text, "0_") != "" {
		return token{}, 0, fmt.Errorf("leading zeros in decimal literal %q", text)
	}
	if _, err := strconv.ParseInt(text, 0, 64); err != nil {
		return token{}, 0, fmt.Errorf("invalid integer literal %q", text)
	}
	return token{kind: tokInt, text: text}, i, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
