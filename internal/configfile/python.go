// This file contains a parser for the Python literal subset used by
// robotconfig.py: a dict of strings, integers, floats, booleans, None, lists
// and tuples, with comments and trailing commas.

package configfile

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/zclconf/go-cty/cty"
)

// SyntaxError reports a position in a Python literal source.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

type pyParser struct {
	filename string
	src      []rune
	pos      int
	line     int
	col      int
}

// parsePython parses a single Python literal expression into a cty.Value.
// Dicts become objects, lists and tuples become tuples and None becomes a
// dynamic null.
func parsePython(src []byte, filename string) (cty.Value, error) {
	p := &pyParser{filename: filename, src: []rune(string(src)), line: 1, col: 1}

	p.skipSpace()
	if p.eof() {
		return cty.NilVal, p.errorf("empty file, expected a dict literal")
	}
	v, err := p.value()
	if err != nil {
		return cty.NilVal, err
	}
	p.skipSpace()
	if !p.eof() {
		return cty.NilVal, p.errorf("unexpected %q after the top-level value", p.peek())
	}
	return v, nil
}

func (p *pyParser) eof() bool { return p.pos >= len(p.src) }

func (p *pyParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *pyParser) next() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *pyParser) errorf(format string, args ...any) error {
	return &SyntaxError{Filename: p.filename, Line: p.line, Column: p.col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace consumes whitespace, line continuations and comments.
func (p *pyParser) skipSpace() {
	for !p.eof() {
		switch r := p.peek(); {
		case r == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f':
			p.next()
		case r == '\\' && p.continuesLine():
			p.next()
		default:
			return
		}
	}
}

// continuesLine reports whether the backslash at the cursor is an explicit
// line joiner, the only place a bare backslash may appear outside a string.
func (p *pyParser) continuesLine() bool {
	rest := p.src[p.pos+1:]
	return (len(rest) > 0 && rest[0] == '\n') || (len(rest) > 1 && rest[0] == '\r' && rest[1] == '\n')
}

func (p *pyParser) value() (cty.Value, error) {
	switch r := p.peek(); {
	case r == '{':
		return p.dict()
	case r == '[':
		return p.sequence('[', ']')
	case r == '(':
		return p.sequence('(', ')')
	case r == '"' || r == '\'':
		s, err := p.str()
		if err != nil {
			return cty.NilVal, err
		}
		return cty.StringVal(s), nil
	case r == '-' || r == '+' || r == '.' || isDigit(r):
		return p.number()
	case isIdentStart(r):
		return p.keyword()
	default:
		return cty.NilVal, p.errorf("unexpected %q, expected a value", r)
	}
}

func (p *pyParser) dict() (cty.Value, error) {
	p.next() // {
	attrs := make(map[string]cty.Value)
	for {
		p.skipSpace()
		if p.eof() {
			return cty.NilVal, p.errorf("unterminated dict, expected '}'")
		}
		if p.peek() == '}' {
			p.next()
			break
		}

		if r := p.peek(); r != '"' && r != '\'' {
			return cty.NilVal, p.errorf("dict keys must be strings, found %q", r)
		}
		keyLine, keyCol := p.line, p.col
		key, err := p.str()
		if err != nil {
			return cty.NilVal, err
		}
		if _, dup := attrs[key]; dup {
			return cty.NilVal, &SyntaxError{Filename: p.filename, Line: keyLine, Column: keyCol, Msg: fmt.Sprintf("duplicate key %q", key)}
		}

		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return cty.NilVal, p.errorf("expected ':' after key %q", key)
		}
		p.next()
		p.skipSpace()

		val, err := p.value()
		if err != nil {
			return cty.NilVal, err
		}
		attrs[key] = val

		p.skipSpace()
		if p.eof() {
			return cty.NilVal, p.errorf("unterminated dict, expected '}'")
		}
		switch p.peek() {
		case ',':
			p.next()
		case '}':
		default:
			return cty.NilVal, p.errorf("expected ',' or '}' in dict, found %q", p.peek())
		}
	}
	return cty.ObjectVal(attrs), nil
}

func (p *pyParser) sequence(open, close rune) (cty.Value, error) {
	p.next() // open
	var elems []cty.Value
	for {
		p.skipSpace()
		if p.eof() {
			return cty.NilVal, p.errorf("unterminated sequence, expected %q", close)
		}
		if p.peek() == close {
			p.next()
			break
		}

		val, err := p.value()
		if err != nil {
			return cty.NilVal, err
		}
		elems = append(elems, val)

		p.skipSpace()
		if p.eof() {
			return cty.NilVal, p.errorf("unterminated sequence, expected %q", close)
		}
		switch p.peek() {
		case ',':
			p.next()
		case close:
		default:
			return cty.NilVal, p.errorf("expected ',' or %q in sequence, found %q", close, p.peek())
		}
	}
	if len(elems) == 0 {
		return cty.EmptyTupleVal, nil
	}
	return cty.TupleVal(elems), nil
}

func (p *pyParser) str() (string, error) {
	quote := p.next()
	if p.pos+1 < len(p.src) && p.src[p.pos] == quote && p.src[p.pos+1] == quote {
		return "", p.errorf("triple-quoted strings are not supported")
	}

	var b strings.Builder
	for {
		if p.eof() || p.peek() == '\n' {
			return "", p.errorf("unterminated string")
		}
		r := p.next()
		if r == quote {
			return b.String(), nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		switch esc := p.next(); esc {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case 'a':
			b.WriteRune('\a')
		case 'b':
			b.WriteRune('\b')
		case 'f':
			b.WriteRune('\f')
		case 'v':
			b.WriteRune('\v')
		case '\\', '\'', '"':
			b.WriteRune(esc)
		case '\n':
			// escaped newline continues the literal
		case '0', '1', '2', '3', '4', '5', '6', '7':
			digits := string(esc)
			for len(digits) < 3 && !p.eof() && p.peek() >= '0' && p.peek() <= '7' {
				digits += string(p.next())
			}
			n, _ := strconv.ParseUint(digits, 8, 32)
			b.WriteRune(rune(n))
		case 'x', 'u', 'U':
			r, err := p.hexEscape(esc)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			// Python keeps unrecognised escapes verbatim.
			b.WriteRune('\\')
			b.WriteRune(esc)
		}
	}
}

// hexEscape reads the fixed-width hex digits of a \x, \u or \U escape.
func (p *pyParser) hexEscape(kind rune) (rune, error) {
	width := map[rune]int{'x': 2, 'u': 4, 'U': 8}[kind]
	digits := make([]rune, 0, width)
	for len(digits) < width && !p.eof() && isHexDigit(p.peek()) {
		digits = append(digits, p.next())
	}
	if len(digits) != width {
		return 0, p.errorf("truncated \\%c escape, expected %d hex digits", kind, width)
	}
	n, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, p.errorf("invalid \\%c escape %q", kind, string(digits))
	}
	return rune(n), nil
}

func (p *pyParser) number() (cty.Value, error) {
	startLine, startCol := p.line, p.col
	var b strings.Builder
	if r := p.peek(); r == '-' || r == '+' {
		b.WriteRune(p.next())
	}
	for !p.eof() {
		r := p.peek()
		if isHexDigit(r) || r == '.' || r == '_' || r == 'x' || r == 'X' || r == 'o' || r == 'O' {
			b.WriteRune(p.next())
			continue
		}
		if (r == '-' || r == '+') && strings.HasSuffix(strings.ToLower(b.String()), "e") {
			b.WriteRune(p.next())
			continue
		}
		break
	}

	raw := b.String()
	bad := &SyntaxError{Filename: p.filename, Line: startLine, Column: startCol, Msg: fmt.Sprintf("invalid number literal %q", raw)}

	unsigned := strings.TrimLeft(raw, "+-")
	if strings.Contains(raw, "__") || strings.HasPrefix(unsigned, "_") || strings.HasSuffix(raw, "_") {
		return cty.NilVal, bad
	}
	lit := strings.ReplaceAll(raw, "_", "")

	if isInt, base, digits := intLiteral(lit); isInt {
		if base == 10 && hasLeadingZero(digits) {
			return cty.NilVal, &SyntaxError{
				Filename: p.filename, Line: startLine, Column: startCol,
				Msg: fmt.Sprintf("leading zeros in decimal integer literal %q are not permitted, use an 0o prefix for octal", raw),
			}
		}
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return cty.NilVal, bad
		}
		return cty.NumberVal(new(big.Float).SetInt(n)), nil
	}
	f, _, err := big.ParseFloat(lit, 10, 512, big.ToNearestEven)
	if err != nil {
		return cty.NilVal, bad
	}
	return cty.NumberVal(f), nil
}

// hasLeadingZero reports a decimal like 020; a run of zeros such as 00 is
// still a valid literal.
func hasLeadingZero(digits string) bool {
	d := strings.TrimPrefix(digits, "-")
	return len(d) > 1 && d[0] == '0' && strings.Trim(d, "0") != ""
}

// intLiteral recognises decimal, hex, octal and binary integer literals.
func intLiteral(lit string) (bool, int, string) {
	sign := ""
	body := lit
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		sign, body = body[:1], body[1:]
	}
	if sign == "+" {
		sign = ""
	}
	lower := strings.ToLower(body)
	for prefix, base := range map[string]int{"0x": 16, "0o": 8, "0b": 2} {
		if strings.HasPrefix(lower, prefix) {
			return true, base, sign + body[2:]
		}
	}
	if body == "" || strings.ContainsAny(lower, ".e") {
		return false, 0, ""
	}
	return true, 10, sign + body
}

func (p *pyParser) keyword() (cty.Value, error) {
	startLine, startCol := p.line, p.col
	var b strings.Builder
	for !p.eof() && (isIdentStart(p.peek()) || isDigit(p.peek())) {
		b.WriteRune(p.next())
	}
	switch word := b.String(); word {
	case "True":
		return cty.True, nil
	case "False":
		return cty.False, nil
	case "None":
		return cty.NullVal(cty.DynamicPseudoType), nil
	default:
		return cty.NilVal, &SyntaxError{
			Filename: p.filename, Line: startLine, Column: startCol,
			Msg: fmt.Sprintf("unsupported name %q, only True, False and None are allowed", word),
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
