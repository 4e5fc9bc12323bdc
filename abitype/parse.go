package abitype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned by Parse for malformed type strings.
var ErrSyntax = errors.New("abitype: invalid type")

// Parse parses a canonical type string such as "uint256", "bytes32[]" or
// "(address,(bool,string)[2])". The aliases "int" and "uint" resolve to their
// 256-bit forms.
func Parse(s string) (Type, error) {
	p := parser{src: strings.TrimSpace(s)}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(p.src) {
		return Type{}, fmt.Errorf("%w %q: trailing input at offset %d", ErrSyntax, s, p.pos)
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrSyntax, p.src, fmt.Sprintf(format, args...))
}

func (p *parser) parseType() (Type, error) {
	var (
		t   Type
		err error
	)
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		t, err = p.parseTuple()
	} else {
		t, err = p.parseElementary()
	}
	if err != nil {
		return Type{}, err
	}

	for p.pos < len(p.src) && p.src[p.pos] == '[' {
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return Type{}, p.errorf("unterminated array suffix")
		}
		inner := p.src[p.pos+1 : p.pos+end]
		p.pos += end + 1
		if inner == "" {
			t = Array(t)
			continue
		}
		n, err := strconv.Atoi(inner)
		if err != nil || n < 0 {
			return Type{}, p.errorf("invalid array length %q", inner)
		}
		t = FixedArray(t, n)
	}
	return t, nil
}

func (p *parser) parseTuple() (Type, error) {
	p.pos++ // '('
	var elems []Type
	if p.pos < len(p.src) && p.src[p.pos] == ')' {
		p.pos++
		return Tuple(), nil
	}
	for {
		e, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		elems = append(elems, e)
		if p.pos >= len(p.src) {
			return Type{}, p.errorf("unterminated tuple")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return Tuple(elems...), nil
		default:
			return Type{}, p.errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *parser) parseElementary() (Type, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	switch name {
	case "":
		return Type{}, p.errorf("expected type at offset %d", start)
	case "bool":
		return Bool(), nil
	case "address":
		return Address(), nil
	case "function":
		return Function(), nil
	case "bytes":
		return Bytes(), nil
	case "string":
		return String(), nil
	case "int":
		return Int(256), nil
	case "uint":
		return Uint(256), nil
	}

	switch {
	case strings.HasPrefix(name, "uint"):
		bits, err := p.width(name, "uint")
		if err != nil {
			return Type{}, err
		}
		return Uint(bits), nil
	case strings.HasPrefix(name, "int"):
		bits, err := p.width(name, "int")
		if err != nil {
			return Type{}, err
		}
		return Int(bits), nil
	case strings.HasPrefix(name, "bytes"):
		n, err := strconv.Atoi(name[len("bytes"):])
		if err != nil || n < 1 || n > 32 {
			return Type{}, p.errorf("invalid fixed bytes size in %q", name)
		}
		return FixedBytes(n), nil
	}
	return Type{}, p.errorf("unknown type %q", name)
}

func (p *parser) width(name, prefix string) (int, error) {
	bits, err := strconv.Atoi(name[len(prefix):])
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, p.errorf("invalid integer width in %q", name)
	}
	return bits, nil
}

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
