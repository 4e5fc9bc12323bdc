// Package abi parses contract interface definitions (JSON ABI and
// human-readable signatures) into raw entries, and computes Keccak-256
// identifiers.
package abi

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Entry kinds.
const (
	EntryFunction = "function"
	EntryEvent    = "event"
)

// Keccak256 hashes a canonical signature.
func Keccak256(sig string) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Selector returns the first four bytes of the Keccak-256 hash of sig.
func Selector(sig string) [4]byte {
	var out [4]byte
	h := Keccak256(sig)
	copy(out[:], h[:4])
	return out
}

// ParsedEntry is a parsed function or event definition. Types are canonical
// type strings; tuples are written as "(t1,t2,...)".
type ParsedEntry struct {
	Kind            string
	Name            string
	Params          []ParsedParam
	Outputs         []ParsedParam
	Anonymous       bool
	StateMutability string
}

// ParsedParam represents a single parameter.
type ParsedParam struct {
	Type    string
	Name    string
	Indexed bool
}

// Canonical returns the canonical signature string (e.g. "Transfer(address,address,uint256)").
func (p *ParsedEntry) Canonical() string {
	types := make([]string, len(p.Params))
	for i, param := range p.Params {
		types[i] = param.Type
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(types, ","))
}

// ParseEventSignature parses a Solidity event signature string.
// Supported formats:
//   - "Transfer(address,address,uint256)"
//   - "Transfer(address indexed from, address indexed to, uint256 value)"
//   - "event Transfer(address indexed from, address indexed to, uint256 value) anonymous"
func ParseEventSignature(sig string) (*ParsedEntry, error) {
	sig = strings.TrimSpace(sig)
	sig = strings.TrimPrefix(sig, "event ")

	anonymous := false
	if rest, ok := strings.CutSuffix(sig, "anonymous"); ok {
		sig = strings.TrimSpace(rest)
		anonymous = true
	}

	name, params, rest, err := parseHead(sig)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("abi: unexpected %q after event parameters in %q", rest, sig)
	}

	return &ParsedEntry{Kind: EntryEvent, Name: name, Params: params, Anonymous: anonymous}, nil
}

// ParseFunctionSignature parses a Solidity function signature string.
// Supported formats:
//   - "transfer(address,uint256)"
//   - "function balanceOf(address owner) view returns (uint256)"
func ParseFunctionSignature(sig string) (*ParsedEntry, error) {
	sig = strings.TrimSpace(sig)
	sig = strings.TrimPrefix(sig, "function ")

	name, params, rest, err := parseHead(sig)
	if err != nil {
		return nil, err
	}

	entry := &ParsedEntry{Kind: EntryFunction, Name: name, Params: params}

	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "returns"):
			outs := strings.TrimSpace(rest[len("returns"):])
			if !strings.HasPrefix(outs, "(") {
				return nil, fmt.Errorf("abi: malformed returns clause in %q", sig)
			}
			end := matchingParen(outs, 0)
			if end < 0 {
				return nil, fmt.Errorf("abi: unbalanced parentheses in %q", sig)
			}
			entry.Outputs, err = parseParamList(outs[1:end], sig)
			if err != nil {
				return nil, err
			}
			rest = strings.TrimSpace(outs[end+1:])
		default:
			word, tail, _ := strings.Cut(rest, " ")
			switch word {
			case "view", "pure", "payable", "nonpayable":
				entry.StateMutability = word
			case "external", "public":
			default:
				return nil, fmt.Errorf("abi: unexpected %q in function signature %q", word, sig)
			}
			rest = strings.TrimSpace(tail)
		}
	}

	return entry, nil
}

// parseHead splits "name(params) rest" into its parts.
func parseHead(sig string) (name string, params []ParsedParam, rest string, err error) {
	parenOpen := strings.IndexByte(sig, '(')
	if parenOpen < 0 {
		return "", nil, "", fmt.Errorf("abi: malformed signature: %q", sig)
	}
	parenClose := matchingParen(sig, parenOpen)
	if parenClose < 0 {
		return "", nil, "", fmt.Errorf("abi: malformed signature: %q", sig)
	}

	name = strings.TrimSpace(sig[:parenOpen])
	if name == "" {
		return "", nil, "", fmt.Errorf("abi: empty name in signature: %q", sig)
	}

	params, err = parseParamList(sig[parenOpen+1:parenClose], sig)
	if err != nil {
		return "", nil, "", err
	}
	return name, params, strings.TrimSpace(sig[parenClose+1:]), nil
}

func parseParamList(s, sig string) ([]ParsedParam, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := splitParams(s)
	params := make([]ParsedParam, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("abi: empty parameter in signature %q", sig)
		}

		p, err := parseParam(part)
		if err != nil {
			return nil, fmt.Errorf("abi: %w in signature %q", err, sig)
		}
		params = append(params, p)
	}

	return params, nil
}

func parseParam(s string) (ParsedParam, error) {
	var p ParsedParam

	// Tuple types may carry component names and spaces; rebuild them canonically.
	if strings.HasPrefix(s, "(") {
		end := matchingParen(s, 0)
		if end < 0 {
			return ParsedParam{}, fmt.Errorf("unbalanced parentheses in %q", s)
		}
		comps, err := parseParamList(s[1:end], s)
		if err != nil {
			return ParsedParam{}, err
		}
		types := make([]string, len(comps))
		for i, c := range comps {
			types[i] = c.Type
		}
		rest := s[end+1:]
		suffixEnd := 0
		for suffixEnd < len(rest) && rest[suffixEnd] != ' ' {
			suffixEnd++
		}
		p.Type = "(" + strings.Join(types, ",") + ")" + rest[:suffixEnd]
		s = rest[suffixEnd:]
	} else {
		tokens := strings.Fields(s)
		p.Type = tokens[0]
		s = strings.TrimPrefix(strings.TrimSpace(s), tokens[0])
	}

	for _, tok := range strings.Fields(s) {
		switch tok {
		case "indexed":
			p.Indexed = true
		case "memory", "calldata", "storage":
		default:
			if p.Name != "" {
				return ParsedParam{}, fmt.Errorf("unexpected token %q", tok)
			}
			p.Name = tok
		}
	}

	return p, nil
}

// splitParams splits a parameter list string, respecting nested parentheses (e.g., tuples).
func splitParams(s string) []string {
	var parts []string
	depth := 0
	start := 0

	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// matchingParen returns the index of the parenthesis closing the one at open,
// or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
