package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/value"
)

// parseArgs parses one command line argument per type.
func parseArgs(types []abitype.Type, args []string) ([]value.Value, error) {
	if len(args) != len(types) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(types), len(args))
	}
	out := make([]value.Value, len(args))
	for i, s := range args {
		val, err := parseArg(types[i], s)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// parseArg parses s as a value of type t. Integers accept decimal or 0x
// hex, byte types take 0x hex, and arrays and tuples take a JSON array
// whose elements follow the same rules (strings may be quoted or bare).
//
// Integers are built at the declared width; reconciliation only matters for
// values coming from code.
func parseArg(t abitype.Type, s string) (value.Value, error) {
	if t.Kind() != abitype.KindString {
		s = strings.TrimSpace(s)
	}

	switch t.Kind() {
	case abitype.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid bool %q", s)
		}
		return value.Bool(b), nil

	case abitype.KindInt, abitype.KindUint:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return value.Value{}, fmt.Errorf("invalid integer %q", s)
		}
		if t.Kind() == abitype.KindInt {
			return value.Int(n, t.Size()), nil
		}
		if n.Sign() < 0 {
			return value.Value{}, fmt.Errorf("negative value %q for %s", s, t)
		}
		return value.Uint(n, t.Size()), nil

	case abitype.KindAddress:
		if !common.IsHexAddress(s) {
			return value.Value{}, fmt.Errorf("invalid address %q", s)
		}
		return value.Address(common.HexToAddress(s)), nil

	case abitype.KindFixedBytes:
		b, err := hexutil.Decode(s)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid %s %q: %w", t, s, err)
		}
		if len(b) != t.Size() {
			return value.Value{}, fmt.Errorf("%s takes %d bytes, got %d", t, t.Size(), len(b))
		}
		return value.FixedBytesFromSlice(b)

	case abitype.KindFunction:
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != 24 {
			return value.Value{}, fmt.Errorf("invalid function %q: want 24 hex bytes", s)
		}
		var f [24]byte
		copy(f[:], b)
		return value.Function(f), nil

	case abitype.KindBytes:
		b, err := hexutil.Decode(s)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid bytes %q: %w", s, err)
		}
		return value.Bytes(b), nil

	case abitype.KindString:
		return value.String(s), nil

	case abitype.KindArray, abitype.KindFixedArray:
		parts, err := splitJSON(s)
		if err != nil {
			return value.Value{}, err
		}
		if t.Kind() == abitype.KindFixedArray && len(parts) != t.Size() {
			return value.Value{}, fmt.Errorf("%s takes %d elements, got %d", t, t.Size(), len(parts))
		}
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			if elems[i], err = parseArg(t.Elem(), p); err != nil {
				return value.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
		}
		if t.Kind() == abitype.KindFixedArray {
			return value.FixedArray(elems...), nil
		}
		return value.Array(elems...), nil

	case abitype.KindTuple:
		parts, err := splitJSON(s)
		if err != nil {
			return value.Value{}, err
		}
		if len(parts) != t.NumElems() {
			return value.Value{}, fmt.Errorf("%s takes %d components, got %d", t, t.NumElems(), len(parts))
		}
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			if elems[i], err = parseArg(t.ElemAt(i), p); err != nil {
				return value.Value{}, fmt.Errorf("component %d: %w", i, err)
			}
		}
		return value.Tuple(elems...), nil
	}
	return value.Value{}, fmt.Errorf("unsupported type %s", t)
}

// splitJSON splits a JSON array into the text of its elements. String
// elements are unquoted; everything else is kept verbatim.
func splitJSON(s string) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON array %q: %w", s, err)
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		var str string
		if err := json.Unmarshal(r, &str); err == nil {
			out[i] = str
			continue
		}
		out[i] = string(r)
	}
	return out, nil
}
