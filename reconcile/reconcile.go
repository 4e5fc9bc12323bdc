// Package reconcile checks values against declared types and repairs values
// whose observed widths are narrower than the type declares.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

// ErrTypeMismatch is returned when a value is structurally incompatible with a type.
var ErrTypeMismatch = errors.New("reconcile: type mismatch")

// TypeMismatchError describes an incompatible value. It wraps ErrTypeMismatch.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("reconcile: type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Reconciler repairs width mismatches through a round trip on the wire codec.
type Reconciler struct {
	codec wire.Codec
}

// New returns a Reconciler using codec. A nil codec falls back to wire.Eth.
func New(codec wire.Codec) *Reconciler {
	if codec == nil {
		codec = wire.NewEth()
	}
	return &Reconciler{codec: codec}
}

// Reconcile returns v when it already matches t exactly. Otherwise v must be
// structurally compatible with t; it is encoded at its own widths and decoded
// back as t, and the repaired value is returned with repaired set.
//
// The repaired value never aliases v.
func (r *Reconciler) Reconcile(v value.Value, t abitype.Type) (out value.Value, repaired bool, err error) {
	if Matches(v, t) {
		return v, false, nil
	}
	if !TypeCheck(v, t) {
		return value.Value{}, false, &TypeMismatchError{Expected: t.String(), Actual: v.TypeName()}
	}

	data, err := r.codec.EncodeValue(v, t)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("reconcile: %s: %w", t, err)
	}
	vals, err := r.codec.Decode([]abitype.Type{t}, data)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("reconcile: %s: %w", t, err)
	}
	if len(vals) != 1 {
		return value.Value{}, false, fmt.Errorf("reconcile: %s: %w: decoded %d values", t, wire.ErrDecode, len(vals))
	}
	return vals[0], true, nil
}

// Matches reports whether v satisfies t exactly, observed widths included.
func Matches(v value.Value, t abitype.Type) bool {
	return check(v, t, true)
}

// TypeCheck reports whether v is structurally compatible with t: kinds agree
// and every observed width is at most the declared width.
func TypeCheck(v value.Value, t abitype.Type) bool {
	return check(v, t, false)
}

func check(v value.Value, t abitype.Type, exact bool) bool {
	if v.Kind() != t.Kind() {
		return false
	}

	switch t.Kind() {
	case abitype.KindInt, abitype.KindUint, abitype.KindFixedBytes:
		if exact {
			return v.Width() == t.Size()
		}
		return v.Width() <= t.Size()

	case abitype.KindFixedArray:
		if v.Len() != t.Size() {
			return false
		}
		return checkElems(v, t.Elem(), exact)

	case abitype.KindArray:
		return checkElems(v, t.Elem(), exact)

	case abitype.KindTuple:
		if v.Len() != t.NumElems() {
			return false
		}
		for i := 0; i < v.Len(); i++ {
			if !check(v.Index(i), t.ElemAt(i), exact) {
				return false
			}
		}
		return true
	}
	return true
}

func checkElems(v value.Value, elem abitype.Type, exact bool) bool {
	for i := 0; i < v.Len(); i++ {
		if !check(v.Index(i), elem, exact) {
			return false
		}
	}
	return true
}
