// Package function encodes contract call inputs and decodes call inputs and
// return data against function descriptors.
package function

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/reconcile"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

// SelectorLength is the size of the function identifier prefixed to call data.
const SelectorLength = 4

var (
	// ErrArityMismatch is returned when the value count differs from the declared input count.
	ErrArityMismatch = errors.New("function: arity mismatch")

	// ErrSelectorMismatch is returned when call data starts with another function's selector.
	ErrSelectorMismatch = errors.New("function: selector mismatch")
)

// RepairFunc observes a value whose widths were repaired before encoding.
type RepairFunc func(fn *descriptor.Function, index int, before, after value.Value)

// Option configures a Codec.
type Option func(*Codec)

// WithRepairHook registers f to be called for every repaired input.
func WithRepairHook(f RepairFunc) Option {
	return func(c *Codec) {
		c.onRepair = f
	}
}

// Codec encodes and decodes function calls.
type Codec struct {
	wire       wire.Codec
	reconciler *reconcile.Reconciler
	onRepair   RepairFunc
}

// New returns a Codec over w. A nil w falls back to wire.Eth.
func New(w wire.Codec, opts ...Option) *Codec {
	if w == nil {
		w = wire.NewEth()
	}
	c := &Codec{
		wire:       w,
		reconciler: reconcile.New(w),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodeInput reconciles values against fn's inputs and returns the selector
// followed by the encoded arguments.
func (c *Codec) EncodeInput(fn *descriptor.Function, values []value.Value) ([]byte, error) {
	if len(values) != len(fn.Inputs) {
		return nil, fmt.Errorf("%w: %s takes %d inputs, got %d", ErrArityMismatch, fn.Name, len(fn.Inputs), len(values))
	}

	// The caller's slice is encoded as is unless a value needed repair.
	args := values
	copied := false
	for i, p := range fn.Inputs {
		fixed, repaired, err := c.reconciler.Reconcile(values[i], p.Type)
		if err != nil {
			return nil, fmt.Errorf("function: %s input %d (%s): %w", fn.Name, i, p.Name, err)
		}
		if !repaired {
			continue
		}
		if c.onRepair != nil {
			c.onRepair(fn, i, values[i], fixed)
		}
		if !copied {
			args = append([]value.Value(nil), values...)
			copied = true
		}
		args[i] = fixed
	}

	sel, err := c.wire.Selector(fn)
	if err != nil {
		return nil, fmt.Errorf("function: %s: %w", fn.Name, err)
	}
	body, err := c.wire.Encode(fn.InputTypes(), args)
	if err != nil {
		return nil, fmt.Errorf("function: %s: %w", fn.Name, err)
	}

	out := make([]byte, 0, SelectorLength+len(body))
	out = append(out, sel[:]...)
	return append(out, body...), nil
}

// DecodeInput verifies the selector prefix of call data and decodes the
// arguments that follow it.
func (c *Codec) DecodeInput(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("function: %s: %w: call data is %d bytes, shorter than the selector", fn.Name, wire.ErrDecode, len(data))
	}
	sel, err := c.wire.Selector(fn)
	if err != nil {
		return nil, fmt.Errorf("function: %s: %w", fn.Name, err)
	}
	if !bytes.Equal(sel[:], data[:SelectorLength]) {
		return nil, fmt.Errorf("%w: %s has selector %s, data starts with %s",
			ErrSelectorMismatch, fn.Name, hexutil.Encode(sel[:]), hexutil.Encode(data[:SelectorLength]))
	}
	return c.DecodeArgs(fn, data[SelectorLength:])
}

// DecodeArgs decodes selector-less argument data against fn's inputs.
func (c *Codec) DecodeArgs(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	vals, err := c.wire.Decode(fn.InputTypes(), data)
	if err != nil {
		return nil, fmt.Errorf("function: %s inputs: %w", fn.Name, err)
	}
	return vals, nil
}

// DecodeOutput decodes return data against fn's outputs.
func (c *Codec) DecodeOutput(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	vals, err := c.wire.Decode(fn.OutputTypes(), data)
	if err != nil {
		return nil, fmt.Errorf("function: %s outputs: %w", fn.Name, err)
	}
	return vals, nil
}
