// Package descriptor defines immutable function and event interface
// descriptors and loads them from JSON ABI or human-readable signatures.
package descriptor

import (
	"github.com/samber/lo"

	"github.com/hedeqiang/dynabi/abitype"
	abiutil "github.com/hedeqiang/dynabi/internal/abi"
)

// Param is a named, typed parameter. Indexed is only meaningful for events.
type Param struct {
	Name    string
	Type    abitype.Type
	Indexed bool
}

// Function describes a contract function.
type Function struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability string
}

// Event describes a contract event.
type Event struct {
	Name      string
	Inputs    []Param
	Anonymous bool
}

// NewFunction builds a Function. The parameter slices are copied.
func NewFunction(name string, inputs, outputs []Param) *Function {
	return &Function{
		Name:    name,
		Inputs:  append([]Param(nil), inputs...),
		Outputs: append([]Param(nil), outputs...),
	}
}

// NewEvent builds an Event. The parameter slice is copied.
func NewEvent(name string, inputs []Param, anonymous bool) *Event {
	return &Event{
		Name:      name,
		Inputs:    append([]Param(nil), inputs...),
		Anonymous: anonymous,
	}
}

// Types projects params onto their types.
func Types(params []Param) []abitype.Type {
	return lo.Map(params, func(p Param, _ int) abitype.Type { return p.Type })
}

// InputTypes returns the declared input types in order.
func (f *Function) InputTypes() []abitype.Type { return Types(f.Inputs) }

// OutputTypes returns the declared output types in order.
func (f *Function) OutputTypes() []abitype.Type { return Types(f.Outputs) }

// Canonical returns the selector signature, e.g. "transfer(address,uint256)".
func (f *Function) Canonical() string {
	return abitype.Signature(f.Name, f.InputTypes(), nil)
}

// SignatureCompat returns "name(inputs)" or "name(inputs):(outputs)".
func (f *Function) SignatureCompat() string {
	return abitype.Signature(f.Name, f.InputTypes(), f.OutputTypes())
}

// Selector returns the first four bytes of the Keccak-256 hash of Canonical.
func (f *Function) Selector() [4]byte {
	return abiutil.Selector(f.Canonical())
}

// InputTypes returns the declared input types in order.
func (e *Event) InputTypes() []abitype.Type { return Types(e.Inputs) }

// Canonical returns the event signature, e.g. "Transfer(address,address,uint256)".
func (e *Event) Canonical() string {
	return abitype.Signature(e.Name, e.InputTypes(), nil)
}

// ID returns the Keccak-256 hash of Canonical, which non-anonymous events
// emit as their first topic.
func (e *Event) ID() [32]byte {
	return abiutil.Keccak256(e.Canonical())
}

// Indexed returns the parameters stored in topics, in declaration order.
func (e *Event) Indexed() []Param {
	return lo.Filter(e.Inputs, func(p Param, _ int) bool { return p.Indexed })
}

// NonIndexed returns the parameters stored in the data payload, in
// declaration order.
func (e *Event) NonIndexed() []Param {
	return lo.Filter(e.Inputs, func(p Param, _ int) bool { return !p.Indexed })
}

// TopicCount returns the number of topics a log of this event carries.
func (e *Event) TopicCount() int {
	n := len(e.Indexed())
	if !e.Anonymous {
		n++
	}
	return n
}
