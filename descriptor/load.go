package descriptor

import (
	"errors"
	"fmt"

	"github.com/hedeqiang/dynabi/abitype"
	abiutil "github.com/hedeqiang/dynabi/internal/abi"
)

// ErrInvalidABI is returned when an interface definition cannot be parsed.
var ErrInvalidABI = errors.New("descriptor: invalid ABI")

// ABI is the set of functions and events of one contract interface, in the
// order they were declared.
type ABI struct {
	Functions []*Function
	Events    []*Event
}

// Function returns the first function whose name or canonical signature
// equals key.
func (a *ABI) Function(key string) (*Function, bool) {
	for _, f := range a.Functions {
		if f.Name == key || f.Canonical() == key {
			return f, true
		}
	}
	return nil, false
}

// Event returns the first event whose name or canonical signature equals key.
func (a *ABI) Event(key string) (*Event, bool) {
	for _, e := range a.Events {
		if e.Name == key || e.Canonical() == key {
			return e, true
		}
	}
	return nil, false
}

// EventByID returns the non-anonymous event whose ID equals topic0.
func (a *ABI) EventByID(topic0 [32]byte) (*Event, bool) {
	for _, e := range a.Events {
		if !e.Anonymous && e.ID() == topic0 {
			return e, true
		}
	}
	return nil, false
}

// ParseJSON loads all functions and events of a standard JSON ABI.
func ParseJSON(data []byte) (*ABI, error) {
	entries, err := abiutil.ParseJSONABI(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidABI, err)
	}

	out := &ABI{}
	for _, entry := range entries {
		switch entry.Kind {
		case abiutil.EntryFunction:
			f, err := functionFromParsed(entry)
			if err != nil {
				return nil, err
			}
			out.Functions = append(out.Functions, f)
		case abiutil.EntryEvent:
			e, err := eventFromParsed(entry)
			if err != nil {
				return nil, err
			}
			out.Events = append(out.Events, e)
		}
	}
	return out, nil
}

// ParseJSONEvent loads a single JSON ABI event entry.
func ParseJSONEvent(data []byte) (*Event, error) {
	entry, err := abiutil.ParseJSONABIEntry(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidABI, err)
	}
	if entry.Kind != abiutil.EntryEvent {
		return nil, fmt.Errorf("%w: expected an event entry, got %s %q", ErrInvalidABI, entry.Kind, entry.Name)
	}
	return eventFromParsed(entry)
}

// ParseEvent parses a human-readable event signature such as
// "Transfer(address indexed from, address indexed to, uint256 value)".
func ParseEvent(sig string) (*Event, error) {
	entry, err := abiutil.ParseEventSignature(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidABI, err)
	}
	return eventFromParsed(entry)
}

// ParseFunction parses a human-readable function signature such as
// "balanceOf(address owner) view returns (uint256)".
func ParseFunction(sig string) (*Function, error) {
	entry, err := abiutil.ParseFunctionSignature(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidABI, err)
	}
	return functionFromParsed(entry)
}

func functionFromParsed(entry *abiutil.ParsedEntry) (*Function, error) {
	inputs, err := params(entry.Name, entry.Params)
	if err != nil {
		return nil, err
	}
	outputs, err := params(entry.Name, entry.Outputs)
	if err != nil {
		return nil, err
	}
	f := NewFunction(entry.Name, inputs, outputs)
	f.StateMutability = entry.StateMutability
	return f, nil
}

func eventFromParsed(entry *abiutil.ParsedEntry) (*Event, error) {
	inputs, err := params(entry.Name, entry.Params)
	if err != nil {
		return nil, err
	}
	return NewEvent(entry.Name, inputs, entry.Anonymous), nil
}

func params(owner string, parsed []abiutil.ParsedParam) ([]Param, error) {
	if len(parsed) == 0 {
		return nil, nil
	}
	out := make([]Param, len(parsed))
	for i, p := range parsed {
		t, err := abitype.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s parameter %d: %v", ErrInvalidABI, owner, i, err)
		}
		out[i] = Param{Name: p.Name, Type: t, Indexed: p.Indexed}
	}
	return out, nil
}
