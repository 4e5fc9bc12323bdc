package wire

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/value"
)

// Eth is the Codec backed by go-ethereum's accounts/abi package.
type Eth struct{}

var _ Codec = Eth{}

// NewEth returns the go-ethereum backed codec.
func NewEth() Eth {
	return Eth{}
}

// Encode implements Encoder.
func (Eth) Encode(types []abitype.Type, values []value.Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrEncode, len(values), len(types))
	}
	args, err := arguments(types)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	goValues := make([]interface{}, len(values))
	for i, v := range values {
		rv, err := toGo(v, args[i].Type, true)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %w", ErrEncode, i, err)
		}
		goValues[i] = rv.Interface()
	}

	out, err := args.Pack(goValues...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return out, nil
}

// EncodeValue implements Encoder.
func (Eth) EncodeValue(v value.Value, layout abitype.Type) ([]byte, error) {
	shape := shapeOf(v, layout)
	args, err := arguments([]abitype.Type{shape})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	rv, err := toGo(v, args[0].Type, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	out, err := args.Pack(rv.Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return out, nil
}

// Selector implements Encoder.
func (Eth) Selector(fn *descriptor.Function) ([4]byte, error) {
	var sel [4]byte
	inputs, err := arguments(fn.InputTypes())
	if err != nil {
		return sel, fmt.Errorf("%w: %s: %w", ErrEncode, fn.Name, err)
	}
	m := abi.NewMethod(fn.Name, fn.Name, abi.Function, fn.StateMutability, false, false, inputs, nil)
	copy(sel[:], m.ID)
	return sel, nil
}

// Decode implements Decoder.
func (Eth) Decode(types []abitype.Type, data []byte) ([]value.Value, error) {
	args, err := arguments(types)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	unpacked, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(unpacked) != len(types) {
		return nil, fmt.Errorf("%w: unpacked %d values for %d types", ErrDecode, len(unpacked), len(types))
	}

	out := make([]value.Value, len(unpacked))
	for i, u := range unpacked {
		v, err := fromGo(reflect.ValueOf(u), types[i])
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %w", ErrDecode, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// DecodeLog implements Decoder. For non-anonymous events the first topic must
// equal the event ID. Indexed reference types (strings, bytes, arrays and
// tuples) are stored as the Keccak-256 hash of their encoding and decode to
// that hash as a bytes32 value.
func (e Eth) DecodeLog(ev *descriptor.Event, topics []common.Hash, data []byte) ([]value.Value, []value.Value, error) {
	if !ev.Anonymous {
		if len(topics) == 0 {
			return nil, nil, fmt.Errorf("%w: %s: missing signature topic", ErrDecode, ev.Name)
		}
		id, err := EventID(ev)
		if err != nil {
			return nil, nil, err
		}
		if topics[0] != id {
			return nil, nil, fmt.Errorf("%w: %s: event signature mismatch: expected %s, got %s",
				ErrDecode, ev.Name, id.Hex(), topics[0].Hex())
		}
		topics = topics[1:]
	}

	indexedParams := ev.Indexed()
	if len(topics) != len(indexedParams) {
		return nil, nil, fmt.Errorf("%w: %s: expected %d indexed topics, got %d",
			ErrDecode, ev.Name, len(indexedParams), len(topics))
	}

	indexed := make([]value.Value, len(indexedParams))
	for i, p := range indexedParams {
		v, err := e.decodeTopic(p.Type, topics[i])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: topic %d: %w", ev.Name, i+1, err)
		}
		indexed[i] = v
	}

	body, err := e.Decode(descriptor.Types(ev.NonIndexed()), data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: data: %w", ev.Name, err)
	}
	return indexed, body, nil
}

func (e Eth) decodeTopic(t abitype.Type, topic common.Hash) (value.Value, error) {
	if !t.IsValueType() {
		return value.FixedBytes(topic, value.WordSize), nil
	}
	vals, err := e.Decode([]abitype.Type{t}, topic[:])
	if err != nil {
		return value.Value{}, err
	}
	return vals[0], nil
}

// EventID returns the first topic go-ethereum computes for ev.
func EventID(ev *descriptor.Event) (common.Hash, error) {
	inputs, err := arguments(ev.InputTypes())
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %s: %w", ErrDecode, ev.Name, err)
	}
	for i, p := range ev.Inputs {
		inputs[i].Name = p.Name
		inputs[i].Indexed = p.Indexed
	}
	return abi.NewEvent(ev.Name, ev.Name, ev.Anonymous, inputs).ID, nil
}
