// Package decoder rebuilds named event parameters from raw logs and keeps a
// registry of events keyed by their signature topic.
package decoder

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/value"
)

// Decoder decodes raw event logs into structured data.
type Decoder interface {
	// Decode parses a raw log into a DecodedEvent.
	Decode(log event.Log) (*DecodedEvent, error)

	// Register adds an event ABI signature to the decoder.
	// The signature should be in Solidity format, e.g. "Transfer(address,address,uint256)".
	Register(eventSignature string) error
}

var (
	_ Decoder = (*ABIDecoder)(nil)
	_ Decoder = (*Raw)(nil)
)

// DecodedEvent contains the decoded representation of an event log.
type DecodedEvent struct {
	// Name is the event name (e.g. "Transfer").
	Name string

	// Signature is the canonical event signature (e.g. "Transfer(address,address,uint256)").
	Signature string

	// Event is the descriptor the log was decoded against. Nil for raw events.
	Event *descriptor.Event

	// Params holds one value per declared input, in declaration order.
	Params []value.Named

	// Raw is the original unmodified event log.
	Raw event.Log
}

// Param returns the value of the first parameter called name.
func (e *DecodedEvent) Param(name string) (value.Value, bool) {
	p, ok := lo.Find(e.Params, func(p value.Named) bool { return p.Name == name })
	return p.Value, ok
}

// String returns a human-readable representation of the decoded event.
func (e *DecodedEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(", e.Name)
	for i, p := range e.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", paramName(p, i), formatValue(p.Value))
	}
	b.WriteString(")")

	fmt.Fprintf(&b, " block=%d tx=%s", e.Raw.BlockNumber, e.Raw.TxHash.Hex())
	return b.String()
}

// JSON returns the decoded event as a JSON-serializable map.
// Addresses are checksummed hex, integers become decimal strings, and byte
// values become "0x"-prefixed hex strings.
func (e *DecodedEvent) JSON() map[string]interface{} {
	m := map[string]interface{}{
		"event":       e.Name,
		"signature":   e.Signature,
		"blockNumber": e.Raw.BlockNumber,
		"txHash":      e.Raw.TxHash.Hex(),
		"logIndex":    e.Raw.LogIndex,
		"address":     e.Raw.Address.Hex(),
		"removed":     e.Raw.Removed,
	}

	params := make(map[string]interface{}, len(e.Params))
	indexed := make(map[string]interface{})
	data := make(map[string]interface{})
	for i, p := range e.Params {
		name := paramName(p, i)
		v := jsonValue(p.Value)
		params[name] = v
		if e.Event == nil || i >= len(e.Event.Inputs) {
			continue
		}
		if e.Event.Inputs[i].Indexed {
			indexed[name] = v
		} else {
			data[name] = v
		}
	}
	m["params"] = params
	m["indexed"] = indexed
	m["data"] = data

	return m
}

// MarshalJSON implements json.Marshaler.
func (e *DecodedEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.JSON())
}

// Bind decodes the event parameters into a user-defined struct.
// Fields are matched by the "abi" struct tag, or by case-insensitive field name.
// Supported field types: value.Value, common.Address, common.Hash, *big.Int,
// bool, string, uint8–uint64, int8–int64, []byte and byte arrays.
//
// Example:
//
//	type TransferEvent struct {
//	    From  common.Address `abi:"from"`
//	    To    common.Address `abi:"to"`
//	    Value *big.Int       `abi:"value"`
//	}
//
//	var evt TransferEvent
//	decoded.Bind(&evt)
func (e *DecodedEvent) Bind(out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decoder: Bind requires a non-nil pointer to struct")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("decoder: Bind requires a pointer to struct, got %s", rv.Kind())
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		paramName := field.Tag.Get("abi")
		if paramName == "-" {
			continue
		}
		if paramName == "" {
			paramName = field.Name
		}

		val, ok := e.Param(paramName)
		if !ok {
			val, ok = e.findParamInsensitive(paramName)
		}
		if !ok {
			continue
		}

		if err := assignValue(rv.Field(i), val); err != nil {
			return fmt.Errorf("decoder: field %s: %w", field.Name, err)
		}
	}

	return nil
}

func (e *DecodedEvent) findParamInsensitive(name string) (value.Value, bool) {
	p, ok := lo.Find(e.Params, func(p value.Named) bool { return strings.EqualFold(p.Name, name) })
	return p.Value, ok
}

func paramName(p value.Named, i int) string {
	if p.Name == "" {
		return fmt.Sprintf("arg%d", i)
	}
	return p.Name
}

// formatValue returns a human-readable string for a decoded parameter value.
func formatValue(v value.Value) string {
	switch v.Kind() {
	case abitype.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case abitype.KindInt, abitype.KindUint:
		return v.AsBig().String()
	case abitype.KindString:
		return v.AsString()
	case abitype.KindArray, abitype.KindFixedArray:
		return "[" + strings.Join(lo.Map(v.Elems(), func(e value.Value, _ int) string { return formatValue(e) }), ", ") + "]"
	case abitype.KindTuple:
		return "(" + strings.Join(lo.Map(v.Elems(), func(e value.Value, _ int) string { return formatValue(e) }), ", ") + ")"
	}
	return fmt.Sprint(jsonValue(v))
}

// jsonValue converts a decoded parameter value to a JSON-friendly representation.
func jsonValue(v value.Value) interface{} {
	switch v.Kind() {
	case abitype.KindBool:
		return v.AsBool()
	case abitype.KindInt, abitype.KindUint:
		return v.AsBig().String()
	case abitype.KindFixedBytes:
		return hexutil.Encode(v.FixedBytesPayload())
	case abitype.KindAddress:
		return v.AsAddress().Hex()
	case abitype.KindFunction:
		fn := v.AsFunction()
		return hexutil.Encode(fn[:])
	case abitype.KindBytes:
		return hexutil.Encode(v.AsBytes())
	case abitype.KindString:
		return v.AsString()
	case abitype.KindArray, abitype.KindFixedArray, abitype.KindTuple:
		return lo.Map(v.Elems(), func(e value.Value, _ int) interface{} { return jsonValue(e) })
	}
	return nil
}

var (
	valueType   = reflect.TypeOf(value.Value{})
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	addressType = reflect.TypeOf(common.Address{})
)

func assignValue(fv reflect.Value, v value.Value) error {
	if fv.Type() == valueType {
		fv.Set(reflect.ValueOf(v))
		return nil
	}

	switch v.Kind() {
	case abitype.KindAddress:
		if fv.Type() == addressType {
			fv.Set(reflect.ValueOf(v.AsAddress()))
			return nil
		}

	case abitype.KindInt, abitype.KindUint:
		n := v.AsBig()
		switch fv.Kind() {
		case reflect.Ptr:
			if fv.Type() == bigIntType {
				fv.Set(reflect.ValueOf(n))
				return nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if !n.IsUint64() || fv.OverflowUint(n.Uint64()) {
				return fmt.Errorf("value %s overflows %s", n, fv.Type())
			}
			fv.SetUint(n.Uint64())
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !n.IsInt64() || fv.OverflowInt(n.Int64()) {
				return fmt.Errorf("value %s overflows %s", n, fv.Type())
			}
			fv.SetInt(n.Int64())
			return nil
		}

	case abitype.KindBool:
		if fv.Kind() == reflect.Bool {
			fv.SetBool(v.AsBool())
			return nil
		}

	case abitype.KindFixedBytes, abitype.KindFunction:
		var payload []byte
		if v.Kind() == abitype.KindFunction {
			fn := v.AsFunction()
			payload = fn[:]
		} else {
			payload = v.FixedBytesPayload()
		}
		if isByteSlice(fv) {
			fv.SetBytes(payload)
			return nil
		}
		if fv.Kind() == reflect.Array && fv.Type().Elem().Kind() == reflect.Uint8 && fv.Len() >= len(payload) {
			fv.Set(reflect.Zero(fv.Type()))
			reflect.Copy(fv, reflect.ValueOf(payload))
			return nil
		}

	case abitype.KindBytes:
		if isByteSlice(fv) {
			fv.SetBytes(v.AsBytes())
			return nil
		}
	}

	if fv.Kind() == reflect.String {
		fv.SetString(formatValue(v))
		return nil
	}

	return fmt.Errorf("cannot assign %s to %s", v.TypeName(), fv.Type())
}

func isByteSlice(fv reflect.Value) bool {
	return fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Uint8
}
