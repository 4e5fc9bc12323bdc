package wire

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/value"
)

var bigType = reflect.TypeOf((*big.Int)(nil))

// toGo builds the Go value go-ethereum packs for t. With exact set, integer
// and fixed-bytes widths must equal the declared width; otherwise they may be
// narrower.
func toGo(v value.Value, t abi.Type, exact bool) (reflect.Value, error) {
	switch t.T {
	case abi.BoolTy:
		if err := expectKind(v, abitype.KindBool, t); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v.AsBool()), nil

	case abi.IntTy, abi.UintTy:
		signed := t.T == abi.IntTy
		want := abitype.KindUint
		if signed {
			want = abitype.KindInt
		}
		if err := expectKind(v, want, t); err != nil {
			return reflect.Value{}, err
		}
		if err := checkWidth(v, t, exact); err != nil {
			return reflect.Value{}, err
		}
		n := v.AsBig()
		if !fits(n, t.Size, signed) {
			return reflect.Value{}, fmt.Errorf("value %s overflows %s", n, t)
		}
		rt := t.GetType()
		if rt == bigType {
			return reflect.ValueOf(n), nil
		}
		rv := reflect.New(rt).Elem()
		if signed {
			rv.SetInt(n.Int64())
		} else {
			rv.SetUint(n.Uint64())
		}
		return rv, nil

	case abi.AddressTy:
		if err := expectKind(v, abitype.KindAddress, t); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v.AsAddress()), nil

	case abi.FixedBytesTy:
		if err := expectKind(v, abitype.KindFixedBytes, t); err != nil {
			return reflect.Value{}, err
		}
		if err := checkWidth(v, t, exact); err != nil {
			return reflect.Value{}, err
		}
		word := v.Word()
		rv := reflect.New(t.GetType()).Elem()
		reflect.Copy(rv, reflect.ValueOf(word[:t.Size]))
		return rv, nil

	case abi.FunctionTy:
		if err := expectKind(v, abitype.KindFunction, t); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v.AsFunction()), nil

	case abi.BytesTy:
		if err := expectKind(v, abitype.KindBytes, t); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v.AsBytes()), nil

	case abi.StringTy:
		if err := expectKind(v, abitype.KindString, t); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v.AsString()), nil

	case abi.SliceTy:
		if err := expectKind(v, abitype.KindArray, t); err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.MakeSlice(t.GetType(), v.Len(), v.Len())
		if err := fillElems(rv, v, *t.Elem, exact); err != nil {
			return reflect.Value{}, err
		}
		return rv, nil

	case abi.ArrayTy:
		if err := expectKind(v, abitype.KindFixedArray, t); err != nil {
			return reflect.Value{}, err
		}
		if v.Len() != t.Size {
			return reflect.Value{}, fmt.Errorf("cannot use array of length %d as %s", v.Len(), t)
		}
		rv := reflect.New(t.GetType()).Elem()
		if err := fillElems(rv, v, *t.Elem, exact); err != nil {
			return reflect.Value{}, err
		}
		return rv, nil

	case abi.TupleTy:
		if err := expectKind(v, abitype.KindTuple, t); err != nil {
			return reflect.Value{}, err
		}
		if v.Len() != len(t.TupleElems) {
			return reflect.Value{}, fmt.Errorf("cannot use tuple of %d elements as %s", v.Len(), t)
		}
		rv := reflect.New(t.TupleType).Elem()
		for i, et := range t.TupleElems {
			ev, err := toGo(v.Index(i), *et, exact)
			if err != nil {
				return reflect.Value{}, err
			}
			rv.Field(i).Set(ev)
		}
		return rv, nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported type %s", t)
}

func fillElems(rv reflect.Value, v value.Value, elem abi.Type, exact bool) error {
	for i := 0; i < v.Len(); i++ {
		ev, err := toGo(v.Index(i), elem, exact)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		rv.Index(i).Set(ev)
	}
	return nil
}

func expectKind(v value.Value, want abitype.Kind, t abi.Type) error {
	if v.Kind() != want {
		return fmt.Errorf("cannot use %s as %s", v.TypeName(), t)
	}
	return nil
}

func checkWidth(v value.Value, t abi.Type, exact bool) error {
	if v.Width() == t.Size || !exact && v.Width() < t.Size {
		return nil
	}
	return fmt.Errorf("cannot use %s as %s", v.TypeName(), t)
}

func fits(n *big.Int, bits int, signed bool) bool {
	if !signed {
		return n.Sign() >= 0 && n.BitLen() <= bits
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if n.Sign() >= 0 {
		return n.Cmp(limit) < 0
	}
	return n.Cmp(limit.Neg(limit)) >= 0
}

// fromGo converts an unpacked go-ethereum value into a Value of type t.
func fromGo(rv reflect.Value, t abitype.Type) (value.Value, error) {
	switch t.Kind() {
	case abitype.KindBool:
		if rv.Kind() == reflect.Bool {
			return value.Bool(rv.Bool()), nil
		}

	case abitype.KindInt:
		if n, ok := bigFromGo(rv, true); ok {
			return value.Int(n, t.Size()), nil
		}

	case abitype.KindUint:
		if n, ok := bigFromGo(rv, false); ok {
			return value.Uint(n, t.Size()), nil
		}

	case abitype.KindFixedBytes:
		if rv.Kind() == reflect.Array && rv.Len() == t.Size() {
			var word [value.WordSize]byte
			reflect.Copy(reflect.ValueOf(word[:]), rv)
			return value.FixedBytes(word, t.Size()), nil
		}

	case abitype.KindAddress:
		if a, ok := rv.Interface().(common.Address); ok {
			return value.Address(a), nil
		}

	case abitype.KindFunction:
		if rv.Kind() == reflect.Array && rv.Len() == 24 {
			var f [24]byte
			reflect.Copy(reflect.ValueOf(f[:]), rv)
			return value.Function(f), nil
		}

	case abitype.KindBytes:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return value.Bytes(rv.Bytes()), nil
		}

	case abitype.KindString:
		if rv.Kind() == reflect.String {
			return value.String(rv.String()), nil
		}

	case abitype.KindArray, abitype.KindFixedArray:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			elems := make([]value.Value, rv.Len())
			for i := range elems {
				ev, err := fromGo(rv.Index(i), t.Elem())
				if err != nil {
					return value.Value{}, err
				}
				elems[i] = ev
			}
			if t.Kind() == abitype.KindArray {
				return value.Array(elems...), nil
			}
			return value.FixedArray(elems...), nil
		}

	case abitype.KindTuple:
		if rv.Kind() == reflect.Struct && rv.NumField() == t.NumElems() {
			elems := make([]value.Value, rv.NumField())
			for i := range elems {
				ev, err := fromGo(rv.Field(i), t.ElemAt(i))
				if err != nil {
					return value.Value{}, err
				}
				elems[i] = ev
			}
			return value.Tuple(elems...), nil
		}
	}
	return value.Value{}, fmt.Errorf("unexpected %s for %s", rv.Type(), t)
}

func bigFromGo(rv reflect.Value, signed bool) (*big.Int, bool) {
	switch rv.Kind() {
	case reflect.Ptr:
		n, ok := rv.Interface().(*big.Int)
		return n, ok && n != nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), signed
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), !signed
	}
	return nil, false
}
