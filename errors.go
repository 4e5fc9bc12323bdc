package dynabi

import (
	"github.com/hedeqiang/dynabi/decoder"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/function"
	"github.com/hedeqiang/dynabi/reconcile"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

var (
	// ErrInvalidLength is returned when a byte slice is too long for a fixed-size slot.
	ErrInvalidLength = value.ErrInvalidLength

	// ErrTypeMismatch is returned when a value is structurally incompatible with a type.
	ErrTypeMismatch = reconcile.ErrTypeMismatch

	// ErrCountMismatch is returned when a log decodes to the wrong number of values.
	ErrCountMismatch = decoder.ErrCountMismatch

	// ErrInvalidTopicCount is returned when a log's topics cannot belong to the event.
	ErrInvalidTopicCount = decoder.ErrInvalidTopicCount

	// ErrUnknownEvent is returned when no registered event matches a log.
	ErrUnknownEvent = decoder.ErrUnknownEvent

	// ErrArityMismatch is returned when the value count differs from the declared input count.
	ErrArityMismatch = function.ErrArityMismatch

	// ErrSelectorMismatch is returned when call data belongs to another function.
	ErrSelectorMismatch = function.ErrSelectorMismatch

	// ErrDecode is returned when bytes cannot be unpacked.
	ErrDecode = wire.ErrDecode

	// ErrEncode is returned when values cannot be packed.
	ErrEncode = wire.ErrEncode

	// ErrInvalidABI is returned when an interface definition cannot be parsed.
	ErrInvalidABI = descriptor.ErrInvalidABI
)

// TypeMismatchError describes the expected and actual shapes of a mismatch.
type TypeMismatchError = reconcile.TypeMismatchError
