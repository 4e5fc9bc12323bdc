package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

var (
	// ErrInvalidTopicCount is returned when a log's topics cannot belong to the event.
	ErrInvalidTopicCount = errors.New("decoder: invalid topic count")

	// ErrCountMismatch is returned when the decoded value count disagrees with the event inputs.
	ErrCountMismatch = errors.New("decoder: decoded value count mismatch")

	// ErrUnknownEvent is returned when no registered event matches a log's first topic.
	ErrUnknownEvent = errors.New("decoder: unknown event")
)

// Ordering selects how decoded values are paired with parameter names.
type Ordering int

const (
	// OrderDeclared pairs each parameter with the next indexed or body value
	// according to its indexed flag, so interleaved declarations keep their
	// names.
	OrderDeclared Ordering = iota

	// OrderPositional concatenates indexed values and body values and zips
	// them with the declared inputs. Names are only correct when all indexed
	// parameters are declared first.
	OrderPositional
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case OrderDeclared:
		return "declared"
	case OrderPositional:
		return "positional"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// ParseOrdering parses "declared" or "positional".
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declared":
		return OrderDeclared, nil
	case "positional":
		return OrderPositional, nil
	}
	return 0, fmt.Errorf("decoder: unknown log ordering %q", s)
}

// LogDecoder rebuilds the named parameter list of an event from a raw log.
type LogDecoder struct {
	codec wire.Decoder
	order Ordering
}

// NewLogDecoder returns a LogDecoder over codec. A nil codec falls back to wire.Eth.
func NewLogDecoder(codec wire.Decoder, order Ordering) *LogDecoder {
	if codec == nil {
		codec = wire.NewEth()
	}
	return &LogDecoder{codec: codec, order: order}
}

// Ordering returns the name pairing mode.
func (d *LogDecoder) Ordering() Ordering { return d.order }

// DecodeLog decodes log against ev and returns one named value per declared
// input, in declaration order.
func (d *LogDecoder) DecodeLog(ev *descriptor.Event, log event.Log) ([]value.Named, error) {
	indexedParams := ev.Indexed()

	want := len(indexedParams)
	if !ev.Anonymous {
		want++
	}
	n := len(log.Topics)
	switch {
	case n > wire.MaxTopics:
		return nil, fmt.Errorf("%w: %s: %d topics exceeds the maximum of %d", ErrInvalidTopicCount, ev.Name, n, wire.MaxTopics)
	case n == 0 && !ev.Anonymous:
		return nil, fmt.Errorf("%w: %s: missing signature topic", ErrInvalidTopicCount, ev.Name)
	case n != want:
		return nil, fmt.Errorf("%w: %s: expected %d topics, got %d", ErrInvalidTopicCount, ev.Name, want, n)
	}

	indexed, body, err := d.codec.DecodeLog(ev, log.Topics, log.Data)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}

	if len(indexed)+len(body) != len(ev.Inputs) {
		return nil, fmt.Errorf("%w: %s: decoded %d indexed and %d body values for %d inputs",
			ErrCountMismatch, ev.Name, len(indexed), len(body), len(ev.Inputs))
	}

	if d.order == OrderPositional {
		return zipPositional(ev.Inputs, indexed, body), nil
	}

	if len(indexed) != len(indexedParams) {
		return nil, fmt.Errorf("%w: %s: decoded %d indexed values for %d indexed inputs",
			ErrCountMismatch, ev.Name, len(indexed), len(indexedParams))
	}
	return mergeDeclared(ev.Inputs, indexed, body), nil
}

func zipPositional(inputs []descriptor.Param, indexed, body []value.Value) []value.Named {
	out := make([]value.Named, len(inputs))
	all := append(append(make([]value.Value, 0, len(inputs)), indexed...), body...)
	for i, p := range inputs {
		out[i] = value.Named{Name: p.Name, Value: all[i]}
	}
	return out
}

func mergeDeclared(inputs []descriptor.Param, indexed, body []value.Value) []value.Named {
	out := make([]value.Named, len(inputs))
	var ti, bi int
	for i, p := range inputs {
		if p.Indexed {
			out[i] = value.Named{Name: p.Name, Value: indexed[ti]}
			ti++
		} else {
			out[i] = value.Named{Name: p.Name, Value: body[bi]}
			bi++
		}
	}
	return out
}
