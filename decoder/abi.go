package decoder

import (
	"errors"
	"fmt"

	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/event"
)

// ABIDecoder decodes event logs using registered event descriptors.
type ABIDecoder struct {
	schema *Schema
	logs   *LogDecoder
}

// NewABIDecoder creates a registry-backed decoder. A nil logs decoder falls
// back to one over wire.Eth with declared ordering.
func NewABIDecoder(logs *LogDecoder) *ABIDecoder {
	if logs == nil {
		logs = NewLogDecoder(nil, OrderDeclared)
	}
	return &ABIDecoder{
		schema: NewSchema(),
		logs:   logs,
	}
}

// Schema returns the underlying registry.
func (d *ABIDecoder) Schema() *Schema { return d.schema }

// Register parses a Solidity event signature and registers it for decoding.
// Example: "Transfer(address indexed from, address indexed to, uint256 value)"
func (d *ABIDecoder) Register(eventSignature string) error {
	ev, err := descriptor.ParseEvent(eventSignature)
	if err != nil {
		return fmt.Errorf("decoder: %w", err)
	}
	return d.RegisterEvent(ev)
}

// RegisterEvent registers an event descriptor. Anonymous events have no
// signature topic and cannot be looked up, so they are rejected.
func (d *ABIDecoder) RegisterEvent(ev *descriptor.Event) error {
	if ev.Anonymous {
		return fmt.Errorf("decoder: anonymous event %s cannot be registered by signature", ev.Name)
	}
	d.schema.Add(ev)
	return nil
}

// RegisterJSON registers all event definitions from a standard JSON ABI and
// reports how many were added. Non-event and anonymous entries are ignored.
//
// Example:
//
//	dec.RegisterJSON([]byte(`[{"type":"event","name":"Transfer","inputs":[...]}]`))
func (d *ABIDecoder) RegisterJSON(jsonABI []byte) (int, error) {
	abi, err := descriptor.ParseJSON(jsonABI)
	if err != nil {
		return 0, fmt.Errorf("decoder: %w", err)
	}

	n := 0
	for _, ev := range abi.Events {
		if ev.Anonymous {
			continue
		}
		d.schema.Add(ev)
		n++
	}
	return n, nil
}

// RegisterJSONEvent registers a single event definition from a JSON ABI entry.
//
// Example:
//
//	dec.RegisterJSONEvent([]byte(`{"type":"event","name":"Transfer","inputs":[...]}`))
func (d *ABIDecoder) RegisterJSONEvent(jsonEvent []byte) error {
	ev, err := descriptor.ParseJSONEvent(jsonEvent)
	if err != nil {
		return fmt.Errorf("decoder: %w", err)
	}
	return d.RegisterEvent(ev)
}

// Decode looks up the log's first topic and decodes it against the matching event.
func (d *ABIDecoder) Decode(log event.Log) (*DecodedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: log has no topics", ErrInvalidTopicCount)
	}

	ev, ok := d.schema.Lookup(log.Topics[0])
	if !ok {
		return nil, fmt.Errorf("%w: signature %s", ErrUnknownEvent, log.Topics[0].Hex())
	}

	params, err := d.logs.DecodeLog(ev, log)
	if err != nil {
		return nil, err
	}

	return &DecodedEvent{
		Name:      ev.Name,
		Signature: ev.Canonical(),
		Event:     ev,
		Params:    params,
		Raw:       log,
	}, nil
}

// DecodeBatch decodes every log of b in order. Logs with no registered event
// are passed to fallback, or skipped when fallback is nil. Any other failure
// aborts the batch.
func (d *ABIDecoder) DecodeBatch(b event.Batch, fallback Decoder) ([]*DecodedEvent, error) {
	out := make([]*DecodedEvent, 0, b.Len())
	for i, log := range b.Logs {
		decoded, err := d.Decode(log)
		if errors.Is(err, ErrUnknownEvent) || errors.Is(err, ErrInvalidTopicCount) && len(log.Topics) == 0 {
			if fallback == nil {
				continue
			}
			decoded, err = fallback.Decode(log)
		}
		if err != nil {
			return nil, fmt.Errorf("decoder: log %d (block %d, index %d): %w", i, log.BlockNumber, log.LogIndex, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}
