package decoder

import (
	"fmt"

	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/value"
)

// Raw is a pass-through decoder that exposes a log's topics and data without
// an event definition. It is the usual fallback for ABIDecoder.DecodeBatch.
type Raw struct{}

// NewRaw creates a new raw pass-through decoder.
func NewRaw() *Raw {
	return &Raw{}
}

// Decode wraps the log in a DecodedEvent named "raw" whose params are
// topic0..topicN as bytes32 values followed by the data as bytes.
func (r *Raw) Decode(log event.Log) (*DecodedEvent, error) {
	params := make([]value.Named, 0, len(log.Topics)+1)
	for i, topic := range log.Topics {
		params = append(params, value.Named{
			Name:  fmt.Sprintf("topic%d", i),
			Value: value.FixedBytes(topic, value.WordSize),
		})
	}
	params = append(params, value.Named{Name: "data", Value: value.Bytes(log.Data)})

	return &DecodedEvent{
		Name:   "raw",
		Params: params,
		Raw:    log,
	}, nil
}

// Register is a no-op for the raw decoder.
func (r *Raw) Register(_ string) error {
	return nil
}
