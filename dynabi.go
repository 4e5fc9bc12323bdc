// Package dynabi encodes and decodes contract ABI values against runtime
// interface descriptors.
//
// Usage:
//
//	c := dynabi.New(
//	    dynabi.WithLogger(logger),
//	    dynabi.WithLogOrdering(decoder.OrderDeclared),
//	)
//
//	fn, _ := descriptor.ParseFunction("transfer(address to, uint256 amount)")
//	data, err := c.EncodeInput(fn, []value.Value{
//	    value.Address(to),
//	    value.Uint(amount, 64), // widened to uint256
//	})
//
//	c.RegisterEvent("Transfer(address indexed from, address indexed to, uint256 value)")
//	ev, err := c.Decode(log)
package dynabi

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/decoder"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/function"
	"github.com/hedeqiang/dynabi/internal/logging"
	"github.com/hedeqiang/dynabi/middleware"
	"github.com/hedeqiang/dynabi/reconcile"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

// Codec is the main entry point. It is safe for concurrent use once built;
// only event registration mutates it.
type Codec struct {
	wire        wire.Codec
	reconciler  *reconcile.Reconciler
	functions   *function.Codec
	logs        *decoder.LogDecoder
	events      *decoder.ABIDecoder
	middlewares []middleware.Middleware
	logger      *zap.Logger
	config      Config
}

// New creates a Codec with the given options.
func New(opts ...Option) *Codec {
	c := &Codec{
		wire:   wire.NewEth(),
		logger: zap.NewNop(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	level, err := logging.ParseLevel(c.config.LogLevel)
	switch {
	case err != nil:
		c.logger.Warn("ignoring log level", zap.Error(err))
	case level > zapcore.LevelOf(c.logger.Core()):
		c.logger = c.logger.WithOptions(zap.IncreaseLevel(level))
	}

	c.reconciler = reconcile.New(c.wire)
	c.functions = function.New(c.wire, function.WithRepairHook(c.logRepair))
	c.logs = decoder.NewLogDecoder(c.wire, c.config.LogOrdering)
	c.events = decoder.NewABIDecoder(c.logs)
	return c
}

// Config returns the effective configuration.
func (c *Codec) Config() Config { return c.config }

// Events returns the event registry used by Decode.
func (c *Codec) Events() *decoder.ABIDecoder { return c.events }

// Use appends middleware to the batch decoding pipeline.
// Must not be called concurrently with DecodeBatch.
func (c *Codec) Use(mw ...middleware.Middleware) {
	c.middlewares = append(c.middlewares, mw...)
}

// Signature returns the diagnostic signature of fn, with outputs after a
// colon, e.g. "balanceOf(address):(uint256)".
func Signature(fn *descriptor.Function) string {
	return fn.SignatureCompat()
}

// Reconcile returns v widened to the exact widths of t.
func (c *Codec) Reconcile(v value.Value, t abitype.Type) (value.Value, error) {
	out, repaired, err := c.reconciler.Reconcile(v, t)
	if err != nil {
		c.logger.Debug("reconcile failed", zap.Stringer("type", t), zap.String("value", v.TypeName()), zap.Error(err))
		return value.Value{}, err
	}
	if repaired {
		c.logger.Debug("repaired value width", zap.Stringer("type", t), zap.String("from", v.TypeName()))
	}
	return out, nil
}

// EncodeInput returns the call data for fn with values as arguments.
func (c *Codec) EncodeInput(fn *descriptor.Function, values []value.Value) ([]byte, error) {
	data, err := c.functions.EncodeInput(fn, values)
	if err != nil {
		c.logger.Debug("encode input failed", zap.String("function", fn.Canonical()), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// DecodeInput decodes call data, selector included, against fn's inputs.
func (c *Codec) DecodeInput(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	vals, err := c.functions.DecodeInput(fn, data)
	if err != nil {
		c.logger.Debug("decode input failed", zap.String("function", fn.Canonical()), zap.Int("bytes", len(data)), zap.Error(err))
		return nil, err
	}
	return vals, nil
}

// DecodeArgs decodes selector-less argument data against fn's inputs.
func (c *Codec) DecodeArgs(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	vals, err := c.functions.DecodeArgs(fn, data)
	if err != nil {
		c.logger.Debug("decode args failed", zap.String("function", fn.Canonical()), zap.Int("bytes", len(data)), zap.Error(err))
		return nil, err
	}
	return vals, nil
}

// DecodeOutput decodes return data against fn's outputs.
func (c *Codec) DecodeOutput(fn *descriptor.Function, data []byte) ([]value.Value, error) {
	vals, err := c.functions.DecodeOutput(fn, data)
	if err != nil {
		c.logger.Debug("decode output failed", zap.String("function", fn.Canonical()), zap.Int("bytes", len(data)), zap.Error(err))
		return nil, err
	}
	return vals, nil
}

// DecodeLog decodes log against ev and returns its named parameters in
// declaration order.
func (c *Codec) DecodeLog(ev *descriptor.Event, log event.Log) ([]value.Named, error) {
	params, err := c.logs.DecodeLog(ev, log)
	if err != nil {
		c.logger.Debug("decode log failed", zap.String("event", ev.Canonical()), zap.Int("topics", len(log.Topics)), zap.Error(err))
		return nil, err
	}
	return params, nil
}

// RegisterEvent registers an event ABI signature for Decode.
// Example: c.RegisterEvent("Transfer(address indexed from, address indexed to, uint256 value)")
func (c *Codec) RegisterEvent(eventSignature string) error {
	if err := c.events.Register(eventSignature); err != nil {
		return fmt.Errorf("dynabi: %w", err)
	}
	return nil
}

// RegisterEventJSON registers all event definitions from a standard JSON ABI.
// Non-event entries (functions, constructors, etc.) are ignored.
//
// Example:
//
//	c.RegisterEventJSON([]byte(`[{"type":"event","name":"Transfer","inputs":[...]}]`))
func (c *Codec) RegisterEventJSON(jsonABI []byte) error {
	n, err := c.events.RegisterJSON(jsonABI)
	if err != nil {
		return fmt.Errorf("dynabi: %w", err)
	}
	c.logger.Debug("registered events", zap.Int("count", n))
	return nil
}

// Decode decodes log against the registered event matching its first topic.
func (c *Codec) Decode(log event.Log) (*decoder.DecodedEvent, error) {
	decoded, err := c.events.Decode(log)
	if err != nil {
		c.logger.Debug("decode failed", zap.Stringer("topic0", log.EventSignature()), zap.Error(err))
		return nil, err
	}
	return decoded, nil
}

// DecodeBatch passes every log of b through the middleware pipeline and
// decodes the logs that survive it against the registered events. Logs of
// unregistered events are skipped unless RawFallback is set.
func (c *Codec) DecodeBatch(b event.Batch) ([]*decoder.DecodedEvent, error) {
	if b.IsEmpty() {
		return nil, nil
	}
	pipeline := middleware.Chain(middleware.Terminal, c.middlewares...)

	kept := make([]event.Log, 0, b.Len())
	for _, log := range b.Logs {
		if out := pipeline(log); out != nil {
			kept = append(kept, *out)
		}
	}

	var fallback decoder.Decoder
	if c.config.RawFallback {
		fallback = decoder.NewRaw()
	}

	decoded, err := c.events.DecodeBatch(event.NewBatch(kept), fallback)
	if err != nil {
		return nil, fmt.Errorf("dynabi: %w", err)
	}
	c.logger.Debug("decoded batch",
		zap.Int("logs", b.Len()),
		zap.Int("kept", len(kept)),
		zap.Int("decoded", len(decoded)),
		zap.Uint64("fromBlock", b.FromBlock),
		zap.Uint64("toBlock", b.ToBlock),
	)
	return decoded, nil
}

func (c *Codec) logRepair(fn *descriptor.Function, index int, before, after value.Value) {
	c.logger.Debug("repaired input width",
		zap.String("function", fn.Canonical()),
		zap.Int("input", index),
		zap.String("from", before.TypeName()),
		zap.String("to", after.TypeName()),
	)
}
