package dynabi

import (
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi/decoder"
	"github.com/hedeqiang/dynabi/middleware"
	"github.com/hedeqiang/dynabi/wire"
)

// Option configures a Codec.
type Option func(*Codec)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Codec) {
		c.config = cfg
	}
}

// WithLogger sets the logger. Repairs and failures are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLogLevel sets the log verbosity level.
func WithLogLevel(level string) Option {
	return func(c *Codec) {
		c.config.LogLevel = level
	}
}

// WithWire replaces the word-level codec, wire.Eth by default.
func WithWire(w wire.Codec) Option {
	return func(c *Codec) {
		if w != nil {
			c.wire = w
		}
	}
}

// WithLogOrdering sets how decoded log values are paired with parameter names.
func WithLogOrdering(o decoder.Ordering) Option {
	return func(c *Codec) {
		c.config.LogOrdering = o
	}
}

// WithRawFallback makes DecodeBatch keep logs of unregistered events as raw events.
func WithRawFallback() Option {
	return func(c *Codec) {
		c.config.RawFallback = true
	}
}

// WithMiddleware adds middleware to the batch decoding pipeline.
func WithMiddleware(mw ...middleware.Middleware) Option {
	return func(c *Codec) {
		c.middlewares = append(c.middlewares, mw...)
	}
}
