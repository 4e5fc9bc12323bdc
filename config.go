package dynabi

import (
	"github.com/hedeqiang/dynabi/decoder"
)

// Config holds the configuration of a Codec.
type Config struct {
	// LogOrdering selects how decoded log values are paired with parameter names.
	LogOrdering decoder.Ordering

	// LogLevel filters the configured logger ("debug", "info", "warn", "error").
	// It can only make the logger quieter.
	LogLevel string

	// RawFallback makes DecodeBatch return unknown logs as raw events instead
	// of skipping them.
	RawFallback bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogOrdering: decoder.OrderDeclared,
		LogLevel:    "info",
	}
}
