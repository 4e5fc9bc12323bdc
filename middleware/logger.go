package middleware

import (
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi/event"
)

// Logger logs each event log that passes through the pipeline at debug level.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a logging middleware. A nil logger discards output.
func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{logger: l}
}

// Wrap decorates the handler with event logging.
func (l *Logger) Wrap(next Handler) Handler {
	return func(lg event.Log) *event.Log {
		out := next(lg)
		l.logger.Debug("log",
			zap.Uint64("block", lg.BlockNumber),
			zap.Stringer("tx", lg.TxHash),
			zap.Uint("logIndex", lg.LogIndex),
			zap.Stringer("address", lg.Address),
			zap.Stringer("topic0", lg.EventSignature()),
			zap.Bool("dropped", out == nil),
		)
		return out
	}
}
