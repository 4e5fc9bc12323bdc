// Package middleware provides interceptors applied to logs before they are
// decoded.
package middleware

import (
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/filter"
)

// Handler processes an event log and returns a (possibly modified) log.
// Returning a nil pointer signals that the log should be dropped.
type Handler func(log event.Log) *event.Log

// Middleware wraps a Handler, adding cross-cutting behavior (logging, metrics, etc.).
type Middleware interface {
	// Wrap returns a new Handler that decorates the given inner handler.
	Wrap(next Handler) Handler
}

// Func adapts a plain function to Middleware.
type Func func(next Handler) Handler

// Wrap implements Middleware.
func (f Func) Wrap(next Handler) Handler { return f(next) }

// Chain composes multiple middlewares into a single Handler, applying them
// in the order provided (first middleware is outermost).
func Chain(handler Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i].Wrap(handler)
	}
	return handler
}

// Terminal is the innermost handler: it passes every log through unchanged.
func Terminal(log event.Log) *event.Log { return &log }

// Match drops logs f does not match.
func Match(f filter.Filter) Middleware {
	return Func(func(next Handler) Handler {
		return func(lg event.Log) *event.Log {
			if !f.Match(lg) {
				return nil
			}
			return next(lg)
		}
	})
}

// SkipRemoved drops logs reverted by a chain reorganization.
func SkipRemoved() Middleware {
	return Match(filter.NotRemoved())
}
