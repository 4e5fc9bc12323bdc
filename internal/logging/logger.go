// Package logging builds the console zap logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	// Level is one of "debug", "info", "warn" or "error". Empty means "info".
	Level string

	// Writer receives the output. Nil means os.Stderr.
	Writer io.Writer

	// NoColor disables level colors.
	NoColor bool
}

// ParseLevel parses a level name.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return l, fmt.Errorf("logging: invalid level %q: %w", s, err)
	}
	return l, nil
}

// New creates a console logger.
func New(opts Options) (*zap.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encodeLevel := coloredLevelEncoder
	if opts.NoColor {
		encodeLevel = zapcore.CapitalLevelEncoder
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(opts.Writer),
		level,
	)
	return zap.New(core), nil
}

func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var c *color.Color
	switch l {
	case zapcore.DebugLevel:
		c = color.New(color.FgWhite)
	case zapcore.InfoLevel:
		c = color.New(color.FgBlue)
	case zapcore.WarnLevel:
		c = color.New(color.FgYellow)
	case zapcore.ErrorLevel:
		c = color.New(color.FgRed)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	enc.AppendString(c.Sprint(l.CapitalString()))
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}
