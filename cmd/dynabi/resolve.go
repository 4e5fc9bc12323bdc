package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hedeqiang/dynabi/descriptor"
)

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func loadABI(path string) (*descriptor.ABI, error) {
	if path == "" {
		return nil, nil
	}
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read ABI: %w", err)
	}
	return descriptor.ParseJSON(data)
}

// resolveFunction looks key up by name or canonical signature in the ABI
// file, then falls back to parsing key as a human-readable signature.
func resolveFunction(abiPath, key string) (*descriptor.Function, error) {
	parsed, err := loadABI(abiPath)
	if err != nil {
		return nil, err
	}
	if parsed != nil {
		if fn, ok := parsed.Function(key); ok {
			return fn, nil
		}
	}
	if !strings.Contains(key, "(") {
		return nil, fmt.Errorf("function %q not found", key)
	}
	return descriptor.ParseFunction(key)
}

// resolveEvent is resolveFunction for events.
func resolveEvent(abiPath, key string) (*descriptor.Event, error) {
	parsed, err := loadABI(abiPath)
	if err != nil {
		return nil, err
	}
	if parsed != nil {
		if ev, ok := parsed.Event(key); ok {
			return ev, nil
		}
	}
	if !strings.Contains(key, "(") {
		return nil, fmt.Errorf("event %q not found", key)
	}
	return descriptor.ParseEvent(key)
}
