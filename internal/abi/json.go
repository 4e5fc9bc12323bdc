package abi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONABIEntry represents a single entry in an Ethereum JSON ABI array.
type JSONABIEntry struct {
	Type            string         `json:"type"`
	Name            string         `json:"name"`
	Inputs          []JSONABIInput `json:"inputs"`
	Outputs         []JSONABIInput `json:"outputs"`
	Anonymous       bool           `json:"anonymous"`
	StateMutability string         `json:"stateMutability"`
}

// JSONABIInput represents a single input or output parameter in a JSON ABI entry.
type JSONABIInput struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	InternalType string         `json:"internalType,omitempty"`
	Indexed      bool           `json:"indexed"`
	Components   []JSONABIInput `json:"components,omitempty"` // for tuple types
}

// ParseJSONABI parses a full JSON ABI (array of entries) and returns the
// function and event definitions. Constructors, errors, fallback and receive
// entries are skipped.
func ParseJSONABI(jsonData []byte) ([]*ParsedEntry, error) {
	var entries []JSONABIEntry
	if err := json.Unmarshal(jsonData, &entries); err != nil {
		return nil, fmt.Errorf("abi: parse JSON ABI: %w", err)
	}

	var out []*ParsedEntry
	for _, entry := range entries {
		if entry.Type != EntryEvent && entry.Type != EntryFunction {
			continue
		}

		parsed, err := jsonEntryToParsed(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}

	return out, nil
}

// ParseJSONABIEntry parses a single JSON ABI entry. An empty "type" is treated
// as a function, matching the solc default.
func ParseJSONABIEntry(jsonData []byte) (*ParsedEntry, error) {
	var entry JSONABIEntry
	if err := json.Unmarshal(jsonData, &entry); err != nil {
		return nil, fmt.Errorf("abi: parse JSON ABI entry: %w", err)
	}
	if entry.Type == "" {
		entry.Type = EntryFunction
	}
	if entry.Type != EntryEvent && entry.Type != EntryFunction {
		return nil, fmt.Errorf("abi: expected type \"event\" or \"function\", got %q", entry.Type)
	}

	return jsonEntryToParsed(entry)
}

func jsonEntryToParsed(entry JSONABIEntry) (*ParsedEntry, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("abi: %s entry has no name", entry.Type)
	}

	return &ParsedEntry{
		Kind:            entry.Type,
		Name:            entry.Name,
		Params:          jsonParams(entry.Inputs),
		Outputs:         jsonParams(entry.Outputs),
		Anonymous:       entry.Anonymous,
		StateMutability: entry.StateMutability,
	}, nil
}

func jsonParams(inputs []JSONABIInput) []ParsedParam {
	if len(inputs) == 0 {
		return nil
	}
	params := make([]ParsedParam, len(inputs))
	for i, input := range inputs {
		params[i] = ParsedParam{
			Type:    resolveType(input),
			Name:    input.Name,
			Indexed: input.Indexed,
		}
	}
	return params
}

// resolveType converts a JSON ABI input to its canonical Solidity type string.
// Handles tuple types by recursively building "(type1,type2,...)" notation.
func resolveType(input JSONABIInput) string {
	if !strings.HasPrefix(input.Type, "tuple") {
		return input.Type
	}

	suffix := input.Type[len("tuple"):] // e.g., "", "[]" or "[3][]"

	componentTypes := make([]string, len(input.Components))
	for i, comp := range input.Components {
		componentTypes[i] = resolveType(comp)
	}

	return "(" + strings.Join(componentTypes, ",") + ")" + suffix
}
