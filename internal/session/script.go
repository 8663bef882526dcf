// Package session executes scripted operation sequences against one
// analyzer.
//
// A script is a YAML file listing the seven analysis operations in order.
// Running it produces a deterministic transcript, which makes mutation
// operations (insert, undo) usable from a one-shot CLI and gives tests a
// stable artifact to compare against golden files.
package session

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script defines an ordered operation sequence.
type Script struct {
	// Name uniquely identifies this script; used in transcript headers
	// and golden file names.
	Name string `yaml:"name"`

	// Description explains what this script exercises.
	Description string `yaml:"description,omitempty"`

	// Ops lists the operations to execute, in order.
	Ops []Op `yaml:"ops"`
}

// Op is a single scripted operation. Which fields are required depends on
// the operation; validation enforces them before execution starts.
type Op struct {
	// Op names the operation: search, total, top, trend, sectors,
	// insert, or undo.
	Op string `yaml:"op"`

	// Country is required by search, trend, and insert.
	Country string `yaml:"country,omitempty"`

	// Year is required by total, top, and insert. Zero means unset, so
	// the literal year 0 cannot be scripted.
	Year int `yaml:"year,omitempty"`

	// N is required by top.
	N int `yaml:"n,omitempty"`

	// Emission is used by insert.
	Emission float64 `yaml:"emission,omitempty"`

	// Column optionally names the categorical column for sectors.
	Column string `yaml:"column,omitempty"`
}

// Operation name constants.
const (
	OpSearch  = "search"
	OpTotal   = "total"
	OpTop     = "top"
	OpTrend   = "trend"
	OpSectors = "sectors"
	OpInsert  = "insert"
	OpUndo    = "undo"
)

// LoadScript reads and parses a script YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	// Strict field validation catches typos like "emision:" vs "emission:".
	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScript(&script); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	return &script, nil
}

// validateScript checks that required fields are present and valid.
func validateScript(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Ops) == 0 {
		return fmt.Errorf("ops list is required and must be non-empty")
	}

	for i, op := range s.Ops {
		if err := validateOp(i, &op); err != nil {
			return err
		}
	}
	return nil
}

// validateOp validates a single operation based on its kind.
func validateOp(index int, op *Op) error {
	switch op.Op {
	case OpSearch, OpTrend:
		if op.Country == "" {
			return fmt.Errorf("ops[%d]: country is required for %s", index, op.Op)
		}
	case OpTotal:
		if op.Year == 0 {
			return fmt.Errorf("ops[%d]: year is required for total", index)
		}
	case OpTop:
		if op.Year == 0 {
			return fmt.Errorf("ops[%d]: year is required for top", index)
		}
		if op.N == 0 {
			return fmt.Errorf("ops[%d]: n is required for top", index)
		}
	case OpInsert:
		if op.Country == "" {
			return fmt.Errorf("ops[%d]: country is required for insert", index)
		}
		if op.Year == 0 {
			return fmt.Errorf("ops[%d]: year is required for insert", index)
		}
	case OpSectors, OpUndo:
		// No required fields.
	case "":
		return fmt.Errorf("ops[%d]: op is required", index)
	default:
		return fmt.Errorf("ops[%d]: unknown op %q", index, op.Op)
	}
	return nil
}
