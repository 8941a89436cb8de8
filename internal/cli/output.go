// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintFields prints labeled values, as JSON or aligned text.
// The fields slice preserves ordering in text mode.
func (p *Printer) PrintFields(fields [][2]string) error {
	switch p.format {
	case OutputFormatJSON:
		obj := make(map[string]string, len(fields))
		for _, f := range fields {
			obj[f[0]] = f[1]
		}
		return p.printJSON(obj)
	case OutputFormatText:
		width := 0
		for _, f := range fields {
			if len(f[0]) > width {
				width = len(f[0])
			}
		}
		for _, f := range fields {
			fmt.Fprintf(p.writer, "%-*s  %s\n", width+1, f[0]+":", f[1])
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintValue prints a single result value. Text mode emits the bare
// value so output can be piped into another command.
func (p *Printer) PrintValue(name, value string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]string{name: value})
	case OutputFormatText:
		fmt.Fprintln(p.writer, value)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]string{"error": err.Error()})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

// printJSON prints data as indented JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
