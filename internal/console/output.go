// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console provides output formatting for the CLI surface and the
// diagnostic sink consumed by the action executor.
package console

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *OutputState) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// Check no-color.org standards
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(os.Stdout.Fd()) {
		return "\033[1m" + text + "\033[0m"
	}

	// Fallback for pipes/redirects
	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(os.Stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr.
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible). This is the
// diagnostic sink for execution failures: they surface here and nowhere
// else.
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
	}
}

// Result writes command results to stdout (machine-readable primary output).
func (o *OutputState) Result(data any) {
	_, _ = fmt.Fprintf(os.Stdout, "%v\n", data)
}

// JSONResult writes structured JSON results to stdout.
func (o *OutputState) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		// Best effort - output encoding errors shouldn't crash the program
		fmt.Fprintf(os.Stderr, "error encoding JSON: %v\n", err)
	}
}

// PlainList outputs a simple list of items, one per line.
func (o *OutputState) PlainList(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", item)
	}
}

// PlainKeyValue outputs key:value pairs for machine parsing.
func (o *OutputState) PlainKeyValue(key, value string) {
	_, _ = fmt.Fprintf(os.Stdout, "%s:%s\n", key, value)
}
