// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package action implements the command mini-language of the launcher: it
// resolves raw configuration strings into executable actions and runs them.
package action

import (
	"fmt"
	"strings"
)

// Command grammar. The prefixes match case-insensitively; the step delimiter
// is literal.
const (
	ShellPrefix    = "shell:"
	WorkflowPrefix = "workflow:"
	StepDelimiter  = "&&"
)

// Kind discriminates the closed set of action variants.
type Kind int

// Action variants.
const (
	KindNoOp Kind = iota
	KindLaunch
	KindShell
	KindComposite
)

// Action is the resolved, executable form of a configuration command string.
// It is a closed tagged variant: exactly the fields belonging to Kind are
// set, and a value is never mutated after construction.
type Action struct {
	Kind    Kind
	Path    string   // KindLaunch
	Command string   // KindShell
	Steps   []Action // KindComposite
}

// NoOp returns the action that does nothing.
func NoOp() Action {
	return Action{Kind: KindNoOp}
}

// Launch returns an action that shell-opens the file or program at path.
func Launch(path string) Action {
	return Action{Kind: KindLaunch, Path: path}
}

// Shell returns an action that hands command to the shell interpreter.
func Shell(command string) Action {
	return Action{Kind: KindShell, Command: command}
}

// Composite returns an action that runs steps in order, independently and
// non-atomically.
func Composite(steps ...Action) Action {
	return Action{Kind: KindComposite, Steps: steps}
}

// Resolve converts a raw configuration string into an Action. It never
// fails: unrecognized input falls through to Launch with the raw string as
// the path, and blank input resolves to NoOp.
func Resolve(raw string) Action {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoOp()
	}

	if rest, ok := cutPrefixFold(trimmed, ShellPrefix); ok {
		return Shell(strings.TrimSpace(rest))
	}

	if rest, ok := cutPrefixFold(trimmed, WorkflowPrefix); ok {
		return resolveWorkflow(rest)
	}

	return Launch(raw)
}

// resolveWorkflow splits the workflow payload on the step delimiter and
// re-resolves each non-empty segment through the top-level grammar.
func resolveWorkflow(rest string) Action {
	segments := strings.Split(rest, StepDelimiter)
	steps := make([]Action, 0, len(segments))

	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		steps = append(steps, resolveStep(segment))
	}

	if len(steps) == 0 {
		return NoOp()
	}

	return Composite(steps...)
}

// resolveStep resolves a single workflow segment. A segment that itself
// starts with the workflow prefix is not expanded again: the grammar strips
// the outer prefix exactly once, so a nested token reaches the Launch
// fallback as a literal path.
func resolveStep(segment string) Action {
	if _, ok := cutPrefixFold(segment, WorkflowPrefix); ok {
		return Launch(segment)
	}

	return Resolve(segment)
}

// cutPrefixFold removes prefix from s, matching case-insensitively.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}

	return "", false
}

// String renders a compact, human-readable form of the action tree.
func (a Action) String() string {
	switch a.Kind {
	case KindNoOp:
		return "noop"
	case KindLaunch:
		return fmt.Sprintf("launch(%s)", a.Path)
	case KindShell:
		return fmt.Sprintf("shell(%s)", a.Command)
	case KindComposite:
		parts := make([]string, 0, len(a.Steps))
		for _, step := range a.Steps {
			parts = append(parts, step.String())
		}

		return "workflow[" + strings.Join(parts, " -> ") + "]"
	default:
		return "unknown"
	}
}
