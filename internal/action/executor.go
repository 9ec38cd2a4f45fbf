// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package action

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingTarget indicates a launch target that does not exist on disk.
var ErrMissingTarget = errors.New("launch target does not exist")

// Spawner starts external processes on behalf of the executor. Both calls
// are fire-and-forget: they return once the process has started and take no
// further interest in its lifetime.
type Spawner interface {
	// Open starts the OS shell-open mechanism for path.
	Open(ctx context.Context, path string) error
	// Shell hands command to the shell interpreter as a single argument.
	Shell(ctx context.Context, command string) error
}

// DiagnosticSink receives execution failures. Execute reports everything
// here and nothing to its caller.
type DiagnosticSink interface {
	Errorf(format string, args ...any)
}

// Executor runs resolved actions with best-effort semantics: failures are
// contained at the point of the attempted operation and reported only to the
// diagnostic sink.
type Executor struct {
	spawner Spawner
	exists  func(string) bool
	sink    DiagnosticSink
}

// NewExecutor creates an executor over the given spawner. The exists check
// is the precondition used by CanExecute and re-evaluated per composite step.
func NewExecutor(spawner Spawner, exists func(string) bool, sink DiagnosticSink) *Executor {
	return &Executor{
		spawner: spawner,
		exists:  exists,
		sink:    sink,
	}
}

// outcome records the result of one attempted step for the logging boundary.
type outcome struct {
	action  Action
	err     error
	skipped bool
}

// Execute runs act and never propagates failure to the caller. Composite
// steps are attempted independently: a failing or skipped step does not halt
// its siblings.
func (e *Executor) Execute(ctx context.Context, act Action) {
	for _, result := range e.run(ctx, act) {
		if result.err == nil {
			continue
		}

		if result.skipped {
			e.sink.Errorf("skipped %s: %v", result.action, result.err)

			continue
		}

		e.sink.Errorf("%s: %v", result.action, result.err)
	}
}

// CanExecute reports whether the action's precondition holds. For a
// composite it is the AND of all steps, evaluated once; this is advisory
// only, since a precondition can change before execution.
func (e *Executor) CanExecute(act Action) bool {
	switch act.Kind {
	case KindLaunch:
		return e.exists(act.Path)
	case KindComposite:
		for _, step := range act.Steps {
			if !e.CanExecute(step) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// run performs the side effects and collects outcomes for the sink.
func (e *Executor) run(ctx context.Context, act Action) []outcome {
	switch act.Kind {
	case KindLaunch:
		if !e.exists(act.Path) {
			return []outcome{{action: act, err: ErrMissingTarget}}
		}

		if err := e.spawner.Open(ctx, act.Path); err != nil {
			return []outcome{{action: act, err: fmt.Errorf("open failed: %w", err)}}
		}
	case KindShell:
		if err := e.spawner.Shell(ctx, act.Command); err != nil {
			return []outcome{{action: act, err: fmt.Errorf("spawn failed: %w", err)}}
		}
	case KindComposite:
		var results []outcome

		for _, step := range act.Steps {
			// Re-check each step's own precondition immediately before
			// running it; a stale CanExecute answer must not abort siblings.
			if !e.CanExecute(step) {
				results = append(results, outcome{action: step, err: ErrMissingTarget, skipped: true})

				continue
			}

			results = append(results, e.run(ctx, step)...)
		}

		return results
	}

	return nil
}
