// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line surface of the launcher.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/config"
	"github.com/palett-sh/palett/internal/console"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/index"
	"github.com/palett-sh/palett/internal/platform"
	"github.com/palett-sh/palett/internal/search"
	"github.com/palett-sh/palett/internal/tui"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess      = 0  // Command completed successfully
	ExitGeneralError = 1  // Generic failure (catch-all)
	ExitUsageError   = 2  // Invalid command line usage
	ExitConfigError  = 3  // Configuration file error
	ExitSystemError  = 12 // System call failed
)

// ErrNoCommandString is returned when a command expecting a raw command
// string receives none.
var ErrNoCommandString = errors.New("no command string given")

// ExitError carries a specific exit code for main to report.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// CLI wires the launcher core behind a scriptable command-line interface.
type CLI struct {
	app        *cli.Command
	verbose    bool
	json       bool
	plain      bool
	yes        bool
	configPath string
}

// NewCLI creates the palett command-line interface.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "palett",
		Usage:   "Keyboard-driven command palette launcher",
		Suggest: true,
		Description: `Resolves configuration command strings into executable actions and
searches the indexed application set.

COMMAND GRAMMAR:
  shell:<command>                 Run <command> through the shell interpreter
  workflow:<a> && <b> && ...      Run steps in order, skipping unavailable ones
  <anything else>                 Shell-open the string as a path

EXAMPLES:
  palett resolve "workflow:report.xlsx && shell:notify done"
  palett run "shell:systemctl suspend"
  palett apps --filter "source:Desktop Entry"
  palett search note
  palett palette`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt before shell commands",
				Destination: &app.yes,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to the configuration file",
				Destination: &app.configPath,
			},
		},
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			console.DefaultOutput.SetMode(app.verbose, app.json, app.plain)

			return ctx, nil
		},
		Commands: []*cli.Command{
			app.createResolveCommand(),
			app.createRunCommand(),
			app.createAppsCommand(),
			app.createSearchCommand(),
			app.createFiltersCommand(),
			app.createPaletteCommand(),
		},
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// Command exposes the root command (for testing).
func (app *CLI) Command() *cli.Command {
	return app.app
}

// createResolveCommand prints the action tree a command string resolves to.
func (app *CLI) createResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a command string into its action tree",
		ArgsUsage: "<command string>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			raw, err := rawArgument(cmd)
			if err != nil {
				return err
			}

			act := action.Resolve(raw)

			if app.json {
				console.DefaultOutput.JSONResult("success", map[string]any{"action": describeAction(act)})

				return nil
			}

			console.DefaultOutput.Result(act.String())

			return nil
		},
	}
}

// createRunCommand resolves and executes a command string.
func (app *CLI) createRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Resolve and execute a command string",
		ArgsUsage: "<command string>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := rawArgument(cmd)
			if err != nil {
				return err
			}

			act := action.Resolve(raw)
			executor := app.newExecutor()

			// Advisory only: execution re-checks per step and skips.
			if !executor.CanExecute(act) {
				console.DefaultOutput.Warningf("some steps are unavailable and will be skipped")
			}

			if containsShell(act) && !app.yes && console.DefaultOutput.IsTTY(os.Stdin.Fd()) {
				confirmed, err := confirmShellRun(act)
				if err != nil {
					return NewExitError(ExitGeneralError, "confirmation prompt failed", err)
				}

				if !confirmed {
					console.DefaultOutput.Progressf("cancelled")

					return nil
				}
			}

			executor.Execute(ctx, act)

			return nil
		},
	}
}

// createAppsCommand lists the filtered application set.
func (app *CLI) createAppsCommand() *cli.Command {
	return &cli.Command{
		Name:  "apps",
		Usage: "List indexed applications, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filter",
				Usage: "filter expression or the name of a configured filter",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "title substring to match",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			bound, err := app.loadBound()
			if err != nil {
				return err
			}

			engine := search.NewEngine()
			engine.SetApplications(NewIndexer().Index())
			engine.SelectFilter(app.selectFilter(cmd.String("filter"), bound.Filters))
			engine.SetSearchText(cmd.String("search"))

			app.printApplications(engine.FilteredApplications())

			return nil
		},
	}
}

// createSearchCommand prints the combined search results for a query.
func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search applications and pinned commands",
		ArgsUsage: "<text>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			text, err := rawArgument(cmd)
			if err != nil {
				return err
			}

			bound, err := app.loadBound()
			if err != nil {
				return err
			}

			engine := search.NewEngine()
			engine.SetApplications(NewIndexer().Index())
			engine.SetPinned(bound.SearchSet())
			engine.SetSearchText(text)

			app.printResults(engine.SearchResults())

			return nil
		},
	}
}

// createFiltersCommand lists the configured application filters.
func (app *CLI) createFiltersCommand() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "List configured application filters",
		Action: func(_ context.Context, _ *cli.Command) error {
			bound, err := app.loadBound()
			if err != nil {
				return err
			}

			if app.json {
				filters := make([]map[string]any, 0, len(bound.Filters))
				for _, appFilter := range bound.Filters {
					filters = append(filters, map[string]any{
						"name":       appFilter.Name,
						"expression": appFilter.Expression,
						"matchesAll": !appFilter.HasPredicate(),
					})
				}

				console.DefaultOutput.JSONResult("success", map[string]any{"filters": filters})

				return nil
			}

			for _, appFilter := range bound.Filters {
				expression := appFilter.Expression
				if !appFilter.HasPredicate() {
					expression = "(matches all)"
				}

				console.DefaultOutput.PlainKeyValue(appFilter.Name, expression)
			}

			return nil
		},
	}
}

// createPaletteCommand opens the interactive palette.
func (app *CLI) createPaletteCommand() *cli.Command {
	return &cli.Command{
		Name:  "palette",
		Usage: "Open the interactive command palette",
		Action: func(ctx context.Context, _ *cli.Command) error {
			bound, err := app.loadBound()
			if err != nil {
				return err
			}

			engine := search.NewEngine()
			engine.SetApplications(NewIndexer().Index())
			engine.SetPinned(bound.SearchSet())

			if err := tui.Launch(ctx, tui.Deps{
				Engine:     engine,
				Executor:   app.newExecutor(),
				Filters:    bound.Filters,
				ConfigPath: app.resolveConfigPath(),
			}); err != nil {
				return NewExitError(ExitGeneralError, "palette failed", err)
			}

			return nil
		},
	}
}

// NewIndexer builds the default application indexer.
func NewIndexer() *index.Indexer {
	return index.NewIndexer()
}

// resolveConfigPath returns the --config flag value or the default location.
func (app *CLI) resolveConfigPath() string {
	if app.configPath != "" {
		return app.configPath
	}

	return config.DefaultPath()
}

// loadBound loads and binds the configuration document.
func (app *CLI) loadBound() (config.Bound, error) {
	path := app.resolveConfigPath()

	doc, err := config.Load(path)
	if err != nil {
		return config.Bound{}, NewExitError(ExitConfigError, "failed to load configuration", err)
	}

	console.DefaultOutput.Progressf("loaded configuration from %s", path)

	return doc.Bind(), nil
}

// newExecutor wires the executor to the real spawner and the console sink.
func (app *CLI) newExecutor() *action.Executor {
	return action.NewExecutor(platform.NewProcessSpawner(), targetExists, console.DefaultOutput)
}

// selectFilter resolves the --filter flag: a configured filter name wins,
// anything else is parsed as a filter expression.
func (app *CLI) selectFilter(flag string, configured []filter.AppFilter) filter.AppFilter {
	if flag == "" {
		return filter.All()
	}

	for _, appFilter := range configured {
		if strings.EqualFold(appFilter.Name, flag) {
			return appFilter
		}
	}

	return filter.NewAppFilter(flag, flag)
}

// printApplications writes the filtered application list.
func (app *CLI) printApplications(items []catalog.ApplicationItem) {
	if app.json {
		listed := make([]map[string]any, 0, len(items))
		for _, item := range items {
			listed = append(listed, map[string]any{
				"title":    item.Title,
				"category": item.Category,
				"source":   item.Source,
				"action":   item.Action.String(),
			})
		}

		console.DefaultOutput.JSONResult("success", map[string]any{"applications": listed})

		return
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}

	console.DefaultOutput.PlainList(titles)
}

// printResults writes the combined search results.
func (app *CLI) printResults(results []catalog.SearchResult) {
	if app.json {
		listed := make([]map[string]any, 0, len(results))
		for _, result := range results {
			listed = append(listed, map[string]any{
				"title":    result.Title,
				"subtitle": result.Subtitle,
				"category": result.Category,
				"action":   result.Action.String(),
			})
		}

		console.DefaultOutput.JSONResult("success", map[string]any{"results": listed})

		return
	}

	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, fmt.Sprintf("%s — %s (%s)", result.Title, result.Subtitle, result.Category))
	}

	console.DefaultOutput.PlainList(lines)
}

// rawArgument joins the positional arguments into one raw string.
func rawArgument(cmd *cli.Command) (string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return "", NewExitError(ExitUsageError, "command string required", ErrNoCommandString)
	}

	return strings.Join(args, " "), nil
}

// describeAction renders an action tree as nested JSON-friendly maps.
func describeAction(act action.Action) map[string]any {
	switch act.Kind {
	case action.KindNoOp:
		return map[string]any{"kind": "noop"}
	case action.KindLaunch:
		return map[string]any{"kind": "launch", "path": act.Path}
	case action.KindShell:
		return map[string]any{"kind": "shell", "command": act.Command}
	case action.KindComposite:
		steps := make([]map[string]any, 0, len(act.Steps))
		for _, step := range act.Steps {
			steps = append(steps, describeAction(step))
		}

		return map[string]any{"kind": "workflow", "steps": steps}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

// containsShell reports whether the action tree reaches a shell variant.
func containsShell(act action.Action) bool {
	if act.Kind == action.KindShell {
		return true
	}

	for _, step := range act.Steps {
		if containsShell(step) {
			return true
		}
	}

	return false
}

// confirmShellRun asks before handing a command to the shell interpreter.
func confirmShellRun(act action.Action) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Run %s?", act)).
				Description("The command runs through the shell interpreter without escaping.").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// targetExists is the launch precondition: the path exists on disk, or its
// first field resolves on PATH for bare program names.
func targetExists(path string) bool {
	if platform.FileExists(path) {
		return true
	}

	fields := strings.Fields(path)
	if len(fields) == 0 {
		return false
	}

	return platform.CommandExists(fields[0])
}
