// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui implements the interactive command palette: a search field
// over the combined results of the search engine, recomputed on every
// keystroke.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/config"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/search"
	"github.com/palett-sh/palett/internal/tui/styles"
)

// Layout constants for consistent spacing.
const (
	maxVisibleResults = 12 // Rows shown below the input field
	minContentWidth   = 20 // Minimum width for result rows
	chromePadding     = 4  // Border and padding around content
)

// Executor is the slice of the action executor the palette needs.
type Executor interface {
	Execute(ctx context.Context, act action.Action)
	CanExecute(act action.Action) bool
}

// Deps carries the collaborators the palette operates on. ConfigPath is
// optional; when set, the palette reloads pinned commands and filters on
// configuration file changes.
type Deps struct {
	Engine     *search.Engine
	Executor   Executor
	Filters    []filter.AppFilter
	ConfigPath string
}

// ConfigReloadedMsg carries freshly bound configuration state into the
// program goroutine.
type ConfigReloadedMsg struct {
	Pinned  []catalog.PinnedCommand
	Filters []filter.AppFilter
}

// Model is the bubbletea model of the palette. All state mutation happens in
// Update on the program goroutine, matching the engine's single-goroutine
// ownership contract.
type Model struct {
	styles   *styles.Styles
	input    textinput.Model
	engine   *search.Engine
	executor Executor
	ctx      context.Context //nolint:containedctx // propagated to spawned processes

	filters   []filter.AppFilter
	filterIdx int

	selection int
	width     int
	height    int
	status    string
	showHelp  bool
	helpView  string
	quitting  bool
}

// NewModel creates the palette model. The filter list always starts with the
// match-all filter; configured filters follow in document order.
func NewModel(ctx context.Context, deps Deps) *Model {
	input := textinput.New()
	input.Placeholder = "Type to search…"
	input.Prompt = "> "
	input.Focus()

	filters := append([]filter.AppFilter{filter.All()}, deps.Filters...)

	return &Model{
		styles:   styles.New(),
		input:    input,
		engine:   deps.Engine,
		executor: deps.Executor,
		ctx:      ctx,
		filters:  filters,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.contentWidth() - len(m.input.Prompt)

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigReloadedMsg:
		m.applyReload(msg)

		return m, nil
	}

	return m.updateInput(msg)
}

// applyReload swaps in the reloaded pinned commands and filters. The engine
// mutation happens here, on the program goroutine that owns it.
func (m *Model) applyReload(msg ConfigReloadedMsg) {
	m.engine.SetPinned(msg.Pinned)
	m.filters = append([]filter.AppFilter{filter.All()}, msg.Filters...)

	if m.filterIdx >= len(m.filters) {
		m.filterIdx = 0
	}

	m.engine.SelectFilter(m.filters[m.filterIdx])
	m.selection = 0
	m.status = m.styles.MutedText.Render("configuration reloaded")
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes the help overlay.
		m.showHelp = false

		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true

		return m, tea.Quit

	case "f1":
		m.showHelp = true
		if m.helpView == "" {
			m.helpView = renderHelp(m.contentWidth())
		}

		return m, nil

	case "tab":
		m.cycleFilter(1)

		return m, nil

	case "shift+tab":
		m.cycleFilter(-1)

		return m, nil

	case "up", "ctrl+k":
		if m.selection > 0 {
			m.selection--
		}

		return m, nil

	case "down", "ctrl+j":
		if m.selection < len(m.engine.SearchResults())-1 {
			m.selection++
		}

		return m, nil

	case "enter":
		return m, m.executeSelection()
	}

	return m.updateInput(msg)
}

// updateInput forwards msg to the text field and recomputes the engine when
// the query changed.
func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.engine.SetSearchText(m.input.Value())
		m.selection = 0
		m.status = ""
	}

	return m, cmd
}

// cycleFilter selects the next or previous filter. Exactly one filter is
// selected at a time.
func (m *Model) cycleFilter(delta int) {
	m.filterIdx = (m.filterIdx + delta + len(m.filters)) % len(m.filters)
	m.engine.SelectFilter(m.filters[m.filterIdx])
	m.selection = 0
}

// executeSelection runs the action behind the selected result. Execution is
// fire-and-forget and never fails the palette itself.
func (m *Model) executeSelection() tea.Cmd {
	results := m.engine.SearchResults()
	if m.selection >= len(results) {
		return nil
	}

	selected := results[m.selection]

	if !m.executor.CanExecute(selected.Action) {
		m.status = m.styles.ErrorText.Render("unavailable: " + selected.Title)

		return nil
	}

	m.executor.Execute(m.ctx, selected.Action)
	m.status = m.styles.SuccessText.Render("ran " + selected.Title)
	m.quitting = true

	return tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		if m.status != "" {
			return m.status + "\n"
		}

		return ""
	}

	if m.showHelp {
		return m.helpView
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("palett"))
	b.WriteString("  ")
	b.WriteString(m.styles.Category.Render(m.filterLabel()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return m.styles.Border.Padding(1, 2).Render(b.String())
}

// filterLabel renders the selected filter name in title case.
func (m *Model) filterLabel() string {
	name := m.filters[m.filterIdx].Name
	if name == "" {
		name = "all"
	}

	return cases.Title(language.English).String(name)
}

// renderResults renders the visible slice of search results.
func (m *Model) renderResults() string {
	results := m.engine.SearchResults()
	if m.input.Value() == "" {
		return m.styles.MutedText.Render("Start typing to search applications and pinned commands.")
	}

	if len(results) == 0 {
		return m.styles.MutedText.Render("No matches.")
	}

	first := 0
	if m.selection >= maxVisibleResults {
		first = m.selection - maxVisibleResults + 1
	}

	rows := make([]string, 0, maxVisibleResults)

	for i := first; i < len(results) && i < first+maxVisibleResults; i++ {
		rows = append(rows, m.renderRow(results[i], i == m.selection))
	}

	return strings.Join(rows, "\n")
}

// renderRow renders one result line, truncated to the content width.
func (m *Model) renderRow(result catalog.SearchResult, selected bool) string {
	label := fmt.Sprintf("%s — %s", result.Title, result.Subtitle)
	category := cases.Title(language.English).String(result.Category)

	width := m.contentWidth()
	categoryWidth := runewidth.StringWidth(category) + 2

	if runewidth.StringWidth(label) > width-categoryWidth {
		label = runewidth.Truncate(label, width-categoryWidth-1, "…")
	}

	gap := width - runewidth.StringWidth(label) - runewidth.StringWidth(category)
	if gap < 1 {
		gap = 1
	}

	row := label + strings.Repeat(" ", gap) + category

	if selected {
		return m.styles.Selected.Render(row)
	}

	return m.styles.Unselected.Render(row)
}

// renderFooter renders the key hints.
func (m *Model) renderFooter() string {
	hints := []string{
		m.styles.Keybinding("enter", "run"),
		m.styles.Keybinding("tab", "filter"),
		m.styles.Keybinding("f1", "help"),
		m.styles.Keybinding("esc", "quit"),
	}

	footer := strings.Join(hints, "  ")
	if m.status != "" {
		footer = m.status + "  " + footer
	}

	return footer
}

// contentWidth returns the usable width inside the border.
func (m *Model) contentWidth() int {
	width := m.width - chromePadding
	if width < minContentWidth {
		return minContentWidth
	}

	return width
}

// Launch runs the palette until the user quits or executes a result. When
// Deps.ConfigPath is set, configuration changes are watched for the lifetime
// of the program and applied through ConfigReloadedMsg.
func Launch(ctx context.Context, deps Deps) error {
	program := tea.NewProgram(
		NewModel(ctx, deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if deps.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go watchConfig(watchCtx, deps.ConfigPath, program)
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("palette failed: %w", err)
	}

	return nil
}

// watchConfig rebinds the configuration on every file change and hands the
// result to the program. Load or watch failures are ignored; the palette
// keeps its current state.
func watchConfig(ctx context.Context, path string, program *tea.Program) {
	_ = config.Watch(ctx, path, func() {
		doc, err := config.Load(path)
		if err != nil {
			return
		}

		bound := doc.Bind()
		program.Send(ConfigReloadedMsg{Pinned: bound.SearchSet(), Filters: bound.Filters})
	})
}
