// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/search"
)

// fakeExecutor records executed actions without spawning anything.
type fakeExecutor struct {
	executed []action.Action
	blocked  bool
}

func (f *fakeExecutor) Execute(_ context.Context, act action.Action) {
	f.executed = append(f.executed, act)
}

func (f *fakeExecutor) CanExecute(_ action.Action) bool {
	return !f.blocked
}

func newTestModel(executor Executor, filters ...filter.AppFilter) *Model {
	engine := search.NewEngine()
	engine.SetApplications([]catalog.ApplicationItem{
		{Title: "Notepad", Category: "Accessories", Source: "Start Menu", Action: action.Launch("notepad.exe")},
		{Title: "Firefox", Category: "Internet", Source: "Desktop", Action: action.Launch("firefox")},
	})
	engine.SetPinned([]catalog.PinnedCommand{
		{Title: "Note Taker", Description: "Open notes", Action: action.Shell("notes")},
	})

	model := NewModel(context.Background(), Deps{
		Engine:   engine,
		Executor: executor,
		Filters:  filters,
	})
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	return model
}

func typeText(model *Model, text string) {
	for _, r := range text {
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingRecomputesResults(t *testing.T) {
	t.Parallel()

	model := newTestModel(&fakeExecutor{})

	typeText(model, "note")

	results := model.engine.SearchResults()
	require.Len(t, results, 2)
	assert.Equal(t, "Notepad", results[0].Title)
	assert.Equal(t, "Note Taker", results[1].Title)
}

func TestEnterExecutesSelection(t *testing.T) {
	t.Parallel()

	executor := &fakeExecutor{}
	model := newTestModel(executor)

	typeText(model, "fire")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, executor.executed, 1)
	assert.Equal(t, action.Launch("firefox"), executor.executed[0])
	assert.True(t, model.quitting, "palette closes after executing")
}

func TestEnterOnUnavailableResultDoesNotExecute(t *testing.T) {
	t.Parallel()

	executor := &fakeExecutor{blocked: true}
	model := newTestModel(executor)

	typeText(model, "fire")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, executor.executed)
	assert.False(t, model.quitting)
}

func TestSelectionMovesWithinBounds(t *testing.T) {
	t.Parallel()

	model := newTestModel(&fakeExecutor{})

	typeText(model, "note")
	require.Len(t, model.engine.SearchResults(), 2)

	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.selection)

	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.selection, "selection stops at the last result")

	model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.selection, "selection stops at the first result")
}

func TestTabCyclesFilters(t *testing.T) {
	t.Parallel()

	menu := filter.NewAppFilter("Menu", "source:Start Menu")
	model := newTestModel(&fakeExecutor{}, menu)

	require.Len(t, model.filters, 2, "match-all filter is always first")
	assert.Len(t, model.engine.FilteredApplications(), 2)

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, model.engine.FilteredApplications(), 1)
	assert.Equal(t, "Notepad", model.engine.FilteredApplications()[0].Title)

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Len(t, model.engine.FilteredApplications(), 2, "cycling wraps back to match-all")
}

func TestEscQuitsWithoutExecuting(t *testing.T) {
	t.Parallel()

	executor := &fakeExecutor{}
	model := newTestModel(executor)

	typeText(model, "note")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.NotNil(t, cmd)
	assert.True(t, model.quitting)
	assert.Empty(t, executor.executed)
}

func TestHelpOverlayToggles(t *testing.T) {
	t.Parallel()

	model := newTestModel(&fakeExecutor{})

	model.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, model.showHelp)
	assert.NotEmpty(t, model.View())

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, model.showHelp, "any key closes help")
}

func TestConfigReloadReplacesPinnedAndFilters(t *testing.T) {
	t.Parallel()

	model := newTestModel(&fakeExecutor{}, filter.NewAppFilter("Menu", "source:Start Menu"))

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, model.engine.FilteredApplications(), 1)

	model.Update(ConfigReloadedMsg{
		Pinned: []catalog.PinnedCommand{
			{Title: "Lock Screen", Description: "Lock the session", Action: action.Shell("loginctl lock-session")},
		},
		Filters: []filter.AppFilter{filter.NewAppFilter("Desktop", "source:Desktop")},
	})

	require.Len(t, model.filters, 2, "match-all plus the reloaded filter")

	typeText(model, "lock")
	results := model.engine.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "Lock Screen", results[0].Title)
}

func TestViewShowsPromptBeforeTyping(t *testing.T) {
	t.Parallel()

	model := newTestModel(&fakeExecutor{})

	view := model.View()
	assert.Contains(t, view, "Start typing")
}
