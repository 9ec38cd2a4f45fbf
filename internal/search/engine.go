// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package search maintains the derived result lists of the launcher: the
// filtered application list and the combined search results.
package search

import (
	"slices"

	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/stringutil"
)

// PinnedCategory is the category label stamped onto pinned-command results.
const PinnedCategory = "Pinned"

// Engine owns the derived collections. It is single-goroutine by contract:
// every setter runs synchronously on the interaction goroutine and rebuilds
// both lists in full, O(n) per keystroke, with no incremental index.
type Engine struct {
	applications []catalog.ApplicationItem
	pinned       []catalog.PinnedCommand
	searchText   string
	selected     filter.AppFilter

	filtered []catalog.ApplicationItem
	results  []catalog.SearchResult
}

// NewEngine creates an engine with no items, empty search text, and the
// match-all filter selected.
func NewEngine() *Engine {
	engine := &Engine{selected: filter.All()}
	engine.recompute()

	return engine
}

// SetApplications replaces the source application set and rebuilds.
func (e *Engine) SetApplications(items []catalog.ApplicationItem) {
	e.applications = slices.Clone(items)
	e.recompute()
}

// SetPinned replaces the pinned commands and rebuilds.
func (e *Engine) SetPinned(pinned []catalog.PinnedCommand) {
	e.pinned = slices.Clone(pinned)
	e.recompute()
}

// SetSearchText replaces the query text and rebuilds.
func (e *Engine) SetSearchText(text string) {
	e.searchText = text
	e.recompute()
}

// SelectFilter replaces the selected filter and rebuilds. Exactly one filter
// is selected at a time.
func (e *Engine) SelectFilter(selected filter.AppFilter) {
	e.selected = selected
	e.recompute()
}

// SearchText returns the current query text.
func (e *Engine) SearchText() string {
	return e.searchText
}

// SelectedFilter returns the currently selected filter.
func (e *Engine) SelectedFilter() filter.AppFilter {
	return e.selected
}

// FilteredApplications returns the application items passing both the title
// test and the selected filter. The slice is owned by the engine and valid
// until the next rebuild.
func (e *Engine) FilteredApplications() []catalog.ApplicationItem {
	return e.filtered
}

// SearchResults returns the combined result list for the current text:
// matching applications in source order, then matching pinned commands.
func (e *Engine) SearchResults() []catalog.SearchResult {
	return e.results
}

// recompute rebuilds both derived lists from scratch.
func (e *Engine) recompute() {
	filtered := make([]catalog.ApplicationItem, 0, len(e.applications))

	for _, item := range e.applications {
		if e.searchText != "" && !stringutil.ContainsIgnoreCase(item.Title, e.searchText) {
			continue
		}

		if !e.selected.Matches(item) {
			continue
		}

		filtered = append(filtered, item)
	}

	e.filtered = filtered

	if e.searchText == "" {
		e.results = nil

		return
	}

	results := make([]catalog.SearchResult, 0, len(e.filtered))

	// All matching applications first, in the iteration order of the source
	// set. No relevance ranking and no de-duplication.
	for _, item := range e.applications {
		if !stringutil.ContainsIgnoreCase(item.Title, e.searchText) {
			continue
		}

		results = append(results, catalog.SearchResult{
			Icon:     item.Icon,
			Title:    item.Title,
			Subtitle: item.Source,
			Category: item.Category,
			Action:   item.Action,
		})
	}

	for _, pinned := range e.pinned {
		if !stringutil.ContainsIgnoreCase(pinned.Title, e.searchText) {
			continue
		}

		results = append(results, catalog.SearchResult{
			Icon:     pinned.Icon,
			Title:    pinned.Title,
			Subtitle: pinned.Description,
			Category: PinnedCategory,
			Action:   pinned.Action,
		})
	}

	e.results = results
}
