// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/stringutil"
)

func testApplications() []catalog.ApplicationItem {
	return []catalog.ApplicationItem{
		{Title: "Notepad", Category: "Accessories", Source: "Start Menu", Action: action.Launch("notepad.exe")},
		{Title: "Calculator", Category: "Accessories", Source: "Start Menu", Action: action.Launch("calc.exe")},
		{Title: "Firefox", Category: "Internet", Source: "Desktop", Action: action.Launch("firefox.exe")},
	}
}

func TestFilteredApplicationsWithoutTextOrFilter(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications(testApplications())

	assert.Len(t, engine.FilteredApplications(), 3, "match-all filter and empty text keep every item")
}

func TestFilteredApplicationsIsSubsetSatisfyingBothTests(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	apps := testApplications()
	engine.SetApplications(apps)
	engine.SelectFilter(filter.NewAppFilter("Menu", "source:Start Menu"))
	engine.SetSearchText("a")

	filtered := engine.FilteredApplications()
	require.NotEmpty(t, filtered)

	for _, item := range filtered {
		assert.Contains(t, apps, item, "filtered list must be a subset of the source set")
		assert.True(t, stringutil.ContainsIgnoreCase(item.Title, "a"))
		assert.True(t, stringutil.EqualsIgnoreCase(item.Source, "Start Menu"))
	}

	// Firefox matches the text but not the filter.
	assert.Len(t, filtered, 2)
}

func TestFilteredApplicationsRebuiltOnEveryChange(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications(testApplications())

	engine.SetSearchText("fire")
	require.Len(t, engine.FilteredApplications(), 1)
	assert.Equal(t, "Firefox", engine.FilteredApplications()[0].Title)

	engine.SetSearchText("")
	assert.Len(t, engine.FilteredApplications(), 3)

	engine.SelectFilter(filter.NewAppFilter("Net", "category:Internet"))
	require.Len(t, engine.FilteredApplications(), 1)
	assert.Equal(t, "Firefox", engine.FilteredApplications()[0].Title)

	engine.SetApplications(nil)
	assert.Empty(t, engine.FilteredApplications())
}

func TestSearchResultsEmptyWhenTextEmpty(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications(testApplications())
	engine.SetPinned([]catalog.PinnedCommand{{Title: "Note Taker"}})

	assert.Empty(t, engine.SearchResults(), "results are non-empty only when search text is non-empty")
}

// Matching applications come first in source order, then matching pinned
// commands with category "Pinned" and the description as subtitle.
func TestSearchResultsOrdering(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications([]catalog.ApplicationItem{
		{Title: "Notepad", Category: "Accessories", Source: "Start Menu"},
	})
	engine.SetPinned([]catalog.PinnedCommand{
		{Title: "Note Taker", Description: "Open the note taker", Action: action.Shell("notes")},
	})

	engine.SetSearchText("note")

	results := engine.SearchResults()
	require.Len(t, results, 2)

	assert.Equal(t, "Notepad", results[0].Title)
	assert.Equal(t, "Accessories", results[0].Category)
	assert.Equal(t, "Start Menu", results[0].Subtitle, "application subtitle carries its source")

	assert.Equal(t, "Note Taker", results[1].Title)
	assert.Equal(t, PinnedCategory, results[1].Category)
	assert.Equal(t, "Open the note taker", results[1].Subtitle, "pinned subtitle carries its description")
}

// The result list ignores the selected filter: it is driven by search text
// alone, while the filtered application list honors both.
func TestSearchResultsIgnoreSelectedFilter(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications(testApplications())
	engine.SelectFilter(filter.NewAppFilter("Net", "category:Internet"))
	engine.SetSearchText("calc")

	require.Len(t, engine.SearchResults(), 1)
	assert.Equal(t, "Calculator", engine.SearchResults()[0].Title)
	assert.Empty(t, engine.FilteredApplications())
}

func TestSearchResultsNoDeduplication(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications([]catalog.ApplicationItem{
		{Title: "Notepad", Source: "Start Menu"},
		{Title: "Notepad", Source: "Start Menu"},
	})
	engine.SetSearchText("note")

	assert.Len(t, engine.SearchResults(), 2)
}

func TestSearchResultsCaseInsensitive(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	engine.SetApplications(testApplications())
	engine.SetSearchText("NOTEPAD")

	require.Len(t, engine.SearchResults(), 1)
	assert.Equal(t, "Notepad", engine.SearchResults()[0].Title)
}
