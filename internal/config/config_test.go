// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palett-sh/palett/internal/action"
)

const sampleConfig = `
[[pinned]]
title = "Note Taker"
description = "Open the note taker"
command = "shell:notes --new"

[[macro_groups]]
name = "morning"
commands = ["shell:email --sync", "dashboard.html"]

[[recent]]
title = "Report"
command = "C:\\docs\\report.xlsx"

[[app_filters]]
name = "Menu"
expression = "source:Start Menu"

[[app_filters]]
name = "Everything"
expression = ""

[[tile_groups]]
name = "Favourites"

[[tile_groups.tiles]]
title = "Browser"
command = "firefox"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadMissingFileYieldsEmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Empty(t, doc.Pinned)
	assert.Empty(t, doc.AppFilters)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "[[pinned\nbroken")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadAndBind(t *testing.T) {
	t.Parallel()

	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	bound := doc.Bind()

	require.Len(t, bound.Pinned, 1)
	assert.Equal(t, "Note Taker", bound.Pinned[0].Title)
	assert.Equal(t, action.Shell("notes --new"), bound.Pinned[0].Action)

	require.Len(t, bound.Macros, 1)
	require.Equal(t, action.KindComposite, bound.Macros[0].Action.Kind)
	require.Len(t, bound.Macros[0].Action.Steps, 2)
	assert.Equal(t, action.Shell("email --sync"), bound.Macros[0].Action.Steps[0])
	assert.Equal(t, action.Launch("dashboard.html"), bound.Macros[0].Action.Steps[1])

	require.Len(t, bound.Recent, 1)
	assert.Equal(t, action.Launch(`C:\docs\report.xlsx`), bound.Recent[0].Action)

	require.Len(t, bound.Filters, 2)
	assert.True(t, bound.Filters[0].HasPredicate())
	assert.False(t, bound.Filters[1].HasPredicate(), "blank expression binds to a match-all filter")

	require.Len(t, bound.Tiles, 1)
	require.Len(t, bound.Tiles[0].Tiles, 1)
	assert.Equal(t, action.Launch("firefox"), bound.Tiles[0].Tiles[0].Action)
}

func TestSearchSetFlattensAllCommandSections(t *testing.T) {
	t.Parallel()

	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	set := doc.Bind().SearchSet()

	require.Len(t, set, 4, "pinned, macro group, tile and recent entry")
	assert.Equal(t, "Note Taker", set[0].Title)
	assert.Equal(t, "morning", set[1].Title)
	assert.Equal(t, "Macro group", set[1].Description)
	assert.Equal(t, "Browser", set[2].Title)
	assert.Equal(t, "Favourites", set[2].Description, "tiles carry their group name")
	assert.Equal(t, "Report", set[3].Title)
	assert.Equal(t, "Recent", set[3].Description)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", FileName)
	doc := &Document{
		Pinned: []PinnedEntry{{Title: "Terminal", Description: "Open a terminal", Command: "shell:x-terminal-emulator"}},
		AppFilters: []FilterEntry{
			{Name: "Menu", Expression: "source:Start Menu"},
		},
	}

	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, doc.Pinned, loaded.Pinned)
	assert.Equal(t, doc.AppFilters, loaded.AppFilters)
}

func TestWatchSignalsOnWrite(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, sampleConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig+"\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the write")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}
