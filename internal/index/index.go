// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package index supplies the application set: it scans desktop-entry
// directories and produces an ordered sequence of launchable items. The
// index is rebuilt on demand, never patched incrementally.
package index

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/platform"
)

// Labels stamped onto every indexed item. The category and source are fixed
// constants by contract.
const (
	DefaultCategory = "Application"
	DefaultSource   = "Desktop Entry"
)

// Indexer scans a fixed set of directories for .desktop files.
type Indexer struct {
	dirs []string
}

// NewIndexer creates an indexer over dirs, defaulting to the XDG application
// directories when none are given.
func NewIndexer(dirs ...string) *Indexer {
	if len(dirs) == 0 {
		dirs = platform.ApplicationDirs()
	}

	return &Indexer{dirs: dirs}
}

// Index walks the directories and returns the applications found, sorted by
// title. Unreadable directories and malformed entries are silently skipped:
// a partial index is better than none.
func (ix *Indexer) Index() []catalog.ApplicationItem {
	var items []catalog.ApplicationItem

	for _, dir := range ix.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if item, ok := parseDesktopEntry(path); ok {
				items = append(items, item)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})

	return items
}

// parseDesktopEntry extracts Name, Exec and Icon from the [Desktop Entry]
// section. Hidden entries (NoDisplay=true) and entries without a name or
// exec line are rejected.
func parseDesktopEntry(path string) (catalog.ApplicationItem, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.ApplicationItem{}, false
	}

	var name, execLine, icon string

	inDesktopEntry := false

	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}

		if line[0] == '[' && strings.HasSuffix(line, "]") {
			inDesktopEntry = line == "[Desktop Entry]"

			continue
		}

		if !inDesktopEntry {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			if name == "" {
				name = value
			}
		case "Exec":
			if execLine == "" {
				execLine = value
			}
		case "Icon":
			if icon == "" {
				icon = value
			}
		case "NoDisplay":
			if strings.EqualFold(value, "true") {
				return catalog.ApplicationItem{}, false
			}
		}
	}

	if name == "" || execLine == "" {
		return catalog.ApplicationItem{}, false
	}

	return catalog.ApplicationItem{
		Title:    name,
		Category: DefaultCategory,
		Source:   DefaultSource,
		Icon:     icon,
		Action:   action.Launch(executablePath(execLine)),
	}, true
}

// executablePath strips desktop-entry field codes (%f, %u, ...) and
// surrounding quotes from an Exec line, leaving the program path.
func executablePath(execLine string) string {
	fields := strings.Fields(execLine)
	kept := make([]string, 0, len(fields))

	for _, field := range fields {
		if strings.HasPrefix(field, "%") {
			continue
		}

		kept = append(kept, strings.Trim(field, `"`))
	}

	if len(kept) == 0 {
		return execLine
	}

	return strings.Join(kept, " ")
}
