// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads and saves the launcher's configuration document and
// binds its raw action and filter strings into executable form.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/palett-sh/palett/internal/action"
	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/filter"
	"github.com/palett-sh/palett/internal/platform"
)

// FileName is the configuration file name under the palett config dir.
const FileName = "palett.toml"

// Document is the on-disk shape of the configuration: five ordered sections,
// each entry carrying raw action or filter-expression strings. The core
// treats every such string as opaque input to the parsers.
type Document struct {
	Pinned      []PinnedEntry `toml:"pinned"`
	MacroGroups []MacroGroup  `toml:"macro_groups"`
	Recent      []RecentEntry `toml:"recent"`
	AppFilters  []FilterEntry `toml:"app_filters"`
	TileGroups  []TileGroup   `toml:"tile_groups"`
}

// PinnedEntry is a user-pinned command.
type PinnedEntry struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Icon        string `toml:"icon,omitempty"`
	Command     string `toml:"command"`
}

// MacroGroup is a named ordered list of command strings executed as one
// composite.
type MacroGroup struct {
	Name     string   `toml:"name"`
	Commands []string `toml:"commands"`
}

// RecentEntry is a previously executed command.
type RecentEntry struct {
	Title   string `toml:"title"`
	Command string `toml:"command"`
}

// FilterEntry names a raw filter expression.
type FilterEntry struct {
	Name       string `toml:"name"`
	Expression string `toml:"expression"`
}

// TileGroup is a named group of launcher tiles.
type TileGroup struct {
	Name  string `toml:"name"`
	Tiles []Tile `toml:"tiles"`
}

// Tile is a single launcher tile.
type Tile struct {
	Title   string `toml:"title"`
	Icon    string `toml:"icon,omitempty"`
	Command string `toml:"command"`
}

// Bound is the document after resolving every raw string through the action
// and filter grammars.
type Bound struct {
	Pinned  []catalog.PinnedCommand
	Macros  []BoundMacro
	Recent  []BoundRecent
	Filters []filter.AppFilter
	Tiles   []BoundTileGroup
}

// BoundMacro is a macro group resolved into a single composite action.
type BoundMacro struct {
	Name   string
	Action action.Action
}

// BoundRecent is a recent entry with its resolved action.
type BoundRecent struct {
	Title  string
	Action action.Action
}

// BoundTileGroup is a tile group with resolved tile actions.
type BoundTileGroup struct {
	Name  string
	Tiles []catalog.PinnedCommand
}

// SearchSet flattens the bound document into the searchable command set:
// pinned commands first, then macro groups, tile groups and recent entries.
func (b Bound) SearchSet() []catalog.PinnedCommand {
	set := make([]catalog.PinnedCommand, 0, len(b.Pinned)+len(b.Macros)+len(b.Tiles)+len(b.Recent))
	set = append(set, b.Pinned...)

	for _, macro := range b.Macros {
		set = append(set, catalog.PinnedCommand{
			Title:       macro.Name,
			Description: "Macro group",
			Action:      macro.Action,
		})
	}

	for _, group := range b.Tiles {
		for _, tile := range group.Tiles {
			tile.Description = group.Name

			set = append(set, tile)
		}
	}

	for _, recent := range b.Recent {
		set = append(set, catalog.PinnedCommand{
			Title:       recent.Title,
			Description: "Recent",
			Action:      recent.Action,
		})
	}

	return set
}

// DefaultPath returns the configuration file path under the XDG config home.
func DefaultPath() string {
	return filepath.Join(platform.GetXDGConfigHome(), "palett", FileName)
}

// Load reads and parses the configuration document at path. A missing file
// is not an error: it yields an empty document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &doc, nil
}

// Save writes the document to path, creating the parent directory when
// needed.
func Save(path string, doc *Document) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Bind resolves every raw action string and filter expression in the
// document. Binding never fails: unparseable action strings degrade within
// the grammar itself and blank filter expressions become match-all filters.
func (d *Document) Bind() Bound {
	bound := Bound{
		Pinned:  make([]catalog.PinnedCommand, 0, len(d.Pinned)),
		Macros:  make([]BoundMacro, 0, len(d.MacroGroups)),
		Recent:  make([]BoundRecent, 0, len(d.Recent)),
		Filters: make([]filter.AppFilter, 0, len(d.AppFilters)),
		Tiles:   make([]BoundTileGroup, 0, len(d.TileGroups)),
	}

	for _, entry := range d.Pinned {
		bound.Pinned = append(bound.Pinned, catalog.PinnedCommand{
			Title:       entry.Title,
			Description: entry.Description,
			Icon:        entry.Icon,
			Action:      action.Resolve(entry.Command),
		})
	}

	for _, group := range d.MacroGroups {
		steps := make([]action.Action, 0, len(group.Commands))
		for _, command := range group.Commands {
			steps = append(steps, action.Resolve(command))
		}

		bound.Macros = append(bound.Macros, BoundMacro{
			Name:   group.Name,
			Action: action.Composite(steps...),
		})
	}

	for _, entry := range d.Recent {
		bound.Recent = append(bound.Recent, BoundRecent{
			Title:  entry.Title,
			Action: action.Resolve(entry.Command),
		})
	}

	for _, entry := range d.AppFilters {
		bound.Filters = append(bound.Filters, filter.NewAppFilter(entry.Name, entry.Expression))
	}

	for _, group := range d.TileGroups {
		tiles := make([]catalog.PinnedCommand, 0, len(group.Tiles))
		for _, tile := range group.Tiles {
			tiles = append(tiles, catalog.PinnedCommand{
				Title:  tile.Title,
				Icon:   tile.Icon,
				Action: action.Resolve(tile.Command),
			})
		}

		bound.Tiles = append(bound.Tiles, BoundTileGroup{Name: group.Name, Tiles: tiles})
	}

	return bound
}
