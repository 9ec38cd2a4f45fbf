// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog defines the item types flowing between the indexer, the
// configuration document, and the search engine.
package catalog

import "github.com/palett-sh/palett/internal/action"

// ApplicationItem is one launchable entry supplied by the indexing
// collaborator. It is an immutable value with structural identity: two items
// with the same fields are the same item.
type ApplicationItem struct {
	Title    string
	Category string
	Source   string
	Icon     string
	Action   action.Action
}

// PinnedCommand is a user-pinned entry from the configuration document.
type PinnedCommand struct {
	Title       string
	Description string
	Icon        string
	Action      action.Action
}

// SearchResult is a display-only projection of an application or pinned
// command. Result lists are rebuilt on every query, never patched.
type SearchResult struct {
	Icon     string
	Title    string
	Subtitle string
	Category string
	Action   action.Action
}
