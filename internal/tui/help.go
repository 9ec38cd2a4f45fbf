// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"github.com/charmbracelet/glamour"
)

// helpMarkdown documents the palette keys and the command grammar.
const helpMarkdown = `# palett

Type to search applications and pinned commands. The result list is rebuilt
on every keystroke: matching applications first, pinned commands last.

## Keys

| Key | Action |
|-----|--------|
| enter | run the selected result |
| tab / shift+tab | cycle application filters |
| up / down | move the selection |
| f1 | toggle this help |
| esc | quit |

## Command grammar

- ` + "`shell:<command>`" + ` runs the command through the shell interpreter
- ` + "`workflow:<a> && <b>`" + ` runs steps in order; unavailable steps are skipped
- anything else is shell-opened as a path

Filter expressions take the form ` + "`property:value`" + ` with properties
` + "`source`" + ` and ` + "`category`" + `; any other property falls back to a
title search over the value.
`

// renderHelp renders the help markdown for the given width. Rendering
// failure degrades to the raw markdown; help must never break the palette.
func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return rendered
}
