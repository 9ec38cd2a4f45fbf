// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package filter parses filter expressions ("property:value") into
// predicates over application items.
package filter

import (
	"strings"

	"github.com/palett-sh/palett/internal/catalog"
	"github.com/palett-sh/palett/internal/stringutil"
)

// Kind discriminates the closed set of predicate variants.
type Kind int

// Predicate variants.
const (
	MatchAlways Kind = iota
	MatchSource
	MatchCategory
	MatchTitleSubstring
)

// Recognized property names. Anything else degrades to a title search over
// the value portion.
const (
	PropertySource   = "source"
	PropertyCategory = "category"
)

// Predicate is a pure test over an application item. The zero value matches
// everything.
type Predicate struct {
	Kind  Kind
	Value string
}

// Parse converts a raw filter expression into a predicate. Blank input
// returns (Always, false); every other input parses successfully:
//   - "source:v" and "category:v" compare the respective field for
//     case-insensitive equality with v
//   - "anything-else:v" degrades to a case-insensitive title-substring test
//     over v only
//   - an expression without ':' is a title-substring test over the whole
//     expression
func Parse(expr string) (Predicate, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Predicate{Kind: MatchAlways}, false
	}

	property, value, found := strings.Cut(expr, ":")
	if !found {
		return Predicate{Kind: MatchTitleSubstring, Value: expr}, true
	}

	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)

	switch property {
	case PropertySource:
		return Predicate{Kind: MatchSource, Value: value}, true
	case PropertyCategory:
		return Predicate{Kind: MatchCategory, Value: value}, true
	default:
		return Predicate{Kind: MatchTitleSubstring, Value: value}, true
	}
}

// Matches evaluates the predicate against item.
func (p Predicate) Matches(item catalog.ApplicationItem) bool {
	switch p.Kind {
	case MatchSource:
		return stringutil.EqualsIgnoreCase(item.Source, p.Value)
	case MatchCategory:
		return stringutil.EqualsIgnoreCase(item.Category, p.Value)
	case MatchTitleSubstring:
		return stringutil.ContainsIgnoreCase(item.Title, p.Value)
	default:
		return true
	}
}

// AppFilter is a named wrapper around an optional predicate. A filter
// without a predicate matches every item.
type AppFilter struct {
	Name       string
	Expression string

	predicate *Predicate
}

// NewAppFilter builds a named filter from a raw expression. A blank
// expression yields a match-all filter.
func NewAppFilter(name, expression string) AppFilter {
	appFilter := AppFilter{Name: name, Expression: expression}

	if predicate, ok := Parse(expression); ok {
		appFilter.predicate = &predicate
	}

	return appFilter
}

// All returns the match-all filter.
func All() AppFilter {
	return AppFilter{Name: "All"}
}

// Matches reports whether item passes the filter.
func (f AppFilter) Matches(item catalog.ApplicationItem) bool {
	if f.predicate == nil {
		return true
	}

	return f.predicate.Matches(item)
}

// HasPredicate reports whether the filter narrows the item set at all.
func (f AppFilter) HasPredicate() bool {
	return f.predicate != nil
}
