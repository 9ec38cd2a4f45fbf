// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides string matching helpers shared by the filter
// and search packages.
package stringutil

import "strings"

// ContainsIgnoreCase checks if text contains substr (case-insensitive).
func ContainsIgnoreCase(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}

// EqualsIgnoreCase checks if two strings are equal ignoring case.
func EqualsIgnoreCase(a, b string) bool {
	return strings.EqualFold(a, b)
}
