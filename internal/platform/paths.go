// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
)

// GetXDGConfigHome returns the XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns the XDG config directory with a custom
// environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetXDGDataHome returns the XDG data directory.
func GetXDGDataHome() string {
	return GetXDGDataHomeWithEnv(os.Getenv("XDG_DATA_HOME"))
}

// GetXDGDataHomeWithEnv returns the XDG data directory with a custom
// environment override for testing.
func GetXDGDataHomeWithEnv(xdgDataHome string) string {
	if xdgDataHome != "" {
		return xdgDataHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}

	return ""
}

// ApplicationDirs returns the directories scanned for desktop entries, in
// precedence order: the user's data dir first, then the system dirs.
func ApplicationDirs() []string {
	dirs := []string{filepath.Join(GetXDGDataHome(), "applications")}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	for _, dir := range filepath.SplitList(dataDirs) {
		if dir == "" {
			continue
		}

		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	return dirs
}
