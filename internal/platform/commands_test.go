// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "target")

	if FileExists(path) {
		t.Errorf("FileExists(%q) = true before creation", path)
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !FileExists(path) {
		t.Errorf("FileExists(%q) = false after creation", path)
	}
}

func TestGetXDGConfigHomeWithEnv(t *testing.T) {
	t.Parallel()

	if got := GetXDGConfigHomeWithEnv("/custom/config"); got != "/custom/config" {
		t.Errorf("GetXDGConfigHomeWithEnv override = %q", got)
	}

	if got := GetXDGConfigHomeWithEnv(""); got == "" {
		t.Error("GetXDGConfigHomeWithEnv fallback should not be empty")
	}
}

func TestGetXDGDataHomeWithEnv(t *testing.T) {
	t.Parallel()

	if got := GetXDGDataHomeWithEnv("/custom/data"); got != "/custom/data" {
		t.Errorf("GetXDGDataHomeWithEnv override = %q", got)
	}
}

func TestApplicationDirsIncludesUserDir(t *testing.T) {
	t.Parallel()

	dirs := ApplicationDirs()
	if len(dirs) == 0 {
		t.Fatal("ApplicationDirs returned no directories")
	}

	if filepath.Base(dirs[0]) != "applications" {
		t.Errorf("first dir %q is not an applications dir", dirs[0])
	}
}
