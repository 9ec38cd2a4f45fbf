// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform wraps process spawning and filesystem checks behind the
// executor's ports.
package platform

import (
	"context"
	"os"
	"os/exec"
	"runtime"
)

// ProcessSpawner starts external processes fire-and-forget: both methods
// return as soon as the process has started and never wait for it.
type ProcessSpawner struct{}

// NewProcessSpawner creates the real spawner.
func NewProcessSpawner() *ProcessSpawner {
	return &ProcessSpawner{}
}

// Open starts the OS shell-open mechanism for path.
func (s *ProcessSpawner) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/C", "start", "", path)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}

	return detach(cmd)
}

// Shell hands command to the shell interpreter as a single argument.
// Embedded quotes are passed through without escaping; the command string
// comes from the user's own configuration.
func (s *ProcessSpawner) Shell(ctx context.Context, command string) error {
	var cmd *exec.Cmd

	if runtime.GOOS == "windows" {
		//nolint:gosec // G204: intentional execution of a configured command string
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		//nolint:gosec // G204: intentional execution of a configured command string
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	return detach(cmd)
}

// detach starts cmd and releases the process handle: the launcher takes no
// further interest in the spawned process's lifetime or exit status.
func detach(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	return cmd.Process.Release()
}

// FileExists checks if a path exists on disk. This is the precondition used
// by launch actions.
func FileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// CommandExists checks if a command is available on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
