// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for palett.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/palett-sh/palett/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Acquire process lock to prevent multiple palett instances
	lockPath := filepath.Join(os.TempDir(), "palett.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another palett instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	app := cli.NewCLI()

	ctx := context.Background()
	if err := app.Run(ctx, os.Args); err != nil {
		exitErr := &cli.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)

		return cli.ExitGeneralError
	}

	return cli.ExitSuccess
}
