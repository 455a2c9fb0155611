// Zaparoo WebApps
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo WebApps.
//
// Zaparoo WebApps is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo WebApps is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo WebApps.  If not, see <http://www.gnu.org/licenses/>.

// Package command wraps os/exec behind an interface so desktop integration
// can be tested without spawning real processes.
package command

import (
	"context"
	"fmt"
	"os/exec"
)

// Executor runs external programs.
type Executor interface {
	// Run executes a command and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error

	// Start launches a command without waiting for it. The child is not tied
	// to ctx, so it keeps running after the caller returns.
	Start(ctx context.Context, name string, args ...string) error

	// LookPath reports the resolved path of an executable on $PATH.
	LookPath(name string) (string, error)
}

// RealExecutor is the os/exec backed Executor.
type RealExecutor struct{}

//nolint:wrapcheck // exec errors already carry the command name
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("not starting %s: %w", name, err)
	}
	cmd := exec.Command(name, args...) //nolint:gosec,noctx // detached by design of Start
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release %s: %w", name, err)
	}
	return nil
}

//nolint:wrapcheck // exec.ErrNotFound is checked by callers
func (*RealExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
