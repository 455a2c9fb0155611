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

// Package desktop talks to the desktop environment: refreshing the
// launcher database and starting installed web apps.
package desktop

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/rs/zerolog/log"
)

// UpdateDatabaseCmd rebuilds the MIME cache of an applications dir. Most
// desktops notice new entries without it, so it is best effort.
const UpdateDatabaseCmd = "update-desktop-database"

type Desktop struct {
	exec    command.Executor
	builder *launcher.Builder
	appsDir string
}

func New(exec command.Executor, builder *launcher.Builder, appsDir string) *Desktop {
	if exec == nil {
		exec = &command.RealExecutor{}
	}
	if builder == nil {
		builder = &launcher.Builder{}
	}
	return &Desktop{exec: exec, builder: builder, appsDir: appsDir}
}

// Refresh runs update-desktop-database on the applications dir if it is
// installed. A missing tool is not an error.
func (d *Desktop) Refresh(ctx context.Context) error {
	path, err := d.exec.LookPath(UpdateDatabaseCmd)
	if err != nil {
		log.Debug().Err(err).Msgf("%s not available, skipping refresh", UpdateDatabaseCmd)
		return nil
	}
	if err := d.exec.Run(ctx, path, d.appsDir); err != nil {
		return fmt.Errorf("failed to refresh desktop database: %w", err)
	}
	log.Debug().Msgf("refreshed desktop database: %s", d.appsDir)
	return nil
}

// Launch starts desc in b without waiting for the browser to exit.
func (d *Desktop) Launch(ctx context.Context, desc *webapp.Descriptor, b *browsers.Browser) error {
	entry, err := d.builder.Build(desc, b)
	if err != nil {
		return fmt.Errorf("failed to build launch command: %w", err)
	}
	log.Info().Msgf("launching %s: %s", desc.Name, entry.Exec())
	if err := d.exec.Start(ctx, entry.Argv[0], entry.Argv[1:]...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", desc.Name, err)
	}
	return nil
}
