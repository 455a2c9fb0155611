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

// Package cli is the command line front end: flag definitions, process
// setup and the actions each flag runs.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-webapps/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/rs/zerolog/log"
)

var ErrMissingValue = errors.New("missing flag value")

type Flags struct {
	fs *flag.FlagSet

	Install     *string
	List        *bool
	Remove      *string
	Rename      *string
	SetURL      *string
	SetBrowser  *string
	RefreshIcon *string
	Reconcile   *bool
	Browsers    *bool
	Probe       *string
	Import      *string
	Export      *string
	Launch      *string
	Version     *bool

	// modifiers
	Name     *string
	Browser  *string
	Category *string
	Params   *string
	Icon     *string
	Isolated *bool
	Navbar   *bool
	Private  *bool
	JSON     *bool
	Verbose  *bool
}

// SetupFlags defines all CLI flags on fs, the process flag set when nil.
func SetupFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	return &Flags{
		fs: fs,
		Install: fs.String(
			"install",
			"",
			"install URL as a web app",
		),
		List: fs.Bool(
			"list",
			false,
			"list installed web apps",
		),
		Remove: fs.String(
			"remove",
			"",
			"remove the web app with this id",
		),
		Rename: fs.String(
			"rename",
			"",
			"rename the web app with this id to -name",
		),
		SetURL: fs.String(
			"set-url",
			"",
			"change the URL of the web app with this id, URL follows the flags",
		),
		SetBrowser: fs.String(
			"set-browser",
			"",
			"switch the web app with this id to -browser",
		),
		RefreshIcon: fs.String(
			"refresh-icon",
			"",
			"fetch the icon of the web app with this id again",
		),
		Reconcile: fs.Bool(
			"reconcile",
			false,
			"clean up files left by interrupted operations",
		),
		Browsers: fs.Bool(
			"browsers",
			false,
			"list supported browsers found on this system",
		),
		Probe: fs.String(
			"probe",
			"",
			"print the name, color and icon candidates found for URL",
		),
		Import: fs.String(
			"import",
			"",
			"install every web app listed in a CSV file",
		),
		Export: fs.String(
			"export",
			"",
			"write installed web apps to a CSV file, - for stdout",
		),
		Launch: fs.String(
			"launch",
			"",
			"start the web app with this id",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Name: fs.String(
			"name",
			"",
			"display name, probed from the page when empty",
		),
		Browser: fs.String(
			"browser",
			"",
			"browser id or name, the configured default when empty",
		),
		Category: fs.String(
			"category",
			"",
			"desktop menu category",
		),
		Params: fs.String(
			"params",
			"",
			"extra browser command line parameters",
		),
		Icon: fs.String(
			"icon",
			"",
			"icon URL, data URI or file to use instead of the site's",
		),
		Isolated: fs.Bool(
			"isolated",
			false,
			"run in a dedicated browser profile",
		),
		Navbar: fs.Bool(
			"navbar",
			false,
			"show the browser navigation bar",
		),
		Private: fs.Bool(
			"private",
			false,
			"open in a private window",
		),
		JSON: fs.Bool(
			"json",
			false,
			"print -list output as JSON",
		),
		Verbose: fs.Bool(
			"verbose",
			false,
			"also write logs to stderr",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and actions any immediate flags that don't require
// environment setup. Add any custom flags before running this.
func (f *Flags) Pre(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Printf("Zaparoo WebApps v%s\n", config.AppVersion)
		os.Exit(0)
	}
	return nil
}

// Post actions the remaining flags, which need config and logging set up.
// With no action flag it prints usage.
func (f *Flags) Post(ctx context.Context, cfg *config.Instance) error {
	if !f.Action() {
		f.fs.Usage()
		return nil
	}

	svc, stop, err := NewService(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	return f.Run(ctx, svc, os.Stdout)
}

// Setup initializes logging and the user config. Returns a user config
// object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(defaultConfig config.Values, writers []io.Writer) (*config.Instance, error) {
	err := helpers.InitLogging(helpers.StateDir(), config.LogFile, writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	helpers.SetDebugLogging(cfg.DebugLogging())

	// opt-in error reporting
	if err := telemetry.Init(telemetry.Options{
		Enabled:  cfg.ErrorReporting(),
		DSN:      cfg.ErrorReportingDSN(),
		DeviceID: cfg.DeviceID(),
		Version:  config.AppVersion,
		Flatpak:  helpers.InFlatpak(),
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}
