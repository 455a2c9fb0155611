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

// Package launcher builds the command line that opens a web app in its
// browser, and the desktop entry that runs it. Everything here is pure:
// nothing touches the filesystem.
package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/assets"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
)

var (
	ErrNoExec        = errors.New("browser has no executable path")
	ErrUnknownKind   = errors.New("unknown browser family")
	ErrInvalidParams = errors.New("custom parameters contain a backtick")
)

// Builder resolves profile locations for launch commands.
type Builder struct {
	// ProfilesDir holds profiles of natively installed browsers.
	ProfilesDir string
	// HomeDir is needed for flatpak profile locations.
	HomeDir string
}

// Entry is a fully built launch command.
type Entry struct {
	WMClass string
	// ProfileDir is empty when the browser runs with its default profile.
	ProfileDir string
	Argv       []string
}

// Exec returns the command as a desktop entry Exec value.
func (e *Entry) Exec() string {
	return ExecLine(e.Argv)
}

// ProfileDir is where desc keeps its own browser profile, or an empty
// string when b runs it in the browser's shared profile. Firefox family
// browsers always need a profile to apply the web app chrome.
func (bl *Builder) ProfileDir(desc *webapp.Descriptor, b *browsers.Browser) string {
	if b.Kind != browsers.KindFirefox && !desc.Isolated {
		return ""
	}
	return filepath.Join(b.ProfileRoot(bl.ProfilesDir, bl.HomeDir), desc.ID)
}

// Build returns the argv launching desc with b.
func (bl *Builder) Build(desc *webapp.Descriptor, b *browsers.Browser) (*Entry, error) {
	if b == nil || strings.TrimSpace(b.Exec) == "" {
		return nil, ErrNoExec
	}
	if strings.Contains(desc.CustomParameters, "`") {
		return nil, ErrInvalidParams
	}

	custom := strings.Fields(desc.CustomParameters)
	class := desc.WMClass()
	profile := bl.ProfileDir(desc, b)

	argv := []string{b.Exec}
	switch b.Kind {
	case browsers.KindFirefox:
		argv = append(argv,
			"--class", class,
			"--name", class,
			"--profile", profile,
			"--no-remote",
		)
		if desc.PrivateWindow {
			argv = append(argv, privateFlag(b, "--private-window"))
		}
		argv = append(argv, custom...)
		argv = append(argv, desc.URL)
	case browsers.KindChromium:
		argv = append(argv,
			"--app="+desc.URL,
			"--class="+class,
			"--name="+class,
		)
		if profile != "" {
			argv = append(argv, "--user-data-dir="+profile)
		}
		if desc.PrivateWindow {
			argv = append(argv, privateFlag(b, "--incognito"))
		}
		argv = append(argv, custom...)
	case browsers.KindFalkon:
		if profile != "" {
			argv = append(argv,
				"--portable",
				"--wmclass", class,
				"--profile", profile,
			)
		}
		if desc.PrivateWindow {
			argv = append(argv, privateFlag(b, "--private-browsing"))
		}
		argv = append(argv, custom...)
		argv = append(argv, "--no-remote", "--current-tab", desc.URL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, b.Kind)
	}

	return &Entry{
		Argv:       argv,
		WMClass:    class,
		ProfileDir: profile,
	}, nil
}

func privateFlag(b *browsers.Browser, def string) string {
	if b.PrivateFlag != "" {
		return b.PrivateFlag
	}
	return def
}

// ProfileFile is a file seeded into a new web app profile, relative to the
// profile directory.
type ProfileFile struct {
	Name string
	Data []byte
}

// ProfileFiles returns the files a fresh profile of desc needs.
func ProfileFiles(desc *webapp.Descriptor, b *browsers.Browser) ([]ProfileFile, error) {
	if b.Kind != browsers.KindFirefox {
		return nil, nil
	}

	userJS, err := assets.FirefoxUserJS()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile files: %w", err)
	}
	userChrome, err := assets.FirefoxUserChrome(desc.Navbar)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile files: %w", err)
	}

	return []ProfileFile{
		{Name: "user.js", Data: userJS},
		{Name: filepath.Join("chrome", "userChrome.css"), Data: userChrome},
	}, nil
}
