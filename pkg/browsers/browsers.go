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

// Package browsers knows which browsers can host a web app and where each
// keeps its web app profiles.
package browsers

import (
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/assets"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	toml "github.com/pelletier/go-toml/v2"
)

type Kind string

const (
	KindFirefox  Kind = "firefox"
	KindChromium Kind = "chromium"
	KindFalkon   Kind = "falkon"
)

// Valid reports whether k is a browser family the launcher can build for.
func (k Kind) Valid() bool {
	switch k {
	case KindFirefox, KindChromium, KindFalkon:
		return true
	default:
		return false
	}
}

const (
	systemFlatpakExports = "/var/lib/flatpak/exports/bin"
	userFlatpakExports   = ".local/share/flatpak/exports/bin"
)

type Browser struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Kind    Kind   `toml:"kind"`
	Exec    string `toml:"exec"`
	Flatpak string `toml:"flatpak"`
	// PrivateFlag overrides the family's private window flag.
	PrivateFlag string `toml:"private_flag"`
	Custom      bool   `toml:"-"`
}

func (b *Browser) IsFlatpak() bool {
	return b.Flatpak != ""
}

// ProfileRoot is the directory holding this browser's web app profiles.
// Flatpak browsers can only write inside their own sandbox data dir.
func (b *Browser) ProfileRoot(profilesDir, home string) string {
	if b.IsFlatpak() {
		return filepath.Join(home, ".var", "app", b.Flatpak, "data", config.AppName, "profiles")
	}
	return profilesDir
}

type table struct {
	Browsers []Browser `toml:"browser"`
}

// Known returns every browser the module ships support for, installed or
// not.
func Known() ([]Browser, error) {
	var t table
	if err := toml.Unmarshal(assets.BrowsersTable, &t); err != nil {
		return nil, fmt.Errorf("failed to parse browsers table: %w", err)
	}
	for i, b := range t.Browsers {
		if b.ID == "" || !b.Kind.Valid() {
			return nil, fmt.Errorf("invalid browser table entry %d: %q", i, b.ID)
		}
	}
	return t.Browsers, nil
}

// FromConfig converts user configured browsers, skipping entries with an
// unknown family or no executable.
func FromConfig(custom []config.CustomBrowser) []Browser {
	bs := make([]Browser, 0, len(custom))
	for _, c := range custom {
		kind := Kind(c.Kind)
		if c.ID == "" || c.Exec == "" || !kind.Valid() {
			continue
		}
		name := c.Name
		if name == "" {
			name = c.ID
		}
		bs = append(bs, Browser{
			ID:     c.ID,
			Name:   name,
			Kind:   kind,
			Exec:   c.Exec,
			Custom: true,
		})
	}
	return bs
}
