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

package helpers

import (
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	"github.com/adrg/xdg"
)

// ConfigDir is where config.toml lives.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// DataDir holds icons, descriptor records and browser profiles.
func DataDir() string {
	return filepath.Join(xdg.DataHome, config.AppName)
}

// CacheDir holds the probe cache database.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, config.AppName)
}

// StateDir holds the log file.
func StateDir() string {
	return filepath.Join(xdg.StateHome, config.AppName)
}

// ApplicationsDir is the user launcher directory scanned by desktop
// environments for .desktop entries.
func ApplicationsDir() string {
	return filepath.Join(xdg.DataHome, "applications")
}

// IconDirs lists the directories searched for locally installed icons,
// user locations first.
func IconDirs() []string {
	return iconDirs(xdg.Home, xdg.DataHome, xdg.DataDirs)
}

// iconDirs follows the icon theme lookup order: ~/.icons, the user data
// dir, the system data dirs, then pixmaps.
func iconDirs(home, dataHome string, dataDirs []string) []string {
	dirs := make([]string, 0, len(dataDirs)+3)
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".icons"))
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "icons"))
	}
	for _, d := range dataDirs {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "icons"))
		}
	}
	return append(dirs, "/usr/share/pixmaps")
}

// HomeDir returns the user's home, or an empty string when it can't be
// determined.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// InFlatpak reports whether the process runs inside a flatpak sandbox.
func InFlatpak() bool {
	return os.Getenv("FLATPAK_ID") != ""
}
