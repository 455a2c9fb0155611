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

// Package webapp holds the installed web app descriptor shared by the store,
// launcher and service packages.
package webapp

import (
	"time"
)

const (
	// LauncherPrefix prefixes every launcher entry file this module owns.
	LauncherPrefix = "webapp-"
	// WMClassPrefix prefixes the window class given to launched apps.
	WMClassPrefix = "WebApp-"
	// DefaultCategory is the freedesktop main category used when none is set.
	DefaultCategory = "Network"
)

// Categories lists the freedesktop main categories accepted for a web app.
var Categories = []string{
	"AudioVideo",
	"Development",
	"Education",
	"Game",
	"Graphics",
	"Network",
	"Office",
	"Science",
	"Settings",
	"System",
	"Utility",
}

// Descriptor is the persisted record of one installed web app.
type Descriptor struct {
	CreatedAt        time.Time `toml:"created_at"`
	UpdatedAt        time.Time `toml:"updated_at"`
	ID               string    `toml:"id" validate:"required,uuid4"`
	Name             string    `toml:"name" validate:"required,max=128"`
	URL              string    `toml:"url" validate:"required,http_url"`
	IconPath         string    `toml:"icon_path" validate:"required"`
	LauncherPath     string    `toml:"launcher_path" validate:"required"`
	AccentColor      string    `toml:"accent_color,omitempty" validate:"omitempty,hexcolor"`
	Browser          string    `toml:"browser" validate:"required"`
	Category         string    `toml:"category" validate:"required"`
	CustomParameters string    `toml:"custom_parameters,omitempty"`
	Seq              int64     `toml:"seq"`
	Isolated         bool      `toml:"isolated"`
	Navbar           bool      `toml:"navbar"`
	PrivateWindow    bool      `toml:"private_window"`
}

// WMClass is the window manager class the launched browser window carries.
func (d *Descriptor) WMClass() string {
	return WMClassPrefix + d.ID
}

// LauncherName is the file name of the descriptor's launcher entry.
func (d *Descriptor) LauncherName() string {
	return LauncherName(d.ID)
}

func LauncherName(id string) string {
	return LauncherPrefix + id + ".desktop"
}

// IconName is the file name of the descriptor's canonical icon.
func IconName(id string) string {
	return id + ".png"
}

// RecordName is the file name of the descriptor's record.
func RecordName(id string) string {
	return id + ".toml"
}

// NewApp is the user input for installing a web app. Icon is an optional
// explicit icon source (URL, data URI or local path) tried before anything
// discovered on the page.
type NewApp struct {
	Name             string `validate:"required,max=128"`
	URL              string `validate:"required,http_url"`
	AccentColor      string `validate:"omitempty,hexcolor"`
	Browser          string `validate:"required"`
	Category         string `validate:"omitempty,oneof=AudioVideo Development Education Game Graphics Network Office Science Settings System Utility"`
	CustomParameters string
	Icon             string
	Isolated         bool
	Navbar           bool
	PrivateWindow    bool
}

// Changes describes an edit to an installed web app. Nil fields are left
// as they are.
type Changes struct {
	Name             *string
	URL              *string
	AccentColor      *string
	Browser          *string
	Category         *string
	CustomParameters *string
	Isolated         *bool
	Navbar           *bool
	PrivateWindow    *bool
	// Icon replaces the icon from an explicit source.
	Icon *string
	// ReplaceIcon re-runs icon resolution for the current URL.
	ReplaceIcon bool
}

// Empty reports whether the changes would not touch anything.
func (c *Changes) Empty() bool {
	return c.Name == nil && c.URL == nil && c.AccentColor == nil &&
		c.Browser == nil && c.Category == nil && c.CustomParameters == nil &&
		c.Isolated == nil && c.Navbar == nil && c.PrivateWindow == nil &&
		c.Icon == nil && !c.ReplaceIcon
}
