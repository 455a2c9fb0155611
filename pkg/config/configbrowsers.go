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

package config

type Browsers struct {
	Default string          `toml:"default,omitempty"`
	Custom  []CustomBrowser `toml:"custom,omitempty"`
}

// CustomBrowser declares a browser missing from the built-in table, e.g. a
// locally built Chromium. Kind selects the argument style: firefox,
// chromium or falkon.
type CustomBrowser struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Kind string `toml:"kind"`
	Exec string `toml:"exec"`
}

// DefaultBrowser is the browser id used when an install doesn't name one.
func (c *Instance) DefaultBrowser() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Browsers.Default
}

func (c *Instance) SetDefaultBrowser(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Browsers.Default = id
}

func (c *Instance) CustomBrowsers() []CustomBrowser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CustomBrowser, len(c.vals.Browsers.Custom))
	copy(out, c.vals.Browsers.Custom)
	return out
}
