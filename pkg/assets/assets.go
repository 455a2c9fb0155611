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

package assets

import (
	"embed"
	"fmt"
)

// BrowsersTable is the list of supported browsers, native and flatpak.
//
//go:embed browsers/browsers.toml
var BrowsersTable []byte

//go:embed firefox/user.js firefox/chrome/userChrome.css
var firefoxProfile embed.FS

// FirefoxUserJS returns the preferences seeded into every Firefox family
// web app profile.
func FirefoxUserJS() ([]byte, error) {
	data, err := firefoxProfile.ReadFile("firefox/user.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read firefox user.js: %w", err)
	}
	return data, nil
}

// FirefoxUserChrome returns the stylesheet hiding the browser chrome. When
// navbar is kept the stylesheet is empty.
func FirefoxUserChrome(navbar bool) ([]byte, error) {
	if navbar {
		return []byte{}, nil
	}
	data, err := firefoxProfile.ReadFile("firefox/chrome/userChrome.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read firefox userChrome.css: %w", err)
	}
	return data, nil
}
