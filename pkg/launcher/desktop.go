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

package launcher

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"gopkg.in/ini.v1"
)

const (
	desktopSection = "Desktop Entry"

	KeyBrowser          = "X-WebApp-Browser"
	KeyURL              = "X-WebApp-URL"
	KeyID               = "X-WebApp-ID"
	KeyNavbar           = "X-WebApp-Navbar"
	KeyPrivateWindow    = "X-WebApp-PrivateWindow"
	KeyIsolated         = "X-WebApp-Isolated"
	KeyCustomParameters = "X-WebApp-CustomParameters"
)

var ErrNotWebApp = errors.New("desktop entry is not a web app launcher")

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

func init() {
	// desktop entries are "Key=Value" with no padding
	ini.PrettyFormat = false
}

// Desktop renders the freedesktop entry for desc launched by e. The output
// only depends on its inputs.
func (e *Entry) Desktop(desc *webapp.Descriptor) ([]byte, error) {
	cfg := ini.Empty(loadOptions)
	sec, err := cfg.NewSection(desktopSection)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop section: %w", err)
	}

	category := desc.Category
	if category == "" {
		category = webapp.DefaultCategory
	}

	keys := []struct {
		name  string
		value string
	}{
		{"Version", "1.0"},
		{"Name", desktopValue(desc.Name)},
		{"Comment", "Web App"},
		{"Exec", e.Exec()},
		{"Terminal", "false"},
		{"X-MultipleArgs", "false"},
		{"Type", "Application"},
		{"Icon", desc.IconPath},
		{"Categories", "GTK;" + category + ";"},
		{"MimeType", "text/html;text/xml;application/xhtml_xml;"},
		{"StartupWMClass", e.WMClass},
		{"StartupNotify", "true"},
		{KeyID, desc.ID},
		{KeyBrowser, desc.Browser},
		{KeyURL, desc.URL},
		{KeyNavbar, strconv.FormatBool(desc.Navbar)},
		{KeyPrivateWindow, strconv.FormatBool(desc.PrivateWindow)},
		{KeyIsolated, strconv.FormatBool(desc.Isolated)},
		{KeyCustomParameters, desktopValue(desc.CustomParameters)},
	}
	for _, k := range keys {
		if _, err := sec.NewKey(k.name, k.value); err != nil {
			return nil, fmt.Errorf("failed to set desktop key %s: %w", k.name, err)
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render desktop entry: %w", err)
	}
	return buf.Bytes(), nil
}

// desktopValue keeps a free text value on one line and away from the
// characters the ini writer would wrap in quotes.
func desktopValue(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "`", "'")
}

// Desktop is a web app launcher entry read back from disk.
type Desktop struct {
	Name             string
	Exec             string
	Icon             string
	Categories       []string
	WMClass          string
	ID               string
	Browser          string
	URL              string
	CustomParameters string
	Argv             []string
	Navbar           bool
	PrivateWindow    bool
	Isolated         bool
}

// ParseDesktop reads a launcher entry written by Entry.Desktop.
func ParseDesktop(data []byte) (*Desktop, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse desktop entry: %w", err)
	}
	sec, err := cfg.GetSection(desktopSection)
	if err != nil {
		return nil, fmt.Errorf("failed to parse desktop entry: %w", err)
	}
	if !sec.HasKey(KeyURL) || !sec.HasKey(KeyBrowser) {
		return nil, ErrNotWebApp
	}

	d := &Desktop{
		Name:             sec.Key("Name").String(),
		Exec:             sec.Key("Exec").String(),
		Icon:             sec.Key("Icon").String(),
		WMClass:          sec.Key("StartupWMClass").String(),
		ID:               sec.Key(KeyID).String(),
		Browser:          sec.Key(KeyBrowser).String(),
		URL:              sec.Key(KeyURL).String(),
		CustomParameters: sec.Key(KeyCustomParameters).String(),
		Navbar:           sec.Key(KeyNavbar).MustBool(false),
		PrivateWindow:    sec.Key(KeyPrivateWindow).MustBool(false),
		Isolated:         sec.Key(KeyIsolated).MustBool(false),
	}
	for _, c := range strings.Split(sec.Key("Categories").String(), ";") {
		if c != "" && c != "GTK" {
			d.Categories = append(d.Categories, c)
		}
	}

	d.Argv, err = ParseExec(d.Exec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse desktop entry exec: %w", err)
	}
	return d, nil
}
