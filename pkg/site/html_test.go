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

package site

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		size    int
		anySize bool
	}{
		{"", 0, false},
		{"16x16", 16, false},
		{"16x16 32x32 192x192", 192, false},
		{"ANY", 0, true},
		{"any 48x48", 48, true},
		{"64x32", 32, false},
		{"bogus 12xfoo", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			size, anySize := parseSizes(tt.in)
			assert.Equal(t, tt.size, size)
			assert.Equal(t, tt.anySize, anySize)
		})
	}
}

func TestFormatHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		declared string
		ref      string
		want     string
	}{
		{"image/png; charset=binary", "https://x.example/a.ico", "image/png"},
		{"", "data:image/svg+xml;base64,PHN2Zz4=", "image/svg+xml"},
		{"", "https://x.example/logo.SVG?v=2", "image/svg+xml"},
		{"", "https://x.example/favicon.ico", "image/x-icon"},
		{"", "https://x.example/icon", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatHint(tt.declared, tt.ref))
		})
	}
}

func TestResolveRef(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/app/")
	require.NoError(t, err)

	ref, ok := resolveRef(base, "icon.png#frag")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/app/icon.png", ref)

	ref, ok = resolveRef(base, "//cdn.example.com/i.png")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/i.png", ref)

	_, ok = resolveRef(base, "javascript:void(0)")
	assert.False(t, ok)

	_, ok = resolveRef(base, "")
	assert.False(t, ok)
}

func TestParseManifestSkipsMonochrome(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/static/manifest.json")
	require.NoError(t, err)

	mf, err := parseManifest([]byte(testManifest), base)
	require.NoError(t, err)
	assert.Equal(t, "Tracker", mf.ShortName)
	require.Len(t, mf.candidates, 2)
	assert.Equal(t, "https://example.com/static/icons/192.png", mf.candidates[0].URL)

	_, err = parseManifest([]byte("{"), base)
	require.Error(t, err)
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#FFF", "#ffffff", true},
		{"#123456", "#123456", true},
		{"#12345680", "#123456", true},
		{"rgb(255, 0, 0)", "#ff0000", true},
		{"rgba(0,0,255,0.5)", "#0000ff", true},
		{"rgb(300, 0, 0)", "", false},
		{"blue", "", false},
		{"", "", false},
		{"#12", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
