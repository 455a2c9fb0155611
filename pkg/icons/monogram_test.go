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

package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonogram(t *testing.T) {
	t.Parallel()

	icon := Monogram("Gmail", "https://mail.google.com", 128)
	require.Equal(t, 128, icon.Size())

	// rounded corner stays transparent, the middle is painted
	assert.Equal(t, uint8(0), icon.Image.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), icon.Image.NRGBAAt(10, 64).A)

	again := Monogram("Gmail", "https://mail.google.com", 128)
	a, err := icon.PNG()
	require.NoError(t, err)
	b, err := again.PNG()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMonogramColorStable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, MonogramColor("https://example.com"), MonogramColor("https://example.com"))
}

func TestMonogramLetter(t *testing.T) {
	t.Parallel()

	f, err := monogramFont()
	require.NoError(t, err)

	tests := []struct {
		name string
		seed string
		want rune
	}{
		{name: "Gmail", seed: "https://mail.google.com", want: 'G'},
		{name: "élan", seed: "https://elan.fr", want: 'É'},
		{name: "  42 things", seed: "", want: '4'},
		{name: "日本", seed: "https://www.example.jp", want: 'E'},
		{name: "!!!", seed: "https://zoom.us", want: 'Z'},
		{name: "", seed: "", want: '#'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, string(tt.want), string(monogramLetter(f, tt.name, tt.seed)))
		})
	}
}
