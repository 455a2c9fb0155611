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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "https", input: "https://example.com", expected: "https://example.com"},
		{name: "bare host", input: "example.com/app", expected: "https://example.com/app"},
		{name: "upper scheme and host", input: "HTTP://Example.COM/Path", expected: "http://example.com/Path"},
		{name: "whitespace", input: "  https://example.com  ", expected: "https://example.com"},
		{name: "backtick in query", input: "https://example.com/?q=`x`", expected: "https://example.com/?q=%60x%60"},
		{name: "backtick in path", input: "https://example.com/a`b", expected: "https://example.com/a%60b"},
		{name: "backtick in fragment", input: "https://example.com/#a`b", expected: "https://example.com/#a%60b"},
		{name: "empty", input: "", wantErr: true},
		{name: "ftp", input: "ftp://example.com", wantErr: true},
		{name: "javascript", input: "javascript://alert(1)", wantErr: true},
		{name: "no host", input: "https://", wantErr: true},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", MaxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := ParseWebURL(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u.String())
		})
	}
}

func TestDisplayHostAndIconName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		host     string
		iconName string
		origin   string
	}{
		{input: "https://example.com", host: "example.com", iconName: "example", origin: "https://example.com"},
		{input: "https://www.youtube.com/feed", host: "youtube.com", iconName: "youtube", origin: "https://www.youtube.com"},
		{input: "http://gist.github.com:8080/x", host: "gist.github.com", iconName: "github", origin: "http://gist.github.com:8080"},
		{input: "https://localhost", host: "localhost", iconName: "localhost", origin: "https://localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			u, err := ParseWebURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.host, DisplayHost(u))
			assert.Equal(t, tt.iconName, IconName(u))
			assert.Equal(t, tt.origin, Origin(u))
		})
	}
}
