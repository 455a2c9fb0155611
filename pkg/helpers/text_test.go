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
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "collapses whitespace", input: "  My \n\t App  ", expected: "My App"},
		{name: "drops control chars", input: "Mail\x00box", expected: "Mailbox"},
		{name: "composes accents", input: "Café", expected: "Café"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CleanName(tt.input))
		})
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 'G', Initial("github"))
	assert.Equal(t, 'É', Initial("  élan"))
	assert.Equal(t, '9', Initial("9gag"))
	assert.Equal(t, 'Ж', Initial("...жизнь"))
	assert.Equal(t, rune(0), Initial("--- !!"))
	assert.Equal(t, rune(0), Initial(""))
}

func TestFoldable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "microsoft edge", Foldable("  Microsoft Edge "))
	assert.Equal(t, "gnome web", Foldable("GNOME Wéb"))
}

func TestPropertyCleanNameBounded(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")

		result := CleanName(input)
		if utf8.RuneCountInString(result) > MaxNameLength {
			t.Fatalf("name too long: %d runes", utf8.RuneCountInString(result))
		}
		if result != strings.TrimSpace(result) {
			t.Fatalf("name not trimmed: %q", result)
		}
	})
}
