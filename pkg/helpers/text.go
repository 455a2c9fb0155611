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
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxNameLength caps display names taken from page titles.
const MaxNameLength = 128

// CleanName normalizes a display name scraped from a page: NFC form,
// control characters dropped, whitespace runs collapsed, length capped.
func CleanName(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cc)))
	if normalized, _, err := transform.String(t, s); err == nil {
		s = normalized
	}
	s = strings.Join(strings.Fields(s), " ")

	r := []rune(s)
	if len(r) > MaxNameLength {
		s = strings.TrimSpace(string(r[:MaxNameLength]))
	}
	return s
}

// Initial returns the upper-cased first letter or digit of s, or 0 when
// there is none.
func Initial(s string) rune {
	for _, r := range norm.NFC.String(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			u := []rune(cases.Upper(language.Und).String(string(r)))
			if len(u) == 1 {
				return u[0]
			}
			return unicode.ToUpper(r)
		}
	}
	return 0
}

// Foldable strips diacritics so names compare loosely, e.g. for fuzzy
// browser lookup.
func Foldable(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	return strings.ToLower(strings.TrimSpace(s))
}
