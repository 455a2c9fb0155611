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
	"errors"
	"strings"
)

var ErrUnterminatedQuote = errors.New("unterminated quote in exec line")

// reserved characters force an argument to be quoted in an Exec value
const reserved = " \t\n\"'\\><~|&;$*?#()`"

// ExecLine joins argv into a desktop entry Exec value. Arguments with
// reserved characters are double quoted, "%" is escaped so it is never read
// as a field code, and the result is escaped as a desktop entry string.
func ExecLine(argv []string) string {
	var sb strings.Builder
	for i, arg := range argv {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(quoteArg(arg))
	}
	return escapeString(sb.String())
}

func quoteArg(arg string) string {
	arg = strings.ReplaceAll(arg, "%", "%%")
	if arg != "" && !strings.ContainsAny(arg, reserved) {
		return arg
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		"\t", `\t`,
		"\r", `\r`,
	)
	return r.Replace(s)
}

func unescapeString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case 's':
			sb.WriteByte(' ')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// ParseExec splits a desktop entry Exec value back into argv. Field codes
// other than "%%" are left in place.
func ParseExec(line string) ([]string, error) {
	line = unescapeString(line)

	var (
		argv    []string
		cur     strings.Builder
		inToken bool
		quoted  bool
	)
	flush := func() {
		if inToken {
			argv = append(argv, strings.ReplaceAll(cur.String(), "%%", "%"))
		}
		cur.Reset()
		inToken = false
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case quoted && c == '"':
			quoted = false
		case quoted:
			cur.WriteByte(c)
		case c == '"':
			quoted = true
			inToken = true
		case c == ' ':
			flush()
		default:
			inToken = true
			cur.WriteByte(c)
		}
	}
	if quoted {
		return nil, ErrUnterminatedQuote
	}
	flush()
	return argv, nil
}
