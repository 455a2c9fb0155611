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
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor normalizes a CSS color as found in theme-color to #rrggbb.
// It understands hex (#rgb, #rrggbb, #rrggbbaa) and rgb()/rgba().
func ParseColor(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		switch len(v) {
		case 5:
			v = v[:4]
		case 9:
			v = v[:7]
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}

	var r, g, b int
	for _, format := range []string{"rgb(%d,%d,%d)", "rgb(%d, %d, %d)", "rgba(%d,%d,%d,", "rgba(%d, %d, %d,"} {
		if n, _ := fmt.Sscanf(v, format, &r, &g, &b); n == 3 {
			if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
				return "", false
			}
			c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
			return c.Hex(), true
		}
	}
	return "", false
}
