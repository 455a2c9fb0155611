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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconDirsOrder(t *testing.T) {
	t.Parallel()

	dirs := iconDirs(
		"/home/user",
		"/home/user/.local/share",
		[]string{"/usr/local/share", "", "/usr/share"},
	)
	assert.Equal(t, []string{
		"/home/user/.icons",
		"/home/user/.local/share/icons",
		"/usr/local/share/icons",
		"/usr/share/icons",
		"/usr/share/pixmaps",
	}, dirs)
}

func TestIconDirsWithoutHome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"/usr/share/icons", "/usr/share/pixmaps"},
		iconDirs("", "", []string{"/usr/share"}))
}

func TestIconDirsDefaults(t *testing.T) {
	t.Parallel()

	dirs := IconDirs()
	assert.NotEmpty(t, dirs)
	assert.Equal(t, "/usr/share/pixmaps", dirs[len(dirs)-1])
}
