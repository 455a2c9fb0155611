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

package webapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorNames(t *testing.T) {
	t.Parallel()

	d := &Descriptor{ID: "0b7f4c3e-6a52-4c1e-9d0a-3f1b2c4d5e6f"}
	assert.Equal(t, "WebApp-0b7f4c3e-6a52-4c1e-9d0a-3f1b2c4d5e6f", d.WMClass())
	assert.Equal(t, "webapp-0b7f4c3e-6a52-4c1e-9d0a-3f1b2c4d5e6f.desktop", d.LauncherName())
	assert.Equal(t, "0b7f4c3e-6a52-4c1e-9d0a-3f1b2c4d5e6f.png", IconName(d.ID))
	assert.Equal(t, "0b7f4c3e-6a52-4c1e-9d0a-3f1b2c4d5e6f.toml", RecordName(d.ID))
}

func TestChangesEmpty(t *testing.T) {
	t.Parallel()

	name := "x"
	assert.True(t, (&Changes{}).Empty())
	assert.False(t, (&Changes{Name: &name}).Empty())
	assert.False(t, (&Changes{ReplaceIcon: true}).Empty())
}
