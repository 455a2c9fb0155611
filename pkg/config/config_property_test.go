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

package config

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyIconSizeInRange verifies any configured size is clamped into
// the supported range.
func TestPropertyIconSizeInRange(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.Int().Draw(t, "size")
		cfg := NewInMemory(Values{Icons: Icons{Size: &size}})

		got := cfg.IconSize()
		if got < DefaultIconMinSize || got > MaxIconSize {
			t.Fatalf("icon size %d out of range for configured %d", got, size)
		}
	})
}

// TestPropertyTimeoutsPositive verifies timeouts are always usable.
func TestPropertyTimeoutsPositive(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		probe := rapid.IntRange(-1000, 1000).Draw(t, "probe")
		download := rapid.IntRange(-1000, 1000).Draw(t, "download")
		cfg := NewInMemory(Values{
			Probe: Probe{Timeout: &probe},
			Icons: Icons{DownloadTimeout: &download},
		})

		if cfg.ProbeTimeout() <= 0 {
			t.Fatalf("probe timeout not positive: %v", cfg.ProbeTimeout())
		}
		if cfg.IconDownloadTimeout() <= 0 {
			t.Fatalf("download timeout not positive: %v", cfg.IconDownloadTimeout())
		}
	})
}
