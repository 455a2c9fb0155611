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

import "time"

const (
	DefaultIconSize            = 256
	DefaultIconMinSize         = 16
	DefaultIconDownloadTimeout = 10 * time.Second
	MaxIconSize                = 1024
)

type Icons struct {
	Size            *int  `toml:"size,omitempty"`
	MinSize         *int  `toml:"min_size,omitempty"`
	DownloadTimeout *int  `toml:"download_timeout,omitempty"`
	LocalSearch     *bool `toml:"local_search,omitempty"`
}

// IconSize is the edge length in pixels of stored canonical icons.
func (c *Instance) IconSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Icons.Size == nil || *c.vals.Icons.Size < DefaultIconMinSize {
		return DefaultIconSize
	}
	if *c.vals.Icons.Size > MaxIconSize {
		return MaxIconSize
	}
	return *c.vals.Icons.Size
}

func (c *Instance) SetIconSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Icons.Size = &size
}

// IconMinSize is the smallest source image accepted as usable.
func (c *Instance) IconMinSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Icons.MinSize == nil || *c.vals.Icons.MinSize < 1 {
		return DefaultIconMinSize
	}
	return *c.vals.Icons.MinSize
}

// IconDownloadTimeout bounds each individual icon candidate download.
func (c *Instance) IconDownloadTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Icons.DownloadTimeout == nil || *c.vals.Icons.DownloadTimeout <= 0 {
		return DefaultIconDownloadTimeout
	}
	return time.Duration(*c.vals.Icons.DownloadTimeout) * time.Second
}

// IconLocalSearch reports whether installed icon themes are searched for
// candidates matching the site name.
func (c *Instance) IconLocalSearch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Icons.LocalSearch == nil {
		return true
	}
	return *c.vals.Icons.LocalSearch
}

func (c *Instance) SetIconLocalSearch(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Icons.LocalSearch = &enabled
}
