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

const (
	DefaultImportConcurrency = 4
	DefaultImportRate        = 2.0
)

type Import struct {
	Concurrency *int     `toml:"concurrency,omitempty"`
	Rate        *float64 `toml:"rate,omitempty"`
}

// ImportConcurrency is how many sites a batch import probes at once.
func (c *Instance) ImportConcurrency() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Import.Concurrency == nil || *c.vals.Import.Concurrency < 1 {
		return DefaultImportConcurrency
	}
	return *c.vals.Import.Concurrency
}

// ImportRate caps new probes per second during a batch import.
func (c *Instance) ImportRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Import.Rate == nil || *c.vals.Import.Rate <= 0 {
		return DefaultImportRate
	}
	return *c.vals.Import.Rate
}
