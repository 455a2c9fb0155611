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
	DefaultProbeTimeout  = 15 * time.Second
	DefaultMaxRedirects  = 5
	DefaultProbeCacheTTL = 24 * time.Hour
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) ZaparooWebApps/1.0"
)

type Probe struct {
	Timeout      *int   `toml:"timeout,omitempty"`
	MaxRedirects *int   `toml:"max_redirects,omitempty"`
	Cache        *bool  `toml:"cache,omitempty"`
	CacheTTL     *int   `toml:"cache_ttl,omitempty"`
	UserAgent    string `toml:"user_agent,omitempty"`
}

// ProbeTimeout bounds the page fetch (and manifest fetch) of a probe.
func (c *Instance) ProbeTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Probe.Timeout == nil || *c.vals.Probe.Timeout <= 0 {
		return DefaultProbeTimeout
	}
	return time.Duration(*c.vals.Probe.Timeout) * time.Second
}

func (c *Instance) ProbeMaxRedirects() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Probe.MaxRedirects == nil || *c.vals.Probe.MaxRedirects < 0 {
		return DefaultMaxRedirects
	}
	return *c.vals.Probe.MaxRedirects
}

func (c *Instance) ProbeCache() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Probe.Cache == nil {
		return true
	}
	return *c.vals.Probe.Cache
}

func (c *Instance) SetProbeCache(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Probe.Cache = &enabled
}

// ProbeCacheTTL is how long a successful probe is reused, configured in
// hours.
func (c *Instance) ProbeCacheTTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Probe.CacheTTL == nil || *c.vals.Probe.CacheTTL <= 0 {
		return DefaultProbeCacheTTL
	}
	return time.Duration(*c.vals.Probe.CacheTTL) * time.Hour
}

func (c *Instance) UserAgent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Probe.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.vals.Probe.UserAgent
}
