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
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength caps accepted web app URLs.
const MaxURLLength = 8192

var ErrInvalidURL = errors.New("invalid web app url")

// ParseWebURL parses an http(s) URL with a host. Bare hosts such as
// "example.com" are accepted and given an https scheme. String() of the
// result never contains a backtick.
func ParseWebURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if len(raw) > MaxURLLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidURL, len(raw), MaxURLLength)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	// the query is kept verbatim by net/url; a raw backtick would make the
	// desktop entry writer quote the whole value
	u.RawQuery = strings.ReplaceAll(u.RawQuery, "`", "%60")
	return u, nil
}

// DisplayHost is the hostname used as a last-resort app name, without a
// leading "www.".
func DisplayHost(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// IconName guesses the name an icon theme would use for a site: the label
// just left of the public suffix, e.g. "github" for https://gist.github.com.
func IconName(u *url.URL) string {
	if u == nil {
		return ""
	}
	parts := strings.Split(u.Hostname(), ".")
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[len(parts)-2]
	}
}

// Origin returns scheme://host of u.
func Origin(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
}
