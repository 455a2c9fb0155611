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

// Package site discovers the name, accent color and icon candidates of a
// website from a single bounded fetch of its page.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

const (
	// MaxPageBytes caps how much of a page is read. Icon declarations live
	// in <head>, so a truncated page still probes fine.
	MaxPageBytes = 2 << 20
	// MaxManifestBytes caps the web app manifest download.
	MaxManifestBytes = 512 << 10
	// FaviconPath is the conventional fallback icon location.
	FaviconPath = "/favicon.ico"
)

// Source records where a candidate was discovered.
type Source string

const (
	SourceExplicit  Source = "explicit"
	SourceLink      Source = "link"
	SourceManifest  Source = "manifest"
	SourceOpenGraph Source = "og"
	SourceLocal     Source = "local"
	SourceFavicon   Source = "favicon"
)

// IconCandidate is one place an icon might be found. URL is an absolute
// http(s), data: or file: URL, or a local path.
type IconCandidate struct {
	URL    string `json:"url"`
	Source Source `json:"source"`
	// Format is a MIME type or extension hint, possibly empty.
	Format string `json:"format,omitempty"`
	// Size is the largest declared edge in pixels, 0 when unknown.
	Size int `json:"size,omitempty"`
	// Any is set for scalable icons (sizes="any" or SVG).
	Any bool `json:"any,omitempty"`
}

// Metadata is what a probe learned about a site. Every field is optional
// except Name and Candidates, which always have the hostname and favicon
// fallbacks.
type Metadata struct {
	// URL is the page URL after redirects.
	URL         string          `json:"url"`
	Name        string          `json:"name"`
	AccentColor string          `json:"accent_color,omitempty"`
	Candidates  []IconCandidate `json:"candidates"`
	// Degraded is set when the page could not be fetched.
	Degraded bool `json:"degraded,omitempty"`
}

// ProbeError reports a failed page fetch. It always comes with degraded
// Metadata, so callers treat it as a warning.
type ProbeError struct {
	Err    error
	URL    string
	Status int
}

func (e *ProbeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("probe %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("probe %s: %v", e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Cache stores successful probes keyed by the requested URL.
type Cache interface {
	Get(ctx context.Context, url string) (*Metadata, bool)
	Put(ctx context.Context, url string, m *Metadata) error
}

type Prober struct {
	client  *httpclient.Client
	cache   Cache
	timeout time.Duration
}

type Option func(*Prober)

// WithCache reuses fresh probes from c and stores successful ones in it.
func WithCache(c Cache) Option {
	return func(p *Prober) { p.cache = c }
}

// WithTimeout bounds a whole probe, page and manifest together.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) { p.timeout = d }
}

func NewProber(client *httpclient.Client, opts ...Option) *Prober {
	if client == nil {
		client = httpclient.NewClient(httpclient.Options{MaxRedirects: -1})
	}
	p := &Prober{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe fetches rawURL and extracts its metadata. An invalid URL is the
// only case returning nil Metadata. Network failures and non-2xx responses
// return degraded Metadata together with a *ProbeError.
func (p *Prober) Probe(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := helpers.ParseWebURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	key := u.String()

	if p.cache != nil {
		if m, ok := p.cache.Get(ctx, key); ok {
			log.Debug().Msgf("probe cache hit: %s", key)
			return m, nil
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Fetch(ctx, key, MaxPageBytes)
	if err != nil {
		perr := &ProbeError{URL: key, Err: err}
		var serr *httpclient.StatusError
		if errors.As(err, &serr) {
			perr.Status = serr.Code
		}
		log.Warn().Err(err).Msgf("probe failed, using fallback metadata: %s", key)
		return Degraded(u), perr
	}
	if resp.Truncated {
		log.Debug().Msgf("page truncated at %d bytes: %s", MaxPageBytes, key)
	}

	final := resp.FinalURL
	if final == nil {
		final = u
	}
	pg := parsePage(resp.Body, resp.ContentType, final)

	var mf *manifest
	if pg.manifest != "" {
		mf, err = p.fetchManifest(ctx, pg.manifest)
		if err != nil {
			log.Debug().Err(err).Msgf("ignoring manifest: %s", pg.manifest)
		}
	}

	m := build(final, pg, mf)
	if p.cache != nil {
		if err := p.cache.Put(ctx, key, m); err != nil {
			log.Warn().Err(err).Msgf("failed to cache probe: %s", key)
		}
	}
	return m, nil
}

// Degraded is the metadata used when a page can't be fetched: the
// hostname as name and the conventional favicon as the only candidate.
func Degraded(u *url.URL) *Metadata {
	return &Metadata{
		URL:        u.String(),
		Name:       helpers.DisplayHost(u),
		Candidates: []IconCandidate{Favicon(u)},
		Degraded:   true,
	}
}

// Favicon is the conventional /favicon.ico candidate at the origin of u.
func Favicon(u *url.URL) IconCandidate {
	return IconCandidate{
		URL:    helpers.Origin(u) + FaviconPath,
		Source: SourceFavicon,
		Format: "image/x-icon",
	}
}

func build(u *url.URL, pg *page, mf *manifest) *Metadata {
	m := &Metadata{URL: u.String()}

	names := []string{pg.appName, pg.ogSiteName}
	if mf != nil {
		names = append(names, mf.ShortName, mf.Name)
	}
	names = append(names, pg.title, pg.ogTitle)
	for _, n := range names {
		if n = helpers.CleanName(n); n != "" {
			m.Name = n
			break
		}
	}
	if m.Name == "" {
		m.Name = helpers.DisplayHost(u)
	}

	if c, ok := ParseColor(pg.themeColor); ok {
		m.AccentColor = c
	} else if mf != nil {
		if c, ok := ParseColor(mf.ThemeColor); ok {
			m.AccentColor = c
		}
	}

	cands := sortBySize(pg.icons)
	if mf != nil {
		cands = append(cands, sortBySize(mf.candidates)...)
	}
	cands = append(cands, pg.ogImages...)
	m.Candidates = Merge(cands, nil, Favicon(u))
	return m
}

// Merge joins page candidates and extra lower priority candidates, then
// appends the fallback unless it is already listed. Favicon candidates in
// page are dropped so the fallback stays last. Duplicate URLs keep their
// first position.
func Merge(page, extra []IconCandidate, fallback IconCandidate) []IconCandidate {
	out := make([]IconCandidate, 0, len(page)+len(extra)+1)
	seen := make(map[string]struct{}, cap(out))
	add := func(c IconCandidate) {
		key := strings.TrimSpace(c.URL)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	for _, c := range page {
		if c.Source != SourceFavicon {
			add(c)
		}
	}
	for _, c := range extra {
		add(c)
	}
	if fallback.URL != "" {
		add(fallback)
	}
	return out
}
