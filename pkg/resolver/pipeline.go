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

package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/icons"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/rs/zerolog/log"
)

// LocalSearcher finds locally installed icons for a site's icon name.
type LocalSearcher interface {
	Search(ctx context.Context, query string) ([]site.IconCandidate, error)
}

// Pipeline chains probe, local icon search and resolution. It is the icon
// source the store uses when a web app needs a new icon.
type Pipeline struct {
	Prober   *site.Prober
	Local    LocalSearcher
	Resolver *Resolver
	Size     int
}

// Discovery is the outcome of probing a site and gathering candidates.
type Discovery struct {
	Metadata *site.Metadata
	// URL is the normalized form of the probed URL.
	URL string
	// ProbeErr is set when the page could not be fetched. Metadata is
	// degraded but usable.
	ProbeErr   error
	Candidates []site.IconCandidate
}

// Explicit turns a user supplied icon (URL, data: URI or path) into the
// highest priority candidate. "~/" is expanded to the home directory.
func Explicit(ref string) site.IconCandidate {
	ref = strings.TrimSpace(ref)
	if rest, ok := strings.CutPrefix(ref, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			ref = filepath.Join(home, rest)
		}
	}
	return site.IconCandidate{URL: ref, Source: site.SourceExplicit}
}

// Discover probes rawURL and builds the ordered candidate list: explicit
// icon, page candidates, local theme icons, then /favicon.ico. It fails
// only for an invalid URL.
func (p *Pipeline) Discover(ctx context.Context, rawURL, explicit string) (*Discovery, error) {
	u, err := helpers.ParseWebURL(rawURL)
	if err != nil {
		return nil, err
	}

	d := &Discovery{URL: u.String()}
	if p.Prober != nil {
		d.Metadata, d.ProbeErr = p.Prober.Probe(ctx, d.URL)
		var perr *site.ProbeError
		if d.ProbeErr != nil && !errors.As(d.ProbeErr, &perr) {
			return nil, d.ProbeErr
		}
	}
	if d.Metadata == nil {
		d.Metadata = site.Degraded(u)
	}

	var page []site.IconCandidate
	if explicit != "" {
		page = append(page, Explicit(explicit))
	}
	page = append(page, d.Metadata.Candidates...)

	var local []site.IconCandidate
	if p.Local != nil {
		local, err = p.Local.Search(ctx, helpers.IconName(u))
		if err != nil {
			log.Debug().Err(err).Msg("local icon search failed")
			local = nil
		}
	}

	d.Candidates = site.Merge(page, local, site.Favicon(u))
	return d, nil
}

// ResolveIcon discovers candidates for rawURL and resolves them. It always
// returns an icon.
func (p *Pipeline) ResolveIcon(ctx context.Context, name, rawURL, explicit string) *icons.Canonical {
	d, err := p.Discover(ctx, rawURL, explicit)
	if err != nil {
		log.Warn().Err(err).Msgf("icon discovery failed: %s", rawURL)
		return icons.Monogram(name, rawURL, p.size())
	}
	if name == "" {
		name = d.Metadata.Name
	}
	return p.resolver().Resolve(ctx, Request{
		Name:       name,
		URL:        d.URL,
		Candidates: d.Candidates,
		Size:       p.Size,
	}).Icon
}

func (p *Pipeline) resolver() *Resolver {
	if p.Resolver == nil {
		return New(nil)
	}
	return p.Resolver
}

func (p *Pipeline) size() int {
	if p.Size > 0 {
		return p.Size
	}
	return icons.DefaultSize
}

// Resolve runs req through the pipeline's resolver.
func (p *Pipeline) Resolve(ctx context.Context, req Request) Result {
	if req.Size < 1 {
		req.Size = p.size()
	}
	return p.resolver().Resolve(ctx, req)
}
