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

// Package service ties the pipeline together: probe a site, resolve its
// icon, commit the descriptor and let the desktop know.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/resolver"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/store"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/rs/zerolog/log"
)

var ErrNoBrowser = errors.New("no supported browser installed")

// Desktop is the desktop environment integration used after changes.
type Desktop interface {
	Refresh(ctx context.Context) error
	Launch(ctx context.Context, desc *webapp.Descriptor, b *browsers.Browser) error
}

type Service struct {
	cfg      *config.Instance
	store    *store.Store
	pipeline *resolver.Pipeline
	browsers *browsers.Registry
	desktop  Desktop
}

type Deps struct {
	Config   *config.Instance
	Store    *store.Store
	Pipeline *resolver.Pipeline
	Browsers *browsers.Registry
	// Desktop may be nil, e.g. in tests.
	Desktop Desktop
}

func New(d Deps) *Service {
	cfg := d.Config
	if cfg == nil {
		cfg = config.NewInMemory(config.BaseDefaults)
	}
	pipeline := d.Pipeline
	if pipeline == nil {
		pipeline = &resolver.Pipeline{}
	}
	reg := d.Browsers
	if reg == nil {
		reg = browsers.NewRegistry(nil)
	}
	return &Service{
		cfg:      cfg,
		store:    d.Store,
		pipeline: pipeline,
		browsers: reg,
		desktop:  d.Desktop,
	}
}

// List returns installed web apps in install order.
func (s *Service) List() ([]webapp.Descriptor, error) {
	apps, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list web apps: %w", err)
	}
	return apps, nil
}

// Browsers returns the browsers web apps can be installed for.
func (s *Service) Browsers() []browsers.Browser {
	return s.browsers.All()
}

// Probe reports what installing rawURL would discover, without installing
// anything.
func (s *Service) Probe(ctx context.Context, rawURL string) (*resolver.Discovery, error) {
	d, err := s.pipeline.Discover(ctx, rawURL, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalid, err)
	}
	return d, nil
}

type InstallRequest struct {
	URL string
	// Name overrides the probed name.
	Name string
	// Browser is an id or name, the configured default when empty.
	Browser          string
	Category         string
	CustomParameters string
	// AccentColor overrides the probed theme color.
	AccentColor string
	// Icon is tried before any discovered candidate.
	Icon          string
	Isolated      bool
	Navbar        bool
	PrivateWindow bool
}

type InstallResult struct {
	App *webapp.Descriptor
	// IconSource is the candidate the icon came from, nil for a monogram.
	IconSource *site.IconCandidate
	// Warnings are recoverable problems: a failed probe and rejected icon
	// candidates.
	Warnings []error
}

// Install probes req.URL, resolves its icon and creates the web app.
// Network and icon problems only produce warnings.
func (s *Service) Install(ctx context.Context, req *InstallRequest) (*InstallResult, error) {
	b, err := s.browser(req.Browser)
	if err != nil {
		return nil, err
	}

	d, err := s.pipeline.Discover(ctx, req.URL, req.Icon)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalid, err)
	}

	res := &InstallResult{}
	if d.ProbeErr != nil {
		res.Warnings = append(res.Warnings, d.ProbeErr)
	}

	name := req.Name
	if name == "" {
		name = d.Metadata.Name
	}
	color := req.AccentColor
	if color == "" {
		color = d.Metadata.AccentColor
	}

	resolved := s.pipeline.Resolve(ctx, resolver.Request{
		Name:       name,
		URL:        d.URL,
		Candidates: d.Candidates,
		Size:       s.cfg.IconSize(),
	})
	for _, f := range resolved.Failures {
		res.Warnings = append(res.Warnings, fmt.Errorf("icon %s: %w", f.Candidate.URL, f.Err))
	}
	res.IconSource = resolved.Source

	// nothing is written for a cancelled install
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("install of %s cancelled: %w", d.URL, err)
	}

	app, err := s.store.Create(ctx, &webapp.NewApp{
		Name:             name,
		URL:              d.URL,
		AccentColor:      color,
		Browser:          b.ID,
		Category:         req.Category,
		CustomParameters: req.CustomParameters,
		Icon:             req.Icon,
		Isolated:         req.Isolated,
		Navbar:           req.Navbar,
		PrivateWindow:    req.PrivateWindow,
	}, resolved.Icon)
	if err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", d.URL, err)
	}
	res.App = app

	s.refresh(ctx)
	return res, nil
}

// Update edits an installed web app. A browser given by name is resolved
// through the registry first.
func (s *Service) Update(ctx context.Context, id string, ch *webapp.Changes) (*webapp.Descriptor, error) {
	if ch.Browser != nil {
		b, ok := s.browsers.Lookup(*ch.Browser)
		if !ok {
			return nil, fmt.Errorf("%w: unknown browser %q", store.ErrInvalid, *ch.Browser)
		}
		browserID := b.ID
		ch.Browser = &browserID
	}
	d, err := s.store.Update(ctx, id, ch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", id, err)
	}
	s.refresh(ctx)
	return d, nil
}

// RefreshIcon resolves the icon of an installed app again.
func (s *Service) RefreshIcon(ctx context.Context, id string) (*webapp.Descriptor, error) {
	return s.Update(ctx, id, &webapp.Changes{ReplaceIcon: true})
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove %s: %w", id, err)
	}
	s.refresh(ctx)
	return nil
}

// Launch starts an installed web app in its browser.
func (s *Service) Launch(ctx context.Context, id string) error {
	if s.desktop == nil {
		return errors.New("desktop integration not available")
	}
	d, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w", id, err)
	}
	b, ok := s.browsers.Lookup(d.Browser)
	if !ok {
		return fmt.Errorf("%w: browser %q of %s is not installed", ErrNoBrowser, d.Browser, d.Name)
	}
	return s.desktop.Launch(ctx, d, b) //nolint:wrapcheck // already carries the app name
}

// Reconcile cleans up after interrupted operations.
func (s *Service) Reconcile(ctx context.Context) (*store.ReconcileReport, error) {
	report, err := s.store.Reconcile()
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	if !report.Empty() {
		s.refresh(ctx)
	}
	return report, nil
}

func (s *Service) browser(query string) (*browsers.Browser, error) {
	if query != "" {
		b, ok := s.browsers.Lookup(query)
		if !ok {
			return nil, fmt.Errorf("%w: unknown browser %q", store.ErrInvalid, query)
		}
		return b, nil
	}
	b, ok := s.browsers.Default(s.cfg.DefaultBrowser())
	if !ok {
		return nil, ErrNoBrowser
	}
	return b, nil
}

func (s *Service) refresh(ctx context.Context) {
	if s.desktop == nil {
		return
	}
	if err := s.desktop.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to refresh desktop database")
	}
}
