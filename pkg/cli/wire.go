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

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/database/sitecache"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/desktop"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/iconsearch"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/icons"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/resolver"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/service"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/shared/httpclient"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// NewService wires the real system together from cfg. The returned stop
// function releases the probe cache.
func NewService(ctx context.Context, cfg *config.Instance) (*service.Service, func(), error) {
	fs := afero.NewOsFs()
	layout := store.DefaultLayout()

	custom := browsers.FromConfig(cfg.CustomBrowsers())
	registry, err := browsers.Detect(fs, layout.Home, custom)
	if err != nil {
		return nil, nil, fmt.Errorf("error detecting browsers: %w", err)
	}
	log.Debug().Msgf("detected %d browsers", len(registry.All()))

	client := httpclient.NewClientFromConfig(cfg)

	proberOpts := []site.Option{site.WithTimeout(cfg.ProbeTimeout())}
	stop := func() {}
	if cfg.ProbeCache() {
		cache, err := sitecache.Open(
			filepath.Join(helpers.CacheDir(), sitecache.DBFile),
			cfg.ProbeCacheTTL(),
		)
		if err != nil {
			// probing still works, just slower
			log.Warn().Err(err).Msg("failed to open site cache")
		} else {
			if n, err := cache.Prune(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to prune site cache")
			} else if n > 0 {
				log.Debug().Msgf("pruned %d site cache entries", n)
			}
			proberOpts = append(proberOpts, site.WithCache(cache))
			stop = func() {
				if err := cache.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close site cache")
				}
			}
		}
	}

	pipeline := &resolver.Pipeline{
		Prober: site.NewProber(client, proberOpts...),
		Resolver: resolver.New(client,
			resolver.WithFs(fs),
			resolver.WithTimeout(cfg.IconDownloadTimeout()),
			resolver.WithCodec(icons.NewCodec(cfg.IconMinSize())),
		),
		Size: cfg.IconSize(),
	}
	if cfg.IconLocalSearch() {
		pipeline.Local = iconsearch.New(helpers.IconDirs(), iconsearch.DefaultLimit)
	}

	st, err := store.Open(fs, layout, registry,
		store.WithIconSource(pipeline),
		store.WithIconSize(cfg.IconSize()),
	)
	if err != nil {
		stop()
		return nil, nil, fmt.Errorf("error opening store: %w", err)
	}

	dt := desktop.New(
		&command.RealExecutor{},
		&launcher.Builder{ProfilesDir: layout.ProfilesDir(), HomeDir: layout.Home},
		layout.Applications,
	)

	svc := service.New(service.Deps{
		Config:   cfg,
		Store:    st,
		Pipeline: pipeline,
		Browsers: registry,
		Desktop:  dt,
	})
	return svc, stop, nil
}
