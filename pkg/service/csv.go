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

package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Row is one web app in the import/export CSV format.
type Row struct {
	Name             string `csv:"name"`
	URL              string `csv:"url"`
	Browser          string `csv:"browser"`
	Category         string `csv:"category"`
	Icon             string `csv:"icon"`
	AccentColor      string `csv:"accent_color"`
	CustomParameters string `csv:"custom_parameters"`
	Isolated         bool   `csv:"isolated"`
	Navbar           bool   `csv:"navbar"`
	PrivateWindow    bool   `csv:"private_window"`
}

// RowError is an import row that could not be installed. Line counts the
// header as line 1.
type RowError struct {
	Err  error
	URL  string
	Line int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.URL, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type ImportReport struct {
	Installed []*webapp.Descriptor
	Failed    []*RowError
}

// Import installs every row of a CSV document. Rows are installed
// concurrently, paced by the import rate. A failing row does not stop the
// others, only a cancelled context does.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(s.cfg.ImportRate()), 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.ImportConcurrency()))

	installed := make([]*webapp.Descriptor, len(rows))
	failed := make([]*RowError, len(rows))
	var mu sync.Mutex

	for i, row := range rows {
		line := i + 2
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("import cancelled: %w", err)
			}
			res, err := s.Install(gctx, row.request())
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return fmt.Errorf("import cancelled: %w", ctxErr)
				}
				log.Warn().Err(err).Msgf("failed to import line %d", line)
				mu.Lock()
				failed[i] = &RowError{Line: line, URL: row.URL, Err: err}
				mu.Unlock()
				return nil
			}
			for _, w := range res.Warnings {
				log.Debug().Err(w).Msgf("import line %d", line)
			}
			mu.Lock()
			installed[i] = res.App
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	report := &ImportReport{}
	for i := range rows {
		if installed[i] != nil {
			report.Installed = append(report.Installed, installed[i])
		}
		if failed[i] != nil {
			report.Failed = append(report.Failed, failed[i])
		}
	}
	log.Info().Msgf("imported %d web apps, %d failed", len(report.Installed), len(report.Failed))
	if err != nil {
		return report, err
	}
	return report, nil
}

func (r *Row) request() *InstallRequest {
	return &InstallRequest{
		URL:              r.URL,
		Name:             r.Name,
		Browser:          r.Browser,
		Category:         r.Category,
		Icon:             r.Icon,
		AccentColor:      r.AccentColor,
		CustomParameters: r.CustomParameters,
		Isolated:         r.Isolated,
		Navbar:           r.Navbar,
		PrivateWindow:    r.PrivateWindow,
	}
}

// Export writes every installed web app as CSV, in list order. The icon
// column points at the stored icon so a later import reuses it.
func (s *Service) Export(w io.Writer) error {
	apps, err := s.List()
	if err != nil {
		return err
	}
	rows := make([]*Row, 0, len(apps))
	for i := range apps {
		d := &apps[i]
		rows = append(rows, &Row{
			Name:             d.Name,
			URL:              d.URL,
			Browser:          d.Browser,
			Category:         d.Category,
			Icon:             d.IconPath,
			AccentColor:      d.AccentColor,
			CustomParameters: d.CustomParameters,
			Isolated:         d.Isolated,
			Navbar:           d.Navbar,
			PrivateWindow:    d.PrivateWindow,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
