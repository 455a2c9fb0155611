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

// Package iconsearch finds icons already installed by icon themes that
// match a site, e.g. a "github" icon for https://github.com.
package iconsearch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/charlievieth/fastwalk"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

const (
	// MinQueryLength avoids flooding results with matches for tiny labels
	// like "x" or "go".
	MinQueryLength = 3
	// DefaultLimit is how many matches Search returns.
	DefaultLimit = 5
)

type Searcher struct {
	dirs  []string
	limit int
}

func New(dirs []string, limit int) *Searcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Searcher{dirs: dirs, limit: limit}
}

type match struct {
	path  string
	score float32
	size  int
	svg   bool
}

// Search walks the icon directories for PNG or SVG files whose name
// contains query. Results are ranked by name similarity, then by size.
func (s *Searcher) Search(ctx context.Context, query string) ([]site.IconCandidate, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < MinQueryLength {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		matches []match
	)
	conf := fastwalk.Config{Follow: true}

	for _, dir := range s.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable subtrees are common in system icon dirs
				return nil //nolint:nilerr
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				return nil
			}
			m, ok := score(query, path)
			if !ok {
				return nil
			}
			mu.Lock()
			matches = append(matches, m)
			mu.Unlock()
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Debug().Err(err).Msgf("error searching icon dir: %s", dir)
		}
	}

	slices.SortFunc(matches, func(a, b match) int {
		switch {
		case a.score != b.score:
			if a.score > b.score {
				return -1
			}
			return 1
		case a.svg != b.svg:
			if a.svg {
				return -1
			}
			return 1
		case a.size != b.size:
			return b.size - a.size
		}
		return strings.Compare(a.path, b.path)
	})

	if len(matches) > s.limit {
		matches = matches[:s.limit]
	}
	out := make([]site.IconCandidate, 0, len(matches))
	for _, m := range matches {
		format := "image/png"
		if m.svg {
			format = "image/svg+xml"
		}
		out = append(out, site.IconCandidate{
			URL:    m.path,
			Source: site.SourceLocal,
			Format: format,
			Size:   m.size,
			Any:    m.svg,
		})
	}
	return out, nil
}

func score(query, path string) (match, bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	if ext != ".png" && ext != ".svg" {
		return match{}, false
	}
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if !strings.Contains(stem, query) {
		return match{}, false
	}
	return match{
		path:  path,
		score: edlib.JaroWinklerSimilarity(query, stem),
		size:  sizeFromPath(path),
		svg:   ext == ".svg",
	}, true
}

// sizeFromPath reads the size from theme directories like 48x48 or
// 256x256@2. Scalable and unknown directories report 0.
func sizeFromPath(path string) int {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		part, _, _ = strings.Cut(part, "@")
		w, h, ok := strings.Cut(part, "x")
		if !ok {
			continue
		}
		wi, errW := strconv.Atoi(w)
		hi, errH := strconv.Atoi(h)
		if errW == nil && errH == nil {
			return min(wi, hi)
		}
	}
	return 0
}
