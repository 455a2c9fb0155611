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

package browsers

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// MinNameSimilarity is the Jaro-Winkler score a name must reach for a
// fuzzy lookup to match.
const MinNameSimilarity float32 = 0.85

type Registry struct {
	browsers []Browser
}

func NewRegistry(bs []Browser) *Registry {
	return &Registry{browsers: bs}
}

// Detect returns a registry of the known browsers installed on this system
// followed by the custom browsers. Flatpak browsers get the exec path of
// their exported launcher.
func Detect(fs afero.Fs, home string, custom []Browser) (*Registry, error) {
	known, err := Known()
	if err != nil {
		return nil, err
	}

	found := make([]Browser, 0, len(known)+len(custom))
	for _, b := range known {
		if b.IsFlatpak() {
			exec, ok := flatpakExec(fs, home, b.Flatpak)
			if !ok {
				continue
			}
			b.Exec = exec
		} else if !exists(fs, b.Exec) {
			continue
		}
		log.Debug().Msgf("detected browser: %s (%s)", b.ID, b.Exec)
		found = append(found, b)
	}

	found = append(found, custom...)
	return NewRegistry(found), nil
}

func flatpakExec(fs afero.Fs, home, appID string) (string, bool) {
	paths := []string{filepath.Join(systemFlatpakExports, appID)}
	if home != "" {
		paths = append(paths, filepath.Join(home, userFlatpakExports, appID))
	}
	for _, p := range paths {
		if exists(fs, p) {
			return p, true
		}
	}
	return "", false
}

func exists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	_, err := fs.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msgf("failed to stat browser path: %s", path)
	}
	return err == nil
}

// All returns a copy of the registered browsers.
func (r *Registry) All() []Browser {
	bs := make([]Browser, len(r.browsers))
	copy(bs, r.browsers)
	return bs
}

// Lookup finds a browser by id. Failing an exact match, it falls back to a
// case-insensitive id or name match and then to the most similar name.
func (r *Registry) Lookup(query string) (*Browser, bool) {
	if query == "" {
		return nil, false
	}
	for i := range r.browsers {
		if r.browsers[i].ID == query {
			b := r.browsers[i]
			return &b, true
		}
	}

	q := helpers.Foldable(query)
	for i := range r.browsers {
		b := r.browsers[i]
		if strings.ToLower(b.ID) == q || helpers.Foldable(b.Name) == q {
			return &b, true
		}
	}

	type match struct {
		idx   int
		score float32
	}
	var matches []match
	for i := range r.browsers {
		b := r.browsers[i]
		score := max(
			edlib.JaroWinklerSimilarity(q, helpers.Foldable(b.Name)),
			edlib.JaroWinklerSimilarity(q, strings.ToLower(b.ID)),
		)
		if score >= MinNameSimilarity {
			matches = append(matches, match{idx: i, score: score})
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	b := r.browsers[matches[0].idx]
	log.Debug().Msgf("fuzzy matched browser %q to %s (%.2f)", query, b.ID, matches[0].score)
	return &b, true
}

// Default picks preferred when it resolves, otherwise the first registered
// browser.
func (r *Registry) Default(preferred string) (*Browser, bool) {
	if b, ok := r.Lookup(preferred); ok {
		return b, true
	}
	if len(r.browsers) == 0 {
		return nil, false
	}
	b := r.browsers[0]
	return &b, true
}
