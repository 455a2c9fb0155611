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

package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ReconcileReport lists what a reconciliation pass cleaned up.
type ReconcileReport struct {
	// Orphans are icons, launcher entries and profiles with no record.
	Orphans []string
	// TempFiles are leftovers of interrupted atomic writes.
	TempFiles []string
	// Finished are ids of web apps whose deletion had been interrupted.
	Finished []string
}

// Empty reports whether the pass found nothing to do.
func (r *ReconcileReport) Empty() bool {
	return len(r.Orphans) == 0 && len(r.TempFiles) == 0 && len(r.Finished) == 0
}

// Reconcile repairs the store after a crash: orphaned files are removed,
// temp files are cleared and interrupted deletions are completed.
func (s *Store) Reconcile() (*ReconcileReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &ReconcileReport{}

	for _, dir := range []string{s.layout.IconsDir(), s.layout.RecordsDir(), s.layout.Applications} {
		if err := s.removeTempFiles(dir, report); err != nil {
			return report, err
		}
	}

	ds, err := s.records()
	if err != nil {
		return report, err
	}

	known := make(map[string]bool, len(ds))
	for _, d := range ds {
		if !s.complete(d) {
			log.Warn().Msgf("finishing interrupted delete of web app %s", d.ID)
			if err := s.remove(d); err != nil {
				return report, err
			}
			report.Finished = append(report.Finished, d.ID)
			continue
		}
		known[d.ID] = true
	}

	// record names of unparseable files still count as owners, so a
	// corrupt record never loses its icon behind the user's back
	entries, err := afero.ReadDir(s.fs, s.layout.RecordsDir())
	if err != nil {
		return report, ioErr("read", s.layout.RecordsDir(), err)
	}
	for _, e := range entries {
		if id, ok := strings.CutSuffix(e.Name(), ".toml"); ok && !helpers.IsTempFile(e.Name()) {
			if !hasID(ds, id) {
				known[id] = true
			}
		}
	}

	orphan := func(path string) error {
		log.Info().Msgf("removing orphaned file: %s", path)
		if err := s.fs.RemoveAll(path); err != nil {
			return ioErr("remove", path, err)
		}
		report.Orphans = append(report.Orphans, path)
		return nil
	}

	if err := s.eachEntry(s.layout.IconsDir(), func(e os.FileInfo) error {
		id, ok := strings.CutSuffix(e.Name(), ".png")
		if ok && known[id] {
			return nil
		}
		return orphan(filepath.Join(s.layout.IconsDir(), e.Name()))
	}); err != nil {
		return report, err
	}

	if err := s.eachEntry(s.layout.Applications, func(e os.FileInfo) error {
		name := e.Name()
		if !strings.HasPrefix(name, webapp.LauncherPrefix) || !strings.HasSuffix(name, ".desktop") {
			return nil
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, webapp.LauncherPrefix), ".desktop")
		if known[id] {
			return nil
		}
		return orphan(filepath.Join(s.layout.Applications, name))
	}); err != nil {
		return report, err
	}

	if err := s.eachEntry(s.layout.ProfilesDir(), func(e os.FileInfo) error {
		if known[e.Name()] {
			return nil
		}
		return orphan(filepath.Join(s.layout.ProfilesDir(), e.Name()))
	}); err != nil {
		return report, err
	}

	if !report.Empty() {
		log.Info().Msgf(
			"reconciled store: %d orphans, %d temp files, %d interrupted deletes",
			len(report.Orphans), len(report.TempFiles), len(report.Finished),
		)
	}
	return report, nil
}

func hasID(ds []*webapp.Descriptor, id string) bool {
	for _, d := range ds {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) eachEntry(dir string, fn func(os.FileInfo) error) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return ioErr("read", dir, err)
	}
	for _, e := range entries {
		if helpers.IsTempFile(e.Name()) {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) removeTempFiles(dir string, report *ReconcileReport) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return ioErr("read", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !helpers.IsTempFile(e.Name()) {
			continue
		}
		// only our own temp files in the shared applications dir
		if dir == s.layout.Applications && !strings.HasPrefix(e.Name(), "."+webapp.LauncherPrefix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := helpers.RemoveIfExists(s.fs, path); err != nil {
			return ioErr("remove", path, err)
		}
		report.TempFiles = append(report.TempFiles, path)
	}
	return nil
}
