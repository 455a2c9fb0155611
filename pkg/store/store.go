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

// Package store persists installed web apps. Every web app is three files
// owned together: its icon, its launcher entry and its record. A web app is
// only visible once all three exist.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/icons"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	iconPerm     = 0o644
	launcherPerm = 0o644
	recordPerm   = 0o600
	profilePerm  = 0o600
	dirPerm      = 0o750

	// DefaultDebounce is how long Watch waits for record changes to settle.
	DefaultDebounce = 250 * time.Millisecond
)

// Layout is where the store keeps its files.
type Layout struct {
	// Data holds the icons, records and profiles directories.
	Data string
	// Applications is the launcher entry directory read by the desktop.
	Applications string
	// Home is used for sandboxed browser profile locations.
	Home string
}

// DefaultLayout uses the XDG user directories.
func DefaultLayout() Layout {
	return Layout{
		Data:         helpers.DataDir(),
		Applications: helpers.ApplicationsDir(),
		Home:         helpers.HomeDir(),
	}
}

func (l Layout) IconsDir() string    { return filepath.Join(l.Data, "icons") }
func (l Layout) RecordsDir() string  { return filepath.Join(l.Data, "records") }
func (l Layout) ProfilesDir() string { return filepath.Join(l.Data, "profiles") }

// BrowserLookup resolves the browser a web app runs in.
type BrowserLookup interface {
	Lookup(id string) (*browsers.Browser, bool)
}

// IconSource produces an icon for a web app. explicit is an optional icon
// source given by the user. It always returns an icon.
type IconSource interface {
	ResolveIcon(ctx context.Context, name, url, explicit string) *icons.Canonical
}

type Store struct {
	fs       afero.Fs
	browsers BrowserLookup
	icons    IconSource
	clock    clockwork.Clock
	validate *validator.Validate
	builder  *launcher.Builder
	layout   Layout
	iconSize int
	debounce time.Duration
	mu       syncutil.Mutex
}

type Option func(*Store)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

func WithIconSource(src IconSource) Option {
	return func(s *Store) { s.icons = src }
}

func WithIconSize(size int) Option {
	return func(s *Store) { s.iconSize = size }
}

func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// Open prepares the store directories and returns a store over them.
func Open(fs afero.Fs, layout Layout, lookup BrowserLookup, opts ...Option) (*Store, error) {
	s := &Store{
		fs:       fs,
		layout:   layout,
		browsers: lookup,
		clock:    clockwork.NewRealClock(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		iconSize: icons.DefaultSize,
		debounce: DefaultDebounce,
		builder: &launcher.Builder{
			ProfilesDir: layout.ProfilesDir(),
			HomeDir:     layout.Home,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, dir := range []string{
		layout.IconsDir(),
		layout.RecordsDir(),
		layout.ProfilesDir(),
		layout.Applications,
	} {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, ioErr("create", dir, err)
		}
	}

	return s, nil
}

func (s *Store) Layout() Layout {
	return s.layout
}

func (s *Store) iconPath(id string) string {
	return filepath.Join(s.layout.IconsDir(), webapp.IconName(id))
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.layout.RecordsDir(), webapp.RecordName(id))
}

func (s *Store) launcherPath(id string) string {
	return filepath.Join(s.layout.Applications, webapp.LauncherName(id))
}

func (s *Store) exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// complete reports whether every file of d is on disk.
func (s *Store) complete(d *webapp.Descriptor) bool {
	return s.exists(d.IconPath) && s.exists(d.LauncherPath)
}

func (s *Store) readRecord(path string) (*webapp.Descriptor, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers check os.IsNotExist
	}
	var d webapp.Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", path, err)
	}
	if err := s.validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("invalid record %s: %w", path, err)
	}
	if webapp.RecordName(d.ID) != filepath.Base(path) {
		return nil, fmt.Errorf("record %s has mismatched id %s", path, d.ID)
	}
	return &d, nil
}

func (s *Store) writeRecord(d *webapp.Descriptor) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	path := s.recordPath(d.ID)
	if err := helpers.WriteFileAtomic(s.fs, path, data, recordPerm); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}

// records reads every parseable record, complete or not.
func (s *Store) records() ([]*webapp.Descriptor, error) {
	entries, err := afero.ReadDir(s.fs, s.layout.RecordsDir())
	if err != nil {
		return nil, ioErr("read", s.layout.RecordsDir(), err)
	}

	var ds []*webapp.Descriptor
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || helpers.IsTempFile(name) || !strings.HasSuffix(name, ".toml") {
			continue
		}
		d, err := s.readRecord(filepath.Join(s.layout.RecordsDir(), name))
		if err != nil {
			log.Warn().Err(err).Msgf("skipping unreadable record: %s", name)
			continue
		}
		ds = append(ds, d)
	}

	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Seq != ds[j].Seq {
			return ds[i].Seq < ds[j].Seq
		}
		return ds[i].ID < ds[j].ID
	})
	return ds, nil
}

// List returns every complete web app in installation order. Each call
// reads the store afresh.
func (s *Store) List() ([]webapp.Descriptor, error) {
	ds, err := s.records()
	if err != nil {
		return nil, err
	}
	out := make([]webapp.Descriptor, 0, len(ds))
	for _, d := range ds {
		if !s.complete(d) {
			log.Debug().Msgf("hiding incomplete web app: %s", d.ID)
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

// Get returns one complete web app.
func (s *Store) Get(id string) (*webapp.Descriptor, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, ErrNotFound
	}
	d, err := s.readRecord(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read web app %s: %w", id, err)
	}
	if !s.complete(d) {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}
