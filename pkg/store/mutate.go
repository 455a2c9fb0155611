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
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/icons"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// rollback removes files written by a failed mutation, newest first.
type rollback struct {
	s     *Store
	files []string
	dirs  []string
}

func (r *rollback) file(path string) { r.files = append(r.files, path) }
func (r *rollback) dir(path string)  { r.dirs = append(r.dirs, path) }

func (r *rollback) run() {
	for i := len(r.files) - 1; i >= 0; i-- {
		if err := helpers.RemoveIfExists(r.s.fs, r.files[i]); err != nil {
			log.Error().Err(err).Msgf("failed to clean up %s", r.files[i])
		}
	}
	for i := len(r.dirs) - 1; i >= 0; i-- {
		if err := r.s.fs.RemoveAll(r.dirs[i]); err != nil {
			log.Error().Err(err).Msgf("failed to clean up %s", r.dirs[i])
		}
	}
}

func (s *Store) findBrowser(id string) (*browsers.Browser, bool) {
	if s.browsers == nil {
		return nil, false
	}
	return s.browsers.Lookup(id)
}

func (s *Store) lookupBrowser(id string) (*browsers.Browser, error) {
	b, ok := s.findBrowser(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown browser %q", ErrInvalid, id)
	}
	return b, nil
}

func normalizeColor(c string) (string, error) {
	if c == "" {
		return "", nil
	}
	parsed, err := colorful.Hex(c)
	if err != nil {
		return "", fmt.Errorf("%w: accent color %q: %w", ErrInvalid, c, err)
	}
	return parsed.Hex(), nil
}

func normalizeURL(raw string) (string, error) {
	u, err := helpers.ParseWebURL(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return u.String(), nil
}

func (s *Store) icon(ctx context.Context, name, url, explicit string) *icons.Canonical {
	if s.icons != nil {
		if icon := s.icons.ResolveIcon(ctx, name, url, explicit); icon != nil {
			return icon
		}
	}
	return icons.Monogram(name, url, s.iconSize)
}

func (s *Store) writeIcon(path string, icon *icons.Canonical) error {
	data, err := icon.PNG()
	if err != nil {
		return ioErr("encode", path, err)
	}
	if err := helpers.WriteFileAtomic(s.fs, path, data, iconPerm); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}

// writeProfile seeds the browser profile of d. It returns the profile dir,
// or an empty string if the browser doesn't use one.
func (s *Store) writeProfile(d *webapp.Descriptor, b *browsers.Browser) (string, error) {
	dir := s.builder.ProfileDir(d, b)
	if dir == "" {
		return "", nil
	}
	files, err := launcher.ProfileFiles(d, b)
	if err != nil {
		return dir, err //nolint:wrapcheck // already wrapped
	}
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return dir, ioErr("create", dir, err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := helpers.WriteFileAtomic(s.fs, path, f.Data, profilePerm); err != nil {
			return dir, ioErr("write", path, err)
		}
	}
	return dir, nil
}

// profileStale reports whether the generated profile files must be written
// again. Unchanged profiles are left alone so user edits survive.
func (s *Store) profileStale(prev, next *webapp.Descriptor, b *browsers.Browser) bool {
	if prev.Browser != next.Browser || prev.Navbar != next.Navbar || prev.Isolated != next.Isolated {
		return true
	}
	dir := s.builder.ProfileDir(next, b)
	if dir == "" {
		return false
	}
	ok, err := afero.DirExists(s.fs, dir)
	return err != nil || !ok
}

func (s *Store) writeLauncher(d *webapp.Descriptor, b *browsers.Browser) error {
	entry, err := s.builder.Build(d, b)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	data, err := entry.Desktop(d)
	if err != nil {
		return fmt.Errorf("failed to render launcher: %w", err)
	}
	if err := helpers.WriteFileAtomic(s.fs, d.LauncherPath, data, launcherPerm); err != nil {
		return ioErr("write", d.LauncherPath, err)
	}
	return nil
}

// Create installs a new web app. When icon is nil one is resolved through
// the icon source. Files are written icon first and record last, so an
// interrupted create never leaves a visible web app behind.
func (s *Store) Create(ctx context.Context, app *webapp.NewApp, icon *icons.Canonical) (*webapp.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := *app
	in.Name = helpers.CleanName(in.Name)
	if in.URL != "" {
		u, err := normalizeURL(in.URL)
		if err != nil {
			return nil, err
		}
		in.URL = u
	}
	if in.Category == "" {
		in.Category = webapp.DefaultCategory
	}
	if err := s.validate.Struct(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	color, err := normalizeColor(in.AccentColor)
	if err != nil {
		return nil, err
	}
	b, err := s.lookupBrowser(in.Browser)
	if err != nil {
		return nil, err
	}

	existing, err := s.records()
	if err != nil {
		return nil, err
	}
	var seq int64
	for _, d := range existing {
		seq = max(seq, d.Seq)
	}

	id := uuid.New().String()
	now := s.now()
	d := &webapp.Descriptor{
		ID:               id,
		Name:             in.Name,
		URL:              in.URL,
		IconPath:         s.iconPath(id),
		LauncherPath:     s.launcherPath(id),
		AccentColor:      color,
		Browser:          b.ID,
		Category:         in.Category,
		CustomParameters: in.CustomParameters,
		Isolated:         in.Isolated,
		Navbar:           in.Navbar,
		PrivateWindow:    in.PrivateWindow,
		Seq:              seq + 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if icon == nil {
		icon = s.icon(ctx, d.Name, d.URL, in.Icon)
	}

	rb := &rollback{s: s}

	rb.file(d.IconPath)
	if err := s.writeIcon(d.IconPath, icon); err != nil {
		rb.run()
		return nil, err
	}

	dir, err := s.writeProfile(d, b)
	if dir != "" {
		rb.dir(dir)
	}
	if err != nil {
		rb.run()
		return nil, err
	}

	rb.file(d.LauncherPath)
	if err := s.writeLauncher(d, b); err != nil {
		rb.run()
		return nil, err
	}

	rb.file(s.recordPath(id))
	if err := s.writeRecord(d); err != nil {
		rb.run()
		return nil, err
	}

	log.Info().Msgf("created web app %s: %s (%s)", d.ID, d.Name, d.URL)
	return d, nil
}

// apply returns d with changes applied, and whether the icon must be
// resolved again.
func (s *Store) apply(d *webapp.Descriptor, ch *webapp.Changes) (*webapp.Descriptor, bool, error) {
	next := *d
	reicon := ch.ReplaceIcon || ch.Icon != nil

	if ch.Name != nil {
		next.Name = helpers.CleanName(*ch.Name)
	}
	if ch.URL != nil {
		u, err := normalizeURL(*ch.URL)
		if err != nil {
			return nil, false, err
		}
		if u != d.URL {
			next.URL = u
			reicon = true
		}
	}
	if ch.AccentColor != nil {
		c, err := normalizeColor(*ch.AccentColor)
		if err != nil {
			return nil, false, err
		}
		next.AccentColor = c
	}
	if ch.Browser != nil {
		b, err := s.lookupBrowser(*ch.Browser)
		if err != nil {
			return nil, false, err
		}
		next.Browser = b.ID
	}
	if ch.Category != nil {
		next.Category = *ch.Category
		if next.Category == "" {
			next.Category = webapp.DefaultCategory
		}
	}
	if ch.CustomParameters != nil {
		next.CustomParameters = *ch.CustomParameters
	}
	if ch.Isolated != nil {
		next.Isolated = *ch.Isolated
	}
	if ch.Navbar != nil {
		next.Navbar = *ch.Navbar
	}
	if ch.PrivateWindow != nil {
		next.PrivateWindow = *ch.PrivateWindow
	}

	if err := s.validate.Struct(&next); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := s.validate.Var(next.Category, categoryTag); err != nil {
		return nil, false, fmt.Errorf("%w: category %q", ErrInvalid, next.Category)
	}
	return &next, reicon, nil
}

var categoryTag = "oneof=AudioVideo Development Education Game Graphics Network Office Science Settings System Utility"

// Update edits an installed web app. The icon is only resolved again when
// the URL changed or a new icon was asked for. An update that changes
// nothing leaves every file as it was.
func (s *Store) Update(ctx context.Context, id string, ch *webapp.Changes) (*webapp.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next, reicon, err := s.apply(d, ch)
	if err != nil {
		return nil, err
	}

	oldBrowser, oldOK := s.findBrowser(d.Browser)
	b, err := s.lookupBrowser(next.Browser)
	if err != nil {
		return nil, err
	}

	changed := reicon || *next != *d
	if changed {
		next.UpdatedAt = s.now()
	}

	if reicon {
		explicit := ""
		if ch.Icon != nil {
			explicit = *ch.Icon
		}
		icon := s.icon(ctx, next.Name, next.URL, explicit)
		if err := s.writeIcon(next.IconPath, icon); err != nil {
			return nil, err
		}
	}

	if oldOK {
		oldDir := s.builder.ProfileDir(d, oldBrowser)
		if oldDir != "" && oldDir != s.builder.ProfileDir(next, b) {
			if err := s.fs.RemoveAll(oldDir); err != nil {
				return nil, ioErr("remove", oldDir, err)
			}
		}
	}
	if s.profileStale(d, next, b) {
		if _, err := s.writeProfile(next, b); err != nil {
			return nil, err
		}
	}

	if err := s.writeLauncher(next, b); err != nil {
		return nil, err
	}

	if changed {
		if err := s.writeRecord(next); err != nil {
			return nil, err
		}
		log.Info().Msgf("updated web app %s", next.ID)
	}
	return next, nil
}

// Delete removes a web app: launcher entry, icon, profile and finally the
// record.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.remove(d); err != nil {
		return err
	}
	log.Info().Msgf("deleted web app %s", id)
	return nil
}

func (s *Store) remove(d *webapp.Descriptor) error {
	if err := helpers.RemoveIfExists(s.fs, s.launcherPath(d.ID)); err != nil {
		return ioErr("remove", s.launcherPath(d.ID), err)
	}
	if err := helpers.RemoveIfExists(s.fs, s.iconPath(d.ID)); err != nil {
		return ioErr("remove", s.iconPath(d.ID), err)
	}

	dirs := []string{filepath.Join(s.layout.ProfilesDir(), d.ID)}
	if b, ok := s.findBrowser(d.Browser); ok {
		if dir := s.builder.ProfileDir(d, b); dir != "" && dir != dirs[0] {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := s.fs.RemoveAll(dir); err != nil {
			return ioErr("remove", dir, err)
		}
	}

	if err := helpers.RemoveIfExists(s.fs, s.recordPath(d.ID)); err != nil {
		return ioErr("remove", s.recordPath(d.ID), err)
	}
	return nil
}

// IsNotFound is shorthand for errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
