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

package iconsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "hicolor", "48x48", "apps", "github.png"))
	touch(t, filepath.Join(root, "hicolor", "256x256", "apps", "github.png"))
	touch(t, filepath.Join(root, "hicolor", "scalable", "apps", "github.svg"))
	touch(t, filepath.Join(root, "hicolor", "scalable", "apps", "github-desktop.svg"))
	touch(t, filepath.Join(root, "hicolor", "scalable", "apps", "gitlab.svg"))
	touch(t, filepath.Join(root, "hicolor", "48x48", "apps", "github.xpm"))

	s := New([]string{root, filepath.Join(root, "missing")}, 0)
	got, err := s.Search(context.Background(), "GitHub")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, filepath.Join(root, "hicolor", "scalable", "apps", "github.svg"), got[0].URL)
	assert.True(t, got[0].Any)
	assert.Equal(t, filepath.Join(root, "hicolor", "256x256", "apps", "github.png"), got[1].URL)
	assert.Equal(t, 256, got[1].Size)
	assert.Equal(t, filepath.Join(root, "hicolor", "48x48", "apps", "github.png"), got[2].URL)
	assert.Equal(t, filepath.Join(root, "hicolor", "scalable", "apps", "github-desktop.svg"), got[3].URL)
	for _, c := range got {
		assert.Equal(t, site.SourceLocal, c.Source)
	}
}

func TestSearchLimit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, size := range []string{"16x16", "32x32", "48x48", "64x64"} {
		touch(t, filepath.Join(root, size, "apps", "mastodon.png"))
	}

	got, err := New([]string{root}, 2).Search(context.Background(), "mastodon")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 64, got[0].Size)
	assert.Equal(t, 48, got[1].Size)
}

func TestSearchShortQuery(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "x.png"))

	got, err := New([]string{root}, 0).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "apps", "example.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]string{root}, 0).Search(ctx, "example")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSizeFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want int
	}{
		{"/usr/share/icons/hicolor/48x48/apps/a.png", 48},
		{"/usr/share/icons/hicolor/256x256@2/apps/a.png", 256},
		{"/usr/share/icons/hicolor/scalable/apps/a.svg", 0},
		{"/usr/share/pixmaps/a.png", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sizeFromPath(tt.path))
		})
	}
}
