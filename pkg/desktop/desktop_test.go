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

package desktop

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/testing/mocks"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const appsDir = "/home/user/.local/share/applications"

func TestRefresh(t *testing.T) {
	t.Parallel()

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("LookPath", UpdateDatabaseCmd).Return("/usr/bin/update-desktop-database", nil)
	mockCmd.On("Run", mock.Anything, "/usr/bin/update-desktop-database", []string{appsDir}).Return(nil)

	require.NoError(t, New(mockCmd, nil, appsDir).Refresh(context.Background()))
	mockCmd.AssertExpectations(t)
}

func TestRefreshMissingTool(t *testing.T) {
	t.Parallel()

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("LookPath", UpdateDatabaseCmd).Return("", exec.ErrNotFound)

	require.NoError(t, New(mockCmd, nil, appsDir).Refresh(context.Background()))
	mockCmd.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshFailure(t *testing.T) {
	t.Parallel()

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("LookPath", UpdateDatabaseCmd).Return("/usr/bin/update-desktop-database", nil)
	mockCmd.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("exit status 1"))

	err := New(mockCmd, nil, appsDir).Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh desktop database")
}

func TestLaunch(t *testing.T) {
	t.Parallel()

	desc := &webapp.Descriptor{
		ID:   "3f0c1a2b-4d5e-4f60-8a7b-9c0d1e2f3a4b",
		Name: "Example",
		URL:  "https://example.com/",
	}
	chromium := &browsers.Browser{ID: "chromium", Kind: browsers.KindChromium, Exec: "/usr/bin/chromium"}

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("Start", mock.Anything, "/usr/bin/chromium", []string{
		"--app=https://example.com/",
		"--class=WebApp-3f0c1a2b-4d5e-4f60-8a7b-9c0d1e2f3a4b",
		"--name=WebApp-3f0c1a2b-4d5e-4f60-8a7b-9c0d1e2f3a4b",
	}).Return(nil)

	d := New(mockCmd, &launcher.Builder{ProfilesDir: "/data/profiles"}, appsDir)
	require.NoError(t, d.Launch(context.Background(), desc, chromium))
	mockCmd.AssertExpectations(t)
}

func TestLaunchWithoutExecutable(t *testing.T) {
	t.Parallel()

	mockCmd := &mocks.MockCommandExecutor{}
	d := New(mockCmd, nil, appsDir)

	err := d.Launch(context.Background(), &webapp.Descriptor{Name: "x"}, &browsers.Browser{Kind: browsers.KindChromium})
	require.ErrorIs(t, err, launcher.ErrNoExec)
	mockCmd.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
}
