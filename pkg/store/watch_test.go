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
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchNotifiesOnChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	layout := Layout{Data: dir + "/data", Applications: dir + "/applications", Home: dir}
	clock := clockwork.NewFakeClock()
	s, err := Open(afero.NewOsFs(), layout, testBrowsers,
		WithClock(clock), WithIconSize(testIconSize), WithDebounce(time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notified := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() { notified <- struct{}{} })
	}()

	// the watcher may not be registered yet, keep creating until it fires
	require.Eventually(t, func() bool {
		if _, err := s.Create(ctx, newApp("Watched", "https://example.com"), nil); err != nil {
			return false
		}
		waitCtx, waitCancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer waitCancel()
		if clock.BlockUntilContext(waitCtx, 1) != nil {
			return false
		}
		clock.Advance(time.Second)
		select {
		case <-notified:
			return true
		case <-time.After(time.Second):
			return false
		}
	}, 8*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
