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

package resolver

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"pgregory.net/rapid"
)

// TestPropertyResolveNeverFails verifies any candidate list, including
// garbage and empty ones, resolves to an icon of the requested size.
func TestPropertyResolveNeverFails(t *testing.T) {
	t.Parallel()
	r := New(nil)

	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(16, 96).Draw(t, "size")
		blobs := rapid.SliceOfN(rapid.SliceOf(rapid.Byte()), 0, 4).Draw(t, "blobs")
		name := rapid.String().Draw(t, "name")

		cands := make([]site.IconCandidate, 0, len(blobs))
		for _, b := range blobs {
			cands = append(cands, site.IconCandidate{
				URL:    "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b),
				Source: site.SourceLink,
			})
		}

		res := r.Resolve(context.Background(), Request{
			Name:       name,
			URL:        "https://example.com",
			Candidates: cands,
			Size:       size,
		})
		if res.Icon == nil {
			t.Fatalf("nil icon")
		}
		if got := res.Icon.Size(); got != size {
			t.Fatalf("got size %d, want %d", got, size)
		}
		if !res.Synthesized && res.Source == nil {
			t.Fatalf("resolved icon without a source")
		}
	})
}
