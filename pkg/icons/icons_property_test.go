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

package icons

import (
	"image/color"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyNormalizeAlwaysTargetSquare verifies every usable raster comes
// out as an exact target×target square.
func TestPropertyNormalizeAlwaysTargetSquare(t *testing.T) {
	t.Parallel()
	codec := NewCodec(DefaultMinSize)

	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(DefaultMinSize, 300).Draw(t, "w")
		h := rapid.IntRange(DefaultMinSize, 300).Draw(t, "h")
		target := rapid.IntRange(16, 256).Draw(t, "target")

		img := solid(w, h, color.NRGBA{G: 255, A: 255})
		icon := Resize(img, target)
		b := icon.Image.Bounds()
		if b.Dx() != target || b.Dy() != target {
			t.Fatalf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), target, target)
		}

		bm, err := codec.Decode(mustPNG(img), "", target)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if bm.Image.Bounds().Dx() != w || bm.Image.Bounds().Dy() != h {
			t.Fatalf("decoded size changed")
		}
	})
}

// TestPropertyMonogramSquare verifies monograms honor any requested size.
func TestPropertyMonogramSquare(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 256).Draw(t, "size")
		name := rapid.String().Draw(t, "name")

		icon := Monogram(name, "https://example.com", size)
		if icon.Size() != size || icon.Image.Bounds().Dy() != size {
			t.Fatalf("monogram is %v, want %d", icon.Image.Bounds(), size)
		}
	})
}
