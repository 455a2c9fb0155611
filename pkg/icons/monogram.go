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
	"hash/fnv"
	"image"
	"image/color"
	"net/url"
	"strings"
	"sync"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	monoFont    *truetype.Font
	monoFontErr error
	monoOnce    sync.Once
)

func monogramFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoFontErr = truetype.Parse(gobold.TTF)
	})
	return monoFont, monoFontErr
}

// Monogram draws a placeholder icon: the upper-cased initial of name on a
// rounded square colored from seed (usually the site URL). The same inputs
// always give the same pixels.
func Monogram(name, seed string, size int) *Canonical {
	if size < 1 {
		size = DefaultSize
	}
	s := float64(size)

	dc := gg.NewContext(size, size)
	dc.DrawRoundedRectangle(0, 0, s, s, s*0.18)
	dc.SetColor(MonogramColor(seed))
	dc.Fill()

	f, err := monogramFont()
	if err != nil {
		log.Error().Err(err).Msg("failed to load monogram font")
	} else {
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: s * 0.55}))
		dc.SetColor(color.White)
		dc.DrawStringAnchored(string(monogramLetter(f, name, seed)), s/2, s/2, 0.5, 0.5)
	}

	src := dc.Image()
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return &Canonical{Image: dst}
}

// MonogramColor is the background color used for seed.
func MonogramColor(seed string) color.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsv(hue, 0.55, 0.75).Clamped()
}

func monogramLetter(f *truetype.Font, name, seed string) rune {
	if r := helpers.Initial(name); r != 0 && f.Index(r) != 0 {
		return r
	}

	host := seed
	if u, err := url.Parse(seed); err == nil && u.Host != "" {
		host = helpers.DisplayHost(u)
	}
	for _, r := range strings.ToUpper(host) {
		if r >= 'A' && r <= 'Z' {
			return r
		}
	}
	return '#'
}
