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
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatWebP = "webp"
	FormatICO  = "ico"
	FormatSVG  = "svg"
)

var mimeFormats = map[string]string{
	"image/png":                FormatPNG,
	"image/jpeg":               FormatJPEG,
	"image/gif":                FormatGIF,
	"image/bmp":                FormatBMP,
	"image/x-ms-bmp":           FormatBMP,
	"image/webp":               FormatWebP,
	"image/x-icon":             FormatICO,
	"image/vnd.microsoft.icon": FormatICO,
	"image/svg+xml":            FormatSVG,
}

// Codec decodes and normalizes icon bytes.
type Codec struct {
	// MinSize is the smallest raster width and height accepted.
	MinSize int
}

func NewCodec(minSize int) *Codec {
	if minSize < 1 {
		minSize = DefaultMinSize
	}
	return &Codec{MinSize: minSize}
}

// Decode reads icon bytes of any supported format. The format is sniffed
// from the content first; hint (a MIME type, file extension or URL) is only
// consulted when sniffing is inconclusive. Vector images are rasterized to
// fit a target×target box.
func (c *Codec) Decode(data []byte, hint string, target int) (*Bitmap, error) {
	if len(data) == 0 {
		return nil, &CodecError{Reason: "is empty"}
	}

	format := sniffFormat(data)
	if format == "" {
		format = formatFromHint(hint)
	}
	if format == "" {
		return nil, &CodecError{Reason: "format not recognized"}
	}

	if format == FormatSVG {
		img, err := rasterizeSVG(data, target)
		if err != nil {
			return nil, err
		}
		return &Bitmap{Image: img, Format: format, Vector: true}, nil
	}

	cfg, err := decodeConfig(format, data)
	if err != nil {
		return nil, &CodecError{Format: format, Reason: "is corrupt", Err: err}
	}
	if cfg.Width > MaxSourceEdge || cfg.Height > MaxSourceEdge {
		return nil, &CodecError{
			Format: format,
			Reason: fmt.Sprintf("is too large (%dx%d)", cfg.Width, cfg.Height),
		}
	}

	img, err := decodeRaster(format, data)
	if err != nil {
		return nil, &CodecError{Format: format, Reason: "is corrupt", Err: err}
	}

	b := img.Bounds()
	if b.Dx() < c.minSize() || b.Dy() < c.minSize() {
		return nil, &CodecError{
			Format: format,
			Reason: fmt.Sprintf("is too small (%dx%d)", b.Dx(), b.Dy()),
		}
	}

	return &Bitmap{Image: img, Format: format}, nil
}

// Normalize decodes data and resizes it to a canonical target×target icon.
func (c *Codec) Normalize(data []byte, hint string, target int) (*Canonical, error) {
	bm, err := c.Decode(data, hint, target)
	if err != nil {
		return nil, err
	}
	return Resize(bm.Image, target), nil
}

func (c *Codec) minSize() int {
	if c == nil || c.MinSize < 1 {
		return DefaultMinSize
	}
	return c.MinSize
}

// Resize scales img to fit a target×target square, preserving aspect ratio
// and centering it over transparent padding.
func Resize(img image.Image, target int) *Canonical {
	if target < 1 {
		target = DefaultSize
	}
	dst := image.NewNRGBA(image.Rect(0, 0, target, target))

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return &Canonical{Image: dst}
	}

	scale := float64(target) / float64(max(w, h))
	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))
	x := (target - dw) / 2
	y := (target - dh) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+dw, y+dh), img, b, draw.Src, nil)
	return &Canonical{Image: dst}
}

func sniffFormat(data []byte) string {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if f, ok := mimeFormats[m.String()]; ok {
			return f
		}
	}
	return ""
}

func formatFromHint(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if i := strings.IndexByte(hint, ';'); i >= 0 {
		hint = strings.TrimSpace(hint[:i])
	}
	if f, ok := mimeFormats[hint]; ok {
		return f
	}
	if i := strings.IndexAny(hint, "?#"); i >= 0 {
		hint = hint[:i]
	}
	ext := hint
	if i := strings.LastIndexByte(hint, '.'); i >= 0 {
		ext = hint[i+1:]
	}
	switch ext {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	case "gif":
		return FormatGIF
	case "bmp":
		return FormatBMP
	case "webp":
		return FormatWebP
	case "ico", "cur":
		return FormatICO
	case "svg", "svgz":
		return FormatSVG
	default:
		return ""
	}
}

// decodeConfig reads only the header, so oversized images are refused
// before any pixel buffer is allocated.
func decodeConfig(format string, data []byte) (image.Config, error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		return png.DecodeConfig(r)
	case FormatJPEG:
		return jpeg.DecodeConfig(r)
	case FormatGIF:
		return gif.DecodeConfig(r)
	case FormatBMP:
		return bmp.DecodeConfig(r)
	case FormatWebP:
		return webp.DecodeConfig(r)
	case FormatICO:
		return ico.DecodeConfig(r)
	default:
		cfg, _, err := image.DecodeConfig(r)
		return cfg, err //nolint:wrapcheck // wrapped by caller
	}
}

func decodeRaster(format string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatGIF:
		return gif.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatWebP:
		return webp.Decode(r)
	case FormatICO:
		// go-ico picks the largest image in the directory
		return ico.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err //nolint:wrapcheck // wrapped by caller
	}
}
