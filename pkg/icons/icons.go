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

// Package icons turns arbitrary icon bytes into fixed-size canonical
// bitmaps, and synthesizes a monogram when nothing usable exists.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

const (
	// DefaultMinSize is the smallest raster edge accepted as usable.
	DefaultMinSize = 16
	// MaxSourceEdge is the largest raster edge decoded. Bigger sources are
	// unusable rather than decoded into a huge pixel buffer.
	MaxSourceEdge = 4096
	// DefaultSize is the canonical icon edge length.
	DefaultSize = 256
)

// ErrUnusable is wrapped by every CodecError. Callers treat it as "try the
// next candidate".
var ErrUnusable = errors.New("unusable icon")

// CodecError describes why some icon bytes could not be used.
type CodecError struct {
	Err    error
	Format string
	Reason string
}

func (e *CodecError) Error() string {
	msg := "icon " + e.Reason
	if e.Format != "" {
		msg = e.Format + " " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CodecError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnusable}
	}
	return []error{ErrUnusable, e.Err}
}

// Bitmap is a decoded icon at its native resolution. Vector sources are
// rasterized straight to the requested target box.
type Bitmap struct {
	Image  image.Image
	Format string
	Vector bool
}

// Canonical is a square icon of a fixed size, ready to be stored.
type Canonical struct {
	Image *image.NRGBA
}

// Size is the edge length in pixels.
func (c *Canonical) Size() int {
	return c.Image.Bounds().Dx()
}

// PNG encodes the icon. Identical pixels always produce identical bytes.
func (c *Canonical) PNG() ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, c.Image); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
