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
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// load reads the bytes behind an icon reference: http(s), data: and file:
// URLs, or an absolute local path. It also returns a content type when the
// source declares one.
func (r *Resolver) load(ctx context.Context, ref string) ([]byte, string, error) {
	ref = strings.TrimSpace(ref)
	if filepath.IsAbs(ref) {
		return r.readFile(ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, "", fmt.Errorf("invalid icon reference: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		resp, err := r.client.Fetch(ctx, ref, MaxIconBytes)
		if err != nil {
			return nil, "", fmt.Errorf("error downloading icon: %w", err)
		}
		if resp.Truncated {
			return nil, "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxIconBytes)
		}
		return resp.Body, resp.ContentType, nil
	case "data":
		return decodeDataURI(ref)
	case "file":
		return r.readFile(u.Path)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedSource, u.Scheme)
	}
}

func (r *Resolver) readFile(path string) ([]byte, string, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("error opening icon file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, MaxIconBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("error reading icon file: %w", err)
	}
	if len(data) > MaxIconBytes {
		return nil, "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxIconBytes)
	}
	return data, "", nil
}

// decodeDataURI handles data:[<mediatype>][;base64],<data>.
func decodeDataURI(ref string) ([]byte, string, error) {
	rest := ref[len("data:"):]
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: malformed data uri", ErrUnsupportedSource)
	}

	isBase64 := false
	params := strings.Split(meta, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if isBase64 {
		payload = strings.Join(strings.Fields(payload), "")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, "", fmt.Errorf("error decoding base64 data uri: %w", err)
			}
		}
		return data, mediaType, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("error decoding data uri: %w", err)
	}
	if len(data) > MaxIconBytes {
		return nil, "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxIconBytes)
	}
	return []byte(data), mediaType, nil
}
