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

package site

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// manifest is the part of a web app manifest the probe cares about.
type manifest struct {
	Name       string         `json:"name"`
	ShortName  string         `json:"short_name"`
	ThemeColor string         `json:"theme_color"`
	Icons      []manifestIcon `json:"icons"`
	candidates []IconCandidate
}

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

func (p *Prober) fetchManifest(ctx context.Context, rawURL string) (*manifest, error) {
	resp, err := p.client.Fetch(ctx, rawURL, MaxManifestBytes)
	if err != nil {
		return nil, err
	}
	if resp.Truncated {
		return nil, fmt.Errorf("manifest larger than %d bytes", MaxManifestBytes)
	}
	base := resp.FinalURL
	if base == nil {
		base, err = url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid manifest url: %w", err)
		}
	}
	return parseManifest(resp.Body, base)
}

// parseManifest decodes a manifest and resolves its icons against the
// manifest URL. Monochrome-only icons are skipped.
func parseManifest(data []byte, base *url.URL) (*manifest, error) {
	var mf manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	for _, icon := range mf.Icons {
		if monochrome(icon.Purpose) {
			continue
		}
		ref, ok := resolveRef(base, strings.TrimSpace(icon.Src))
		if !ok {
			continue
		}
		size, anySize := parseSizes(icon.Sizes)
		format := formatHint(icon.Type, ref)
		if format == "image/svg+xml" {
			anySize = true
		}
		mf.candidates = append(mf.candidates, IconCandidate{
			URL:    ref,
			Source: SourceManifest,
			Format: format,
			Size:   size,
			Any:    anySize,
		})
	}
	return &mf, nil
}

func monochrome(purpose string) bool {
	fields := strings.Fields(strings.ToLower(purpose))
	if len(fields) == 0 {
		return false
	}
	return !slices.ContainsFunc(fields, func(f string) bool { return f != "monochrome" })
}
