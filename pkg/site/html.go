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
	"bytes"
	"io"
	"mime"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// page holds the raw values found in a document. Each field is filled
// independently, a missing one never stops the others.
type page struct {
	appName    string
	ogSiteName string
	title      string
	ogTitle    string
	themeColor string
	manifest   string
	icons      []IconCandidate
	ogImages   []IconCandidate
}

var iconRels = []string{
	"icon",
	"apple-touch-icon",
	"apple-touch-icon-precomposed",
	"fluid-icon",
}

func parsePage(body []byte, contentType string, pageURL *url.URL) *page {
	pg := &page{}

	var r io.Reader = bytes.NewReader(body)
	if decoded, err := charset.NewReader(r, contentType); err == nil {
		r = decoded
	} else {
		log.Debug().Err(err).Msg("unknown page charset, assuming utf-8")
		r = bytes.NewReader(body)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		log.Debug().Err(err).Msgf("unparseable page: %s", pageURL)
		return pg
	}

	base := pageURL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := pageURL.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	pg.title = doc.Find("title").First().Text()

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		name := strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		property := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))
		switch {
		case name == "application-name":
			setOnce(&pg.appName, content)
		case name == "theme-color":
			// the first theme-color wins, media variants included
			setOnce(&pg.themeColor, content)
		case property == "og:site_name":
			setOnce(&pg.ogSiteName, content)
		case property == "og:title":
			setOnce(&pg.ogTitle, content)
		case property == "og:image" || property == "og:image:secure_url" || property == "og:image:url":
			if ref, ok := resolveRef(base, content); ok {
				pg.ogImages = append(pg.ogImages, IconCandidate{
					URL:    ref,
					Source: SourceOpenGraph,
					Format: formatHint("", ref),
				})
			}
		}
	})

	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		rels := strings.Fields(strings.ToLower(s.AttrOr("rel", "")))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if slices.Contains(rels, "manifest") {
			if pg.manifest == "" {
				if ref, ok := resolveRef(base, href); ok && !strings.HasPrefix(ref, "data:") {
					pg.manifest = ref
				}
			}
			return
		}
		if !slices.ContainsFunc(rels, func(r string) bool { return slices.Contains(iconRels, r) }) {
			return
		}
		ref, ok := resolveRef(base, href)
		if !ok {
			return
		}
		size, anySize := parseSizes(s.AttrOr("sizes", ""))
		format := formatHint(s.AttrOr("type", ""), ref)
		if format == "image/svg+xml" {
			anySize = true
		}
		pg.icons = append(pg.icons, IconCandidate{
			URL:    ref,
			Source: SourceLink,
			Format: format,
			Size:   size,
			Any:    anySize,
		})
	})

	return pg
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// resolveRef makes href absolute against base. data: URIs pass through.
func resolveRef(base *url.URL, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(href), "data:") {
		return href, true
	}
	ref, err := base.Parse(href)
	if err != nil {
		return "", false
	}
	switch ref.Scheme {
	case "http", "https":
	default:
		return "", false
	}
	ref.Fragment = ""
	return ref.String(), true
}

// parseSizes returns the largest edge in a sizes attribute like
// "16x16 32x32", and whether it contains "any".
func parseSizes(v string) (int, bool) {
	largest := 0
	anySize := false
	for _, tok := range strings.Fields(strings.ToLower(v)) {
		if tok == "any" {
			anySize = true
			continue
		}
		w, h, ok := strings.Cut(tok, "x")
		if !ok {
			continue
		}
		wi, errW := strconv.Atoi(w)
		hi, errH := strconv.Atoi(h)
		if errW != nil || errH != nil {
			continue
		}
		largest = max(largest, min(wi, hi))
	}
	return largest, anySize
}

// formatHint prefers a declared type, then the MIME type of a data: URI,
// then the file extension of the URL path.
func formatHint(declared, ref string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return mt
		}
	}
	if rest, ok := strings.CutPrefix(ref, "data:"); ok {
		mt, _, _ := strings.Cut(rest, ",")
		mt, _, _ = strings.Cut(mt, ";")
		return strings.ToLower(mt)
	}
	if u, err := url.Parse(ref); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".svg":
			return "image/svg+xml"
		case ".ico":
			return "image/x-icon"
		case ".png":
			return "image/png"
		case ".jpg", ".jpeg":
			return "image/jpeg"
		case ".gif":
			return "image/gif"
		case ".webp":
			return "image/webp"
		case ".bmp":
			return "image/bmp"
		}
	}
	return ""
}

// sortBySize orders candidates largest first. Scalable icons count as the
// largest. Ties keep document order.
func sortBySize(cands []IconCandidate) []IconCandidate {
	out := slices.Clone(cands)
	slices.SortStableFunc(out, func(a, b IconCandidate) int {
		switch {
		case a.Any && b.Any:
			return 0
		case a.Any:
			return -1
		case b.Any:
			return 1
		}
		return b.Size - a.Size
	})
	return out
}
