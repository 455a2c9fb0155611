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

// Package resolver turns icon candidates into a canonical icon. The first
// candidate that downloads and decodes wins, with no comparison between
// successful candidates. When none works a monogram is synthesized, so
// resolution never fails.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/icons"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/shared/httpclient"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// DefaultTimeout bounds each candidate download.
	DefaultTimeout = 10 * time.Second
	// MaxIconBytes caps a single icon download or file read.
	MaxIconBytes = 5 << 20
)

var (
	ErrUnsupportedSource = errors.New("unsupported icon source")
	ErrTooLarge          = errors.New("icon too large")
)

type Request struct {
	Name       string
	URL        string
	Candidates []site.IconCandidate
	// Size is the canonical edge length, DefaultSize when zero.
	Size int
}

// Failure is a candidate that was tried and rejected.
type Failure struct {
	Err       error
	Candidate site.IconCandidate
}

type Result struct {
	Icon *icons.Canonical
	// Source is the winning candidate, nil for a monogram.
	Source      *site.IconCandidate
	Failures    []Failure
	Synthesized bool
}

type Resolver struct {
	client  *httpclient.Client
	fs      afero.Fs
	codec   *icons.Codec
	timeout time.Duration
	size    int
}

type Option func(*Resolver)

// WithFs sets the filesystem local candidates are read from.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) { r.fs = fs }
}

// WithTimeout sets the per-candidate download timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

func WithCodec(c *icons.Codec) Option {
	return func(r *Resolver) { r.codec = c }
}

// WithSize sets the default canonical size.
func WithSize(size int) Option {
	return func(r *Resolver) { r.size = size }
}

func New(client *httpclient.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:  client,
		fs:      afero.NewOsFs(),
		codec:   icons.NewCodec(icons.DefaultMinSize),
		timeout: DefaultTimeout,
		size:    icons.DefaultSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = httpclient.NewClient(httpclient.Options{MaxRedirects: -1})
	}
	return r
}

// Resolve tries req.Candidates in order and returns the first usable icon,
// or a monogram of req.Name colored from req.URL. It never fails.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	size := req.Size
	if size < 1 {
		size = r.size
	}

	var res Result
	for i := range req.Candidates {
		c := req.Candidates[i]
		if err := ctx.Err(); err != nil {
			log.Debug().Err(err).Msg("icon resolution cancelled")
			break
		}

		icon, err := r.try(ctx, c, size)
		if err != nil {
			log.Debug().Err(err).Msgf("icon candidate rejected: %s", shorten(c.URL))
			res.Failures = append(res.Failures, Failure{Candidate: c, Err: err})
			continue
		}

		log.Info().Msgf("resolved icon from %s candidate: %s", c.Source, shorten(c.URL))
		res.Icon = icon
		res.Source = &c
		return res
	}

	name := req.Name
	if name == "" {
		if u, err := url.Parse(req.URL); err == nil {
			name = helpers.DisplayHost(u)
		}
	}
	log.Info().Msgf("no usable icon for %s, using monogram", req.URL)
	res.Icon = icons.Monogram(name, req.URL, size)
	res.Synthesized = true
	return res
}

func (r *Resolver) try(ctx context.Context, c site.IconCandidate, size int) (*icons.Canonical, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, contentType, err := r.load(ctx, c.URL)
	if err != nil {
		return nil, err
	}

	hint := c.Format
	if hint == "" {
		hint = contentType
	}
	if hint == "" {
		hint = c.URL
	}

	icon, err := r.codec.Normalize(data, hint, size)
	if err != nil {
		return nil, fmt.Errorf("error decoding icon: %w", err)
	}
	return icon, nil
}

// shorten keeps data: URIs out of the logs.
func shorten(s string) string {
	const limit = 96
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
