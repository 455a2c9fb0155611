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

// Package sitecache keeps successful site probes in SQLite so reinstalling
// or refreshing an app doesn't refetch the page.
package sitecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/config"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/database"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DBFile is the cache database name inside the cache dir.
const DBFile = config.SiteCacheFile

var ErrNullSQL = errors.New("site cache is not connected")

type Cache struct {
	sql   *sql.DB
	clock clockwork.Clock
	ttl   time.Duration
}

type Option func(*Cache)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// Open opens or creates the cache database at path and migrates it.
func Open(path string, ttl time.Duration, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}
	db, err := sql.Open("sqlite3", path+database.SQLiteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c := New(db, ttl, opts...)
	if err := c.MigrateUp(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an already open database. The schema is not touched.
func New(db *sql.DB, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		sql:   db,
		clock: clockwork.NewRealClock(),
		ttl:   ttl,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) MigrateUp() error {
	if c.sql == nil {
		return ErrNullSQL
	}
	return sqlMigrateUp(c.sql)
}

// Get returns the cached probe of url if it is younger than the TTL.
// Errors are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, url string) (*site.Metadata, bool) {
	if c.sql == nil {
		return nil, false
	}
	m, fetchedAt, err := sqlGet(ctx, c.sql, url)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Msgf("error reading site cache: %s", url)
		}
		return nil, false
	}
	if age := c.clock.Since(fetchedAt); age >= c.ttl {
		log.Debug().Msgf("site cache entry expired (%s old): %s", age, url)
		return nil, false
	}
	return m, true
}

// Put stores m for url. Degraded probes are not cached.
func (c *Cache) Put(ctx context.Context, url string, m *site.Metadata) error {
	if c.sql == nil {
		return ErrNullSQL
	}
	if m == nil || m.Degraded {
		return nil
	}
	return sqlPut(ctx, c.sql, url, c.clock.Now(), m)
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.sql == nil {
		return 0, ErrNullSQL
	}
	return sqlPrune(ctx, c.sql, c.clock.Now().Add(-c.ttl))
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	if c.sql == nil {
		return ErrNullSQL
	}
	return sqlClear(ctx, c.sql)
}

func (c *Cache) Close() error {
	if c.sql == nil {
		return nil
	}
	if err := c.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
