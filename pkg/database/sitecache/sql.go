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

package sitecache

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/database"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/site"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func sqlMigrateUp(db *sql.DB) error {
	if err := database.MigrateUp(db, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run site cache migrations: %w", err)
	}
	return nil
}

func sqlGet(ctx context.Context, db *sql.DB, url string) (*site.Metadata, time.Time, error) {
	var (
		fetchedAt int64
		raw       string
	)
	err := db.QueryRowContext(ctx,
		`select FetchedAt, Metadata from SiteProbes where URL = ?;`,
		url,
	).Scan(&fetchedAt, &raw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query site probe: %w", err)
	}

	var m site.Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode site probe: %w", err)
	}
	return &m, time.Unix(fetchedAt, 0), nil
}

func sqlPut(ctx context.Context, db *sql.DB, url string, now time.Time, m *site.Metadata) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode site probe: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		insert into SiteProbes (URL, FetchedAt, Metadata) values (?, ?, ?)
		on conflict (URL) do update set
			FetchedAt = excluded.FetchedAt,
			Metadata = excluded.Metadata;
	`, url, now.Unix(), string(raw))
	if err != nil {
		return fmt.Errorf("failed to store site probe: %w", err)
	}
	return nil
}

func sqlPrune(ctx context.Context, db *sql.DB, before time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `delete from SiteProbes where FetchedAt <= ?;`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune site probes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned site probes: %w", err)
	}
	return n, nil
}

//goland:noinspection SqlWithoutWhere
func sqlClear(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `delete from SiteProbes;`); err != nil {
		return fmt.Errorf("failed to clear site probes: %w", err)
	}
	return nil
}
