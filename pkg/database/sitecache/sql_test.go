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
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	testsqlmock "github.com/ZaparooProject/zaparoo-webapps/pkg/testing/sqlmock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGet_QueryErrorIsMiss(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`select FetchedAt, Metadata from SiteProbes`).
		WithArgs("https://example.com/").
		WillReturnError(errors.New("disk I/O error"))

	c := New(db, time.Hour, WithClock(clockwork.NewFakeClockAt(testNow)))
	_, ok := c.Get(context.Background(), "https://example.com/")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CorruptRowIsMiss(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`select FetchedAt, Metadata from SiteProbes`).
		WithArgs("https://example.com/").
		WillReturnRows(sqlmock.NewRows([]string{"FetchedAt", "Metadata"}).
			AddRow(testNow.Unix(), "{not json"))

	c := New(db, time.Hour, WithClock(clockwork.NewFakeClockAt(testNow)))
	_, ok := c.Get(context.Background(), "https://example.com/")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Hit(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`select FetchedAt, Metadata from SiteProbes`).
		WithArgs("https://example.com/").
		WillReturnRows(sqlmock.NewRows([]string{"FetchedAt", "Metadata"}).
			AddRow(testNow.Add(-time.Minute).Unix(), `{"url":"https://example.com/","name":"Example","candidates":[]}`))

	c := New(db, time.Hour, WithClock(clockwork.NewFakeClockAt(testNow)))
	m, ok := c.Get(context.Background(), "https://example.com/")
	require.True(t, ok)
	assert.Equal(t, "Example", m.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_ExecError(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`insert into SiteProbes`).
		WithArgs("https://example.com/", testNow.Unix(), sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	c := New(db, time.Hour, WithClock(clockwork.NewFakeClockAt(testNow)))
	err = c.Put(context.Background(), "https://example.com/", sampleMetadata("Example"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store site probe")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrune_UsesTTLCutoff(t *testing.T) {
	t.Parallel()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`delete from SiteProbes where FetchedAt`).
		WithArgs(testNow.Add(-2 * time.Hour).Unix()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	c := New(db, 2*time.Hour, WithClock(clockwork.NewFakeClockAt(testNow)))
	n, err := c.Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNullSQL(t *testing.T) {
	t.Parallel()
	c := New(nil, time.Hour)

	_, ok := c.Get(context.Background(), "https://example.com/")
	assert.False(t, ok)
	require.ErrorIs(t, c.Put(context.Background(), "https://example.com/", sampleMetadata("x")), ErrNullSQL)
	_, err := c.Prune(context.Background())
	require.ErrorIs(t, err, ErrNullSQL)
	require.ErrorIs(t, c.MigrateUp(), ErrNullSQL)
	assert.NoError(t, c.Close())
}
