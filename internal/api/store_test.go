package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

func newStoreServer(t *testing.T) (*Server, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewServer(mock, &MockBuilder{}, nil, nil), mock
}

func TestInsertBuild(t *testing.T) {
	srv, mock := newStoreServer(t)

	rec := &BuildRecord{
		ID:      uuid.NewString(),
		Subject: "Data Structures",
		Topics:  []string{"Arrays", "Hashing"},
		Entries: []engine.PlaylistEntry{
			{Position: 0, ItemID: "v1", Title: "Arrays Explained"},
			{Position: 1, ItemID: "v2", Title: "Hashing Explained"},
		},
		TotalDurationSeconds: 1800,
		Anchor:               &engine.AnchorRef{ID: "seq-1", CoverageScore: 80},
		CreatedAt:            time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO builds").
		WithArgs(rec.ID, rec.Subject, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1800, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO build_entries").
		WithArgs(rec.ID, 0, "v1", "Arrays Explained", "", 0, "", "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO build_entries").
		WithArgs(rec.ID, 1, "v2", "Hashing Explained", "", 0, "", "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, srv.insertBuild(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBuild_RollsBackOnEntryError(t *testing.T) {
	srv, mock := newStoreServer(t)

	rec := &BuildRecord{
		ID:        uuid.NewString(),
		Subject:   "Data Structures",
		Topics:    []string{"Arrays"},
		Entries:   []engine.PlaylistEntry{{Position: 0, ItemID: "v1"}},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO builds").
		WithArgs(rec.ID, rec.Subject, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 0, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO build_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	assert.Error(t, srv.insertBuild(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBuild_Store(t *testing.T) {
	srv, mock := newStoreServer(t)

	buildID := uuid.NewString()
	created := time.Now().UTC()

	mock.ExpectQuery("FROM builds").
		WithArgs(buildID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "subject", "topics", "preferences", "gaps_failed", "anchor", "total_duration_seconds", "created_at",
		}).AddRow(
			buildID, "Data Structures",
			[]byte(`["Arrays"]`), []byte(`{"learningMode":"balanced"}`), []byte(`[]`),
			[]byte(`{"id":"seq-1","coverageScore":80}`), 900, created,
		))
	mock.ExpectQuery("FROM build_entries").
		WithArgs(buildID).
		WillReturnRows(pgxmock.NewRows([]string{
			"position", "item_id", "title", "channel_name", "duration_seconds", "duration_display", "topic_matched", "source",
		}).AddRow(
			0, "v1", "Arrays Explained", "CS Channel", 900, "15:00", "Arrays", "anchor",
		))

	rec, err := srv.getBuild(context.Background(), buildID)
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", rec.Subject)
	assert.Equal(t, []string{"Arrays"}, rec.Topics)
	require.NotNil(t, rec.Anchor)
	assert.Equal(t, 80, rec.Anchor.CoverageScore)
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, "Arrays Explained", rec.Entries[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBuilds_Store(t *testing.T) {
	srv, mock := newStoreServer(t)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM builds b").
		WithArgs(listLimit).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "subject", "total_duration_seconds", "created_at", "count",
		}).
			AddRow("b1", "Data Structures", 2100, now, 2).
			AddRow("b2", "Linear Algebra", 5400, now, 6))

	builds, err := srv.listBuilds(context.Background(), listLimit)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, 6, builds[1].EntryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
