package defense_repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/defense"
)

func newRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, mock
}

func sampleRecord() defense.Record {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return defense.Record{
		ID:        uuid.NewString(),
		DisputeID: "cb_1",
		Status:    defense.StatusDrafted,
		Source:    defense.SourceManual,
		Dossier:   "texto da defesa",
		Opinion:   "parecer favorável",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreate(t *testing.T) {
	r, mock := newRepo(t)
	ctx := context.Background()
	rec := sampleRecord()

	t.Run("inserts all columns", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO defenses \(id,dispute_id,status,source,dossier,opinion,submission_response,created_at,updated_at,submitted_at\)`).
			WithArgs(rec.ID, rec.DisputeID, rec.Status, rec.Source, rec.Dossier, rec.Opinion,
				rec.SubmissionResponse, rec.CreatedAt, rec.UpdatedAt, rec.SubmittedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, r.Create(ctx, rec))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces database errors", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO defenses`).WillReturnError(assert.AnError)

		err := r.Create(ctx, rec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create defense")
	})
}

func TestGetByID(t *testing.T) {
	r, mock := newRepo(t)
	ctx := context.Background()
	rec := sampleRecord()

	t.Run("scans one record", func(t *testing.T) {
		rows := mock.NewRows([]string{"id", "dispute_id", "status", "source", "dossier", "opinion",
			"submission_response", "created_at", "updated_at", "submitted_at"}).
			AddRow(rec.ID, rec.DisputeID, rec.Status, rec.Source, rec.Dossier, rec.Opinion,
				json.RawMessage(nil), rec.CreatedAt, rec.UpdatedAt, nil)

		mock.ExpectQuery(`SELECT id, dispute_id, status, source, dossier, opinion, submission_response, created_at, updated_at, submitted_at FROM defenses WHERE id = \$1`).
			WithArgs(rec.ID).
			WillReturnRows(rows)

		got, err := r.GetByID(ctx, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, defense.StatusDrafted, got.Status)
		assert.Nil(t, got.SubmittedAt)
	})

	t.Run("maps missing row onto not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM defenses WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(mock.NewRows([]string{"id"}))

		_, err := r.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrDefenseNotFound)
	})
}

func TestListByDisputeID(t *testing.T) {
	r, mock := newRepo(t)
	ctx := context.Background()
	rec := sampleRecord()

	rows := mock.NewRows([]string{"id", "dispute_id", "status", "source", "dossier", "opinion",
		"submission_response", "created_at", "updated_at", "submitted_at"}).
		AddRow(rec.ID, rec.DisputeID, rec.Status, rec.Source, rec.Dossier, rec.Opinion,
			json.RawMessage(nil), rec.CreatedAt, rec.UpdatedAt, nil)

	mock.ExpectQuery(`SELECT .+ FROM defenses WHERE dispute_id = \$1 ORDER BY created_at DESC`).
		WithArgs("cb_1").
		WillReturnRows(rows)

	recs, err := r.ListByDisputeID(ctx, "cb_1")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "cb_1", recs[0].DisputeID)
}

func TestUpdate(t *testing.T) {
	r, mock := newRepo(t)
	ctx := context.Background()
	rec := sampleRecord()
	rec.Status = defense.StatusSubmitted
	rec.SubmissionResponse = json.RawMessage(`{"ok":true}`)

	t.Run("updates the mutable columns", func(t *testing.T) {
		mock.ExpectExec(`UPDATE defenses SET status = \$1, dossier = \$2, opinion = \$3, submission_response = \$4, updated_at = \$5, submitted_at = \$6 WHERE id = \$7`).
			WithArgs(rec.Status, rec.Dossier, rec.Opinion, rec.SubmissionResponse,
				rec.UpdatedAt, rec.SubmittedAt, rec.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, r.Update(ctx, rec))
	})

	t.Run("zero rows affected is not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE defenses SET`).
			WithArgs(rec.Status, rec.Dossier, rec.Opinion, rec.SubmissionResponse,
				rec.UpdatedAt, rec.SubmittedAt, rec.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := r.Update(ctx, rec)

		assert.ErrorIs(t, err, apperror.ErrDefenseNotFound)
	})
}
