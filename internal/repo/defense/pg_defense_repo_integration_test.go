//go:build integration
// +build integration

package defense_repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/defense"
	"disputedesk/internal/testinfra"
)

func TestPgDefenseRepo_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := testinfra.NewPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { pg.Cleanup(ctx) })

	repo := NewPgDefenseRepo(pg.Pool)

	newRecord := func(disputeID string) defense.Record {
		now := time.Now().UTC().Truncate(time.Microsecond)
		return defense.Record{
			ID:        uuid.NewString(),
			DisputeID: disputeID,
			Status:    defense.StatusDrafted,
			Source:    defense.SourceAutomatic,
			Dossier:   "contestação referente ao pedido #4521",
			Opinion:   "parecer favorável à lojista",
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	t.Run("create and read back", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		rec := newRecord("cb_1")

		require.NoError(t, repo.Create(ctx, rec))

		got, err := repo.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.DisputeID, got.DisputeID)
		assert.Equal(t, defense.StatusDrafted, got.Status)
		assert.Equal(t, rec.Dossier, got.Dossier)
		assert.Nil(t, got.SubmittedAt)
	})

	t.Run("update persists submission", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		rec := newRecord("cb_2")
		require.NoError(t, repo.Create(ctx, rec))

		submittedAt := time.Now().UTC().Truncate(time.Microsecond)
		rec.Status = defense.StatusSubmitted
		rec.SubmissionResponse = json.RawMessage(`{"defense_id": "def_gw_1"}`)
		rec.SubmittedAt = &submittedAt
		rec.UpdatedAt = submittedAt
		require.NoError(t, repo.Update(ctx, rec))

		got, err := repo.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, defense.StatusSubmitted, got.Status)
		assert.JSONEq(t, `{"defense_id": "def_gw_1"}`, string(got.SubmissionResponse))
		require.NotNil(t, got.SubmittedAt)
		assert.True(t, got.SubmittedAt.Equal(submittedAt))
	})

	t.Run("list filters by dispute", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		require.NoError(t, repo.Create(ctx, newRecord("cb_a")))
		require.NoError(t, repo.Create(ctx, newRecord("cb_a")))
		require.NoError(t, repo.Create(ctx, newRecord("cb_b")))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		forA, err := repo.ListByDisputeID(ctx, "cb_a")
		require.NoError(t, err)
		assert.Len(t, forA, 2)
	})

	t.Run("missing ids map onto not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, apperror.ErrDefenseNotFound)

		ghost := newRecord("cb_x")
		err = repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, apperror.ErrDefenseNotFound)
	})
}
