package defense

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/dispute"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      *Service
	repo     *MockRepo
	gateway  *MockGatewaySubmitter
	disputes *MockDisputeDirectory
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	gateway := NewMockGatewaySubmitter(ctrl)
	disputes := NewMockDisputeDirectory(ctrl)
	svc := NewService(repo, gateway, disputes, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, repo: repo, gateway: gateway, disputes: disputes}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"drafted to approved", StatusDrafted, StatusApproved, true},
		{"drafted straight to submitted", StatusDrafted, StatusSubmitted, true},
		{"approved to submitted", StatusApproved, StatusSubmitted, true},
		{"approved back to drafted", StatusApproved, StatusDrafted, false},
		{"submitted to won", StatusSubmitted, StatusWon, true},
		{"submitted to lost", StatusSubmitted, StatusLost, true},
		{"won to submitted", StatusWon, StatusSubmitted, false},
		{"lost to won", StatusLost, StatusWon, false},
		{"drafted to won skips submission", StatusDrafted, StatusWon, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("drafts against an existing dispute", func(t *testing.T) {
		f := newFixture(t)
		f.disputes.EXPECT().EnsureDispute(gomock.Any(), "cb_1").
			Return(dispute.Event{ID: "cb_1", AmountMinorUnits: 15000}, nil)
		var created Record
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec Record) error {
				created = rec
				return nil
			})

		rec, err := f.svc.Create(ctx, CreateInput{DisputeID: "cb_1", Dossier: "texto da defesa"})

		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, StatusDrafted, rec.Status)
		assert.Equal(t, SourceManual, rec.Source)
		assert.Equal(t, "texto da defesa", rec.Dossier)
		assert.Equal(t, created, rec)
	})

	t.Run("empty dossier is prefilled from the dispute draft", func(t *testing.T) {
		f := newFixture(t)
		parent := dispute.Event{
			ID:               "cb_1",
			AmountMinorUnits: 15000,
			Reason:           "Produto não recebido",
			Draft: &dispute.DraftDefense{
				ContestationType: dispute.ContestationProductNotReceived,
				OrderNumber:      "#4521",
				TrackingCode:     "BR123",
				Carrier:          "Correios",
			},
		}
		f.disputes.EXPECT().EnsureDispute(gomock.Any(), "cb_1").Return(parent, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		rec, err := f.svc.Create(ctx, CreateInput{DisputeID: "cb_1", Source: SourceAutomatic})

		require.NoError(t, err)
		assert.Contains(t, rec.Dossier, "150.00")
		assert.Contains(t, rec.Dossier, "#4521")
		assert.Contains(t, rec.Dossier, "BR123")
		assert.Equal(t, SourceAutomatic, rec.Source)
	})

	t.Run("unknown dispute gets a stub parent", func(t *testing.T) {
		f := newFixture(t)
		f.disputes.EXPECT().EnsureDispute(gomock.Any(), "cb_ghost").
			Return(dispute.Event{ID: "cb_ghost", Status: dispute.StatusOpened}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(ctx, CreateInput{DisputeID: "cb_ghost", Dossier: "x"})

		require.NoError(t, err)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("drafted becomes approved", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", Status: StatusDrafted}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec Record) error {
				assert.Equal(t, StatusApproved, rec.Status)
				return nil
			})

		rec, err := f.svc.Approve(ctx, "d1", false)

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, rec.Status)
	})

	t.Run("approve and submit in one call", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", DisputeID: "cb_1", Status: StatusDrafted}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", DisputeID: "cb_1", Status: StatusApproved}, nil)
		f.gateway.EXPECT().SubmitDefense(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"ok":true}`), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.disputes.EXPECT().MarkSubmitted(gomock.Any(), "cb_1").Return(dispute.Event{}, nil)

		rec, err := f.svc.Approve(ctx, "d1", true)

		require.NoError(t, err)
		assert.Equal(t, StatusSubmitted, rec.Status)
		assert.JSONEq(t, `{"ok":true}`, string(rec.SubmissionResponse))
	})

	t.Run("already submitted refuses", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", Status: StatusSubmitted}, nil)

		_, err := f.svc.Approve(ctx, "d1", false)

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("drafted submits directly, skipping approval", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", DisputeID: "cb_1", Status: StatusDrafted}, nil)
		f.gateway.EXPECT().SubmitDefense(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"id":"def_9"}`), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.disputes.EXPECT().MarkSubmitted(gomock.Any(), "cb_1").Return(dispute.Event{}, nil)

		rec, err := f.svc.Submit(ctx, "d1")

		require.NoError(t, err)
		assert.Equal(t, StatusSubmitted, rec.Status)
		require.NotNil(t, rec.SubmittedAt)
	})

	t.Run("gateway failure keeps the defense untouched", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", DisputeID: "cb_1", Status: StatusApproved}, nil)
		f.gateway.EXPECT().SubmitDefense(gomock.Any(), gomock.Any()).Return(nil, errors.New("gateway 500"))
		// no Update, no MarkSubmitted: the hand-off can be retried

		_, err := f.svc.Submit(ctx, "d1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway 500")
	})

	t.Run("won defense refuses resubmission", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", Status: StatusWon}, nil)

		_, err := f.svc.Submit(ctx, "d1")

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})

	t.Run("parent already submitted is tolerated", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByID(gomock.Any(), "d1").Return(Record{ID: "d1", DisputeID: "cb_1", Status: StatusApproved}, nil)
		f.gateway.EXPECT().SubmitDefense(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{}`), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.disputes.EXPECT().MarkSubmitted(gomock.Any(), "cb_1").
			Return(dispute.Event{}, apperror.ErrInvalidTransition)

		_, err := f.svc.Submit(ctx, "d1")

		assert.NoError(t, err)
	})
}

func TestApplyOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("submitted defenses absorb the outcome", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().ListByDisputeID(gomock.Any(), "cb_1").Return([]Record{
			{ID: "d1", Status: StatusSubmitted},
			{ID: "d2", Status: StatusDrafted},
		}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec Record) error {
				assert.Equal(t, "d1", rec.ID)
				assert.Equal(t, StatusWon, rec.Status)
				return nil
			})

		require.NoError(t, f.svc.ApplyOutcome(ctx, "cb_1", dispute.StatusWon))
	})

	t.Run("non-final outcomes are a no-op", func(t *testing.T) {
		f := newFixture(t)
		// no ListByDisputeID expected

		require.NoError(t, f.svc.ApplyOutcome(ctx, "cb_1", dispute.StatusClosed))
	})
}
