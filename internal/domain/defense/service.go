package defense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/dispute"

	"github.com/google/uuid"
)

// Service runs the defense authoring workflow: draft, approve, hand off
// to the gateway, and absorb the gateway's final verdict.
type Service struct {
	repo     Repo
	gateway  GatewaySubmitter
	disputes DisputeDirectory
	log      *slog.Logger
	now      func() time.Time
}

// NewService wires the workflow. gateway may be nil; submission then
// records the defense as submitted without an external hand-off, which
// is the stance used when the gateway files defenses out of band.
func NewService(repo Repo, gateway GatewaySubmitter, disputes DisputeDirectory, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		gateway:  gateway,
		disputes: disputes,
		log:      log,
		now:      time.Now,
	}
}

// CreateInput is the authoring request for a new defense.
type CreateInput struct {
	DisputeID string `json:"dispute_id"`
	Dossier   string `json:"dossier"`
	Opinion   string `json:"opinion"`
	Source    Source `json:"source"`
}

// Create drafts a defense against a dispute. The parent dispute is
// created as a stub when it is unknown, so a defense filed against an
// evicted record still attaches somewhere. An empty dossier is prefilled
// from the dispute's draft defense.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	parent, err := s.disputes.EnsureDispute(ctx, in.DisputeID)
	if err != nil {
		return Record{}, fmt.Errorf("ensure dispute %s: %w", in.DisputeID, err)
	}

	source := in.Source
	if source == "" {
		source = SourceManual
	}
	dossier := in.Dossier
	if dossier == "" {
		dossier = renderDossier(parent)
	}

	now := s.now()
	rec := Record{
		ID:        uuid.NewString(),
		DisputeID: in.DisputeID,
		Status:    StatusDrafted,
		Source:    source,
		Dossier:   dossier,
		Opinion:   in.Opinion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create defense: %w", err)
	}

	s.log.InfoContext(ctx, "defense drafted", "defense_id", rec.ID, "dispute_id", rec.DisputeID, "source", rec.Source)
	return rec, nil
}

// renderDossier builds a starting dossier from the dispute's prefilled
// draft so the operator never begins from a blank page.
func renderDossier(d dispute.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contestação de chargeback %s\n", d.ID)
	fmt.Fprintf(&b, "Valor: R$ %s\n", dispute.FormatAmount(d.AmountMinorUnits))
	if d.Reason != "" {
		fmt.Fprintf(&b, "Motivo: %s\n", d.Reason)
	}
	if d.Draft != nil {
		fmt.Fprintf(&b, "Tipo de contestação: %s\n", d.Draft.ContestationType)
		if d.Draft.OrderNumber != "" {
			fmt.Fprintf(&b, "Pedido: %s\n", d.Draft.OrderNumber)
		}
		if d.Draft.TrackingCode != "" {
			fmt.Fprintf(&b, "Rastreio: %s (%s)\n", d.Draft.TrackingCode, d.Draft.Carrier)
		}
		if d.Draft.CardLastFour != "" {
			fmt.Fprintf(&b, "Cartão: %s final %s\n", d.Draft.CardBrand, d.Draft.CardLastFour)
		}
	}
	return b.String()
}

// Get returns one defense by id.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all defenses, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// ListByDispute returns the defenses filed against one dispute.
func (s *Service) ListByDispute(ctx context.Context, disputeID string) ([]Record, error) {
	return s.repo.ListByDisputeID(ctx, disputeID)
}

// Approve marks a drafted defense as reviewed and, when submit is set,
// hands it to the gateway in the same call.
func (s *Service) Approve(ctx context.Context, id string, submit bool) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !rec.Status.CanTransitionTo(StatusApproved) {
		return Record{}, fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, rec.Status, StatusApproved)
	}

	rec.Status = StatusApproved
	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("update defense %s: %w", id, err)
	}

	if submit {
		return s.Submit(ctx, id)
	}
	return rec, nil
}

// Submit hands the defense to the gateway. Approval is optional, a
// drafted defense may be submitted directly. A gateway failure leaves
// the record untouched so the hand-off can be retried.
func (s *Service) Submit(ctx context.Context, id string) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !rec.Status.CanTransitionTo(StatusSubmitted) {
		return Record{}, fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, rec.Status, StatusSubmitted)
	}

	if s.gateway != nil {
		resp, err := s.gateway.SubmitDefense(ctx, rec)
		if err != nil {
			return Record{}, fmt.Errorf("submit defense %s to gateway: %w", id, err)
		}
		rec.SubmissionResponse = resp
	}

	now := s.now()
	rec.Status = StatusSubmitted
	rec.SubmittedAt = &now
	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("update defense %s: %w", id, err)
	}

	s.advanceDispute(ctx, rec.DisputeID)
	s.log.InfoContext(ctx, "defense submitted", "defense_id", rec.ID, "dispute_id", rec.DisputeID)
	return rec, nil
}

// advanceDispute moves the parent dispute to submitted. A redundant
// transition is expected when several defenses exist and is not an error.
func (s *Service) advanceDispute(ctx context.Context, disputeID string) {
	if _, err := s.disputes.MarkSubmitted(ctx, disputeID); err != nil {
		s.log.WarnContext(ctx, "parent dispute not advanced", "dispute_id", disputeID, "error", err)
	}
}

// ApplyOutcome records a gateway-reported dispute outcome on every
// defense filed for it. Only submitted defenses carry an outcome;
// drafts for a decided dispute simply stay where they are.
func (s *Service) ApplyOutcome(ctx context.Context, disputeID string, outcome dispute.Status) error {
	var target Status
	switch outcome {
	case dispute.StatusWon:
		target = StatusWon
	case dispute.StatusLost:
		target = StatusLost
	default:
		return nil
	}

	recs, err := s.repo.ListByDisputeID(ctx, disputeID)
	if err != nil {
		return fmt.Errorf("list defenses for dispute %s: %w", disputeID, err)
	}

	for _, rec := range recs {
		if !rec.Status.CanTransitionTo(target) {
			continue
		}
		rec.Status = target
		rec.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, rec); err != nil {
			return fmt.Errorf("update defense %s: %w", rec.ID, err)
		}
	}
	return nil
}
