package dispute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/match"
	"disputedesk/internal/domain/order"
	"disputedesk/pkg/metrics"
)

// ErrIgnoredEventType marks a gateway event whose type is outside the
// dispute family. The delivery is acknowledged, never processed.
var ErrIgnoredEventType = errors.New("ignored gateway event type")

// Service ingests gateway and platform webhooks into the dispute store
// and answers the operator-facing read and match operations.
//
// All mutating flows take the service mutex: the store serializes
// individual calls, but enrichment is a read-merge-write sequence and
// must not interleave with a concurrent write to the same record.
type Service struct {
	mu           sync.Mutex
	store        Store
	sink         EventSink
	resolver     *match.Resolver
	charges      ChargeFetcher
	defenses     DefenseProjector
	tolerancePct float64
	log          *slog.Logger
	now          func() time.Time
}

// NewService wires the ingestion service. charges and defenses may be
// nil; the corresponding enrichment and propagation steps are skipped.
func NewService(store Store, sink EventSink, resolver *match.Resolver, tolerancePct float64, log *slog.Logger) *Service {
	if sink == nil {
		sink = NoopSink{}
	}
	if tolerancePct <= 0 {
		tolerancePct = match.DefaultTolerancePct
	}
	return &Service{
		store:        store,
		sink:         sink,
		resolver:     resolver,
		tolerancePct: tolerancePct,
		log:          log,
		now:          time.Now,
	}
}

// WithChargeFetcher enables card-detail enrichment of the draft defense.
func (s *Service) WithChargeFetcher(charges ChargeFetcher) *Service {
	s.charges = charges
	return s
}

// WithDefenseProjector enables outcome propagation onto filed defenses.
func (s *Service) WithDefenseProjector(defenses DefenseProjector) *Service {
	s.defenses = defenses
	return s
}

// ProcessGatewayEvent applies one authenticated gateway delivery to the
// store. Redeliveries are idempotent at the record level: the same
// dispute ID always lands on the same record, with the latest delivery's
// values winning field by field while reconciliation state and lifecycle
// progress are preserved.
func (s *Service) ProcessGatewayEvent(ctx context.Context, ev GatewayEvent) error {
	if !ev.Type.Known() {
		return fmt.Errorf("%w: %s", ErrIgnoredEventType, ev.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.findByID(ctx, ev.DisputeID())
	if err != nil && !errors.Is(err, apperror.ErrDisputeNotFound) {
		return fmt.Errorf("load dispute %s: %w", ev.DisputeID(), err)
	}

	now := s.now()
	rec := normalize(ev, now)

	if existing != nil {
		rec = s.merge(*existing, rec)
	}

	switch ev.Type {
	case EventDisputeCreated:
		s.enrichFromCharge(ctx, &rec)

	case EventDisputeUpdated:
		// normalize already refreshed amount, reason and due date.

	case EventDisputeWon, EventDisputeLost, EventDisputeClosed:
		next, _ := statusFor(ev.Type)
		if existing == nil {
			// Outcome for a dispute we never saw opened, likely evicted
			// or delivered out of order. Record it at the final state.
			rec.Status = next
		} else if existing.Status.CanTransitionTo(next) {
			rec.Status = next
		} else {
			s.log.WarnContext(ctx, "gateway status ignored, transition not allowed",
				"dispute_id", rec.ID, "from", existing.Status, "to", next)
		}
		if rec.Status == next && (next == StatusWon || next == StatusLost) {
			s.propagateOutcome(ctx, rec.ID, next)
		}
	}

	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("store dispute %s: %w", rec.ID, err)
	}

	s.index(ctx, ev.ID, rec.ID, string(ev.Type), ev)
	return nil
}

// merge folds a freshly normalized delivery onto the stored record:
// delivery values win, reconciliation and lifecycle state survive.
func (s *Service) merge(existing, fresh Event) Event {
	fresh.Status = existing.Status
	fresh.Match = existing.Match
	if existing.CreatedAt.Before(fresh.CreatedAt) && !existing.CreatedAt.IsZero() {
		fresh.CreatedAt = existing.CreatedAt
	}
	if fresh.EvidenceDueAt == nil {
		fresh.EvidenceDueAt = existing.EvidenceDueAt
	}
	if existing.Draft != nil && fresh.Draft != nil {
		if fresh.Draft.OrderNumber == "" {
			fresh.Draft.OrderNumber = existing.Draft.OrderNumber
		}
		if fresh.Draft.CardBrand == "" {
			fresh.Draft.CardBrand = existing.Draft.CardBrand
		}
		if fresh.Draft.CardLastFour == "" {
			fresh.Draft.CardLastFour = existing.Draft.CardLastFour
		}
		if fresh.Draft.Carrier == "" {
			fresh.Draft.Carrier = existing.Draft.Carrier
		}
		if fresh.Draft.TrackingCode == "" {
			fresh.Draft.TrackingCode = existing.Draft.TrackingCode
		}
	}
	return fresh
}

func (s *Service) enrichFromCharge(ctx context.Context, rec *Event) {
	if s.charges == nil || rec.ChargeID == "" {
		return
	}
	charge, err := s.charges.GetCharge(ctx, rec.ChargeID)
	if err != nil {
		s.log.WarnContext(ctx, "charge enrichment failed", "charge_id", rec.ChargeID, "error", err)
		return
	}
	if charge == nil || rec.Draft == nil {
		return
	}
	if rec.Draft.CardBrand == "" {
		rec.Draft.CardBrand = charge.CardBrand
	}
	if rec.Draft.CardLastFour == "" {
		rec.Draft.CardLastFour = charge.CardLastFour
	}
}

func (s *Service) propagateOutcome(ctx context.Context, disputeID string, outcome Status) {
	if s.defenses == nil {
		return
	}
	if err := s.defenses.ApplyOutcome(ctx, disputeID, outcome); err != nil {
		s.log.WarnContext(ctx, "defense outcome propagation failed",
			"dispute_id", disputeID, "outcome", outcome, "error", err)
	}
}

// ProcessFulfillment applies one platform fulfillment delivery. The
// event carries no dispute reference, so candidates are selected by
// customer email and, when both amounts are known, the configured
// relative tolerance. Among several candidates the most recent dispute
// wins. A delivery matching no dispute is dropped silently; that is the
// common case, most fulfillments concern undisputed orders.
func (s *Service) ProcessFulfillment(ctx context.Context, fe FulfillmentEvent) error {
	if fe.CustomerEmail == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load disputes: %w", err)
	}

	rec, ok := s.pickFulfillmentTarget(all, fe)
	if !ok {
		return nil
	}

	s.applyFulfillment(&rec, fe)

	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("store dispute %s: %w", rec.ID, err)
	}

	s.log.InfoContext(ctx, "dispute enriched from fulfillment",
		"dispute_id", rec.ID, "topic", fe.Topic, "order_name", fe.OrderName)
	s.index(ctx, "", rec.ID, fe.Topic, fe)
	return nil
}

// pickFulfillmentTarget scans the reverse-chronological record list and
// returns the first (most recent) dispute whose customer email matches
// and whose amount is either unknown on one side or within tolerance.
func (s *Service) pickFulfillmentTarget(all []Event, fe FulfillmentEvent) (Event, bool) {
	for _, rec := range all {
		if !strings.EqualFold(rec.CustomerEmail, fe.CustomerEmail) {
			continue
		}
		if fe.TotalPrice > 0 && rec.AmountMinorUnits > 0 &&
			!match.WithinTolerance(fe.TotalPrice, rec.Amount(), s.tolerancePct) {
			continue
		}
		return rec, true
	}
	return Event{}, false
}

func (s *Service) applyFulfillment(rec *Event, fe FulfillmentEvent) {
	info := rec.Match
	if info == nil {
		info = &MatchInfo{Method: match.MethodEmailAmountMatch}
	}
	info.OrderName = fe.OrderName
	info.FulfillmentStatus = fe.FulfillmentStatus
	info.SourceTopic = fe.Topic
	info.MatchedAt = fe.ReceivedAt
	if fe.TrackingNumber != "" {
		info.TrackingNumber = fe.TrackingNumber
		info.TrackingCarrier = fe.TrackingCarrier
		info.TrackingURL = fe.TrackingURL
	}
	info.Attempts = append(info.Attempts,
		fmt.Sprintf("fulfillment %s -> matched by email %q", fe.Topic, fe.CustomerEmail))
	rec.Match = info

	if rec.Draft == nil {
		rec.Draft = &DraftDefense{
			ContestationType:  InferContestationType(rec.Reason),
			TransactionAmount: FormatAmount(rec.AmountMinorUnits),
		}
	}
	if fe.OrderName != "" {
		rec.Draft.OrderNumber = fe.OrderName
	}
	if fe.TrackingNumber != "" {
		rec.Draft.TrackingCode = fe.TrackingNumber
		rec.Draft.Carrier = fe.TrackingCarrier
	}
}

// ListDisputes returns all stored disputes, most recent first.
func (s *Service) ListDisputes(ctx context.Context) ([]Event, error) {
	return s.store.GetAll(ctx)
}

// GetDispute returns one dispute by id.
func (s *Service) GetDispute(ctx context.Context, id string) (Event, error) {
	rec, err := s.findByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	return *rec, nil
}

// UnifiedRecord is one row of the reconciled operator view: the dispute
// joined with the platform order the resolver associates with it.
type UnifiedRecord struct {
	Dispute  Event         `json:"dispute"`
	Order    *order.Record `json:"order,omitempty"`
	Method   match.Method  `json:"match_method"`
	Attempts []string      `json:"match_attempts"`
}

// UnifiedView runs the resolver over every dispute that has no match yet
// and returns the joined view. Resolutions that produce a match are
// persisted so later reads and drafts see them.
func (s *Service) UnifiedView(ctx context.Context) ([]UnifiedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load disputes: %w", err)
	}

	view := make([]UnifiedRecord, 0, len(all))
	for _, rec := range all {
		row := UnifiedRecord{Dispute: rec}

		if rec.Match != nil && rec.Match.OrderName != "" {
			// Already reconciled; re-fetch the order for the view but do
			// not re-run the chain.
			row.Method = rec.Match.Method
			row.Attempts = rec.Match.Attempts
			if found, err := s.resolver.Manual(ctx, rec.Match.OrderName); err == nil && found.Order != nil {
				row.Order = found.Order
			}
			view = append(view, row)
			continue
		}

		res := s.resolver.Resolve(ctx, rec.Metadata, rec.CustomerEmail, rec.Amount())
		metrics.MatchesResolved.WithLabelValues(string(res.Method)).Inc()

		row.Order = res.Order
		row.Method = res.Method
		row.Attempts = res.Attempts

		if res.Order != nil {
			s.recordMatch(&rec, res, res.Method)
			if err := s.store.Put(ctx, rec); err != nil {
				s.log.WarnContext(ctx, "persisting resolved match failed", "dispute_id", rec.ID, "error", err)
			}
			row.Dispute = rec
		}
		view = append(view, row)
	}
	return view, nil
}

// ManualMatch associates a dispute with an operator-supplied order
// number, overriding any automatic result.
func (s *Service) ManualMatch(ctx context.Context, disputeID, orderNumber string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findByID(ctx, disputeID)
	if err != nil {
		return Event{}, err
	}

	res, err := s.resolver.Manual(ctx, orderNumber)
	if err != nil {
		return Event{}, err
	}
	if res.Order == nil {
		return Event{}, fmt.Errorf("%w: %s", apperror.ErrOrderNotFound, orderNumber)
	}
	metrics.MatchesResolved.WithLabelValues(string(match.MethodManual)).Inc()

	s.recordMatch(rec, res, match.MethodManual)

	if err := s.store.Put(ctx, *rec); err != nil {
		return Event{}, fmt.Errorf("store dispute %s: %w", rec.ID, err)
	}
	return *rec, nil
}

// recordMatch merges a resolver result into the record's match info and
// draft defense.
func (s *Service) recordMatch(rec *Event, res match.Result, method match.Method) {
	info := &MatchInfo{
		Method:    method,
		OrderID:   res.Order.ID,
		OrderName: res.Order.Name,
		Attempts:  res.Attempts,
		MatchedAt: s.now(),
	}
	info.FulfillmentStatus = res.Order.FulfillmentStatus
	if t := res.Order.PrimaryTracking(); t != nil {
		info.TrackingNumber = t.Number
		info.TrackingCarrier = t.Carrier
		info.TrackingURL = t.URL
	}
	if rec.Match != nil {
		info.Attempts = append(rec.Match.Attempts, info.Attempts...)
	}
	rec.Match = info

	if rec.Draft == nil {
		rec.Draft = &DraftDefense{
			ContestationType:  InferContestationType(rec.Reason),
			TransactionAmount: FormatAmount(rec.AmountMinorUnits),
		}
	}
	rec.Draft.OrderNumber = res.Order.Name
	if t := res.Order.PrimaryTracking(); t != nil {
		rec.Draft.TrackingCode = t.Number
		rec.Draft.Carrier = t.Carrier
	}
}

// EnsureDispute returns the dispute with the given id, creating a
// minimal opened record when none exists. The defense workflow calls
// this so a defense filed against an evicted or never-seen dispute
// still has a parent to attach to.
func (s *Service) EnsureDispute(ctx context.Context, id string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findByID(ctx, id)
	if err == nil {
		return *rec, nil
	}
	if !errors.Is(err, apperror.ErrDisputeNotFound) {
		return Event{}, err
	}

	stub := Event{
		ID:        id,
		Reason:    "chargeback",
		CreatedAt: s.now(),
		Status:    StatusOpened,
	}
	if err := s.store.Put(ctx, stub); err != nil {
		return Event{}, fmt.Errorf("store dispute %s: %w", id, err)
	}
	s.log.InfoContext(ctx, "dispute stub created for orphan defense", "dispute_id", id)
	return stub, nil
}

// MarkSubmitted advances a dispute to submitted after its defense has
// been handed to the gateway.
func (s *Service) MarkSubmitted(ctx context.Context, disputeID string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findByID(ctx, disputeID)
	if err != nil {
		return Event{}, err
	}
	if !rec.Status.CanTransitionTo(StatusSubmitted) {
		return Event{}, fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, rec.Status, StatusSubmitted)
	}
	rec.Status = StatusSubmitted

	if err := s.store.Put(ctx, *rec); err != nil {
		return Event{}, fmt.Errorf("store dispute %s: %w", rec.ID, err)
	}
	return *rec, nil
}

func (s *Service) findByID(ctx context.Context, id string) (*Event, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load disputes: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperror.ErrDisputeNotFound, id)
}

// index ships the delivery to the audit sink; failures never fail the
// webhook.
func (s *Service) index(ctx context.Context, eventID, disputeID, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	ie := IngestedEvent{
		EventID:   eventID,
		DisputeID: disputeID,
		Kind:      kind,
		Data:      data,
		CreatedAt: s.now(),
	}
	if err := s.sink.IndexDisputeEvent(ctx, ie); err != nil {
		s.log.WarnContext(ctx, "event sink index failed", "dispute_id", disputeID, "kind", kind, "error", err)
	}
}
