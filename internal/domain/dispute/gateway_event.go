package dispute

import (
	"time"
)

// EventType is the gateway webhook event type.
type EventType string

const (
	EventDisputeCreated EventType = "charge.dispute.created"
	EventDisputeUpdated EventType = "charge.dispute.updated"
	EventDisputeWon     EventType = "charge.dispute.won"
	EventDisputeLost    EventType = "charge.dispute.lost"
	EventDisputeClosed  EventType = "charge.dispute.closed"
)

// Known reports whether t is one of the dispute event types this
// service acts on. Unknown types are acknowledged and ignored.
func (t EventType) Known() bool {
	switch t {
	case EventDisputeCreated, EventDisputeUpdated, EventDisputeWon, EventDisputeLost, EventDisputeClosed:
		return true
	default:
		return false
	}
}

// GatewayEvent is the gateway webhook payload as delivered.
type GatewayEvent struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Data      GatewayEventData `json:"data"`
}

// GatewayEventData is the charge-level body of a gateway event.
type GatewayEventData struct {
	ChargeID string           `json:"id"`
	Code     string           `json:"code,omitempty"`
	OrderID  string           `json:"order_id,omitempty"`
	Amount   int64            `json:"amount"` // minor units
	Metadata map[string]any   `json:"metadata,omitempty"`
	Dispute  GatewayDispute   `json:"dispute"`
	Customer GatewayCustomer  `json:"customer"`
}

// GatewayDispute is the dispute block inside a gateway event.
type GatewayDispute struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	Amount            int64      `json:"amount"`
	ReasonCode        string     `json:"reason_code"`
	ReasonDescription string     `json:"reason_description"`
	DueDate           *time.Time `json:"due_date,omitempty"`
}

// GatewayCustomer is the cardholder block inside a gateway event.
type GatewayCustomer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisputeID returns the stable identity for the record: the gateway's
// dispute id, falling back to the event id when absent.
func (e GatewayEvent) DisputeID() string {
	if e.Data.Dispute.ID != "" {
		return e.Data.Dispute.ID
	}
	return e.ID
}

// DisputedAmount returns the disputed amount in minor units, preferring
// the dispute block over the charge amount.
func (e GatewayEvent) DisputedAmount() int64 {
	if e.Data.Dispute.Amount > 0 {
		return e.Data.Dispute.Amount
	}
	return e.Data.Amount
}

// normalize builds a fresh dispute record from a gateway event.
func normalize(ev GatewayEvent, now time.Time) Event {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	amount := ev.DisputedAmount()
	reason := ev.Data.Dispute.ReasonDescription
	if reason == "" {
		reason = "chargeback"
	}

	rec := Event{
		ID:               ev.DisputeID(),
		ChargeID:         ev.Data.ChargeID,
		GatewayOrderID:   ev.Data.OrderID,
		AmountMinorUnits: amount,
		ReasonCode:       ev.Data.Dispute.ReasonCode,
		Reason:           reason,
		CustomerName:     ev.Data.Customer.Name,
		CustomerEmail:    ev.Data.Customer.Email,
		CreatedAt:        createdAt,
		Status:           StatusOpened,
		EvidenceDueAt:    ev.Data.Dispute.DueDate,
		Metadata:         ev.Data.Metadata,
	}
	rec.Draft = &DraftDefense{
		ContestationType:  InferContestationType(reason),
		TransactionAmount: FormatAmount(amount),
		ConfirmationCode:  ev.Data.ChargeID,
		CustomerName:      ev.Data.Customer.Name,
		CustomerEmail:     ev.Data.Customer.Email,
	}
	return rec
}

// statusFor maps a gateway event type onto the dispute status it
// implies, and whether it implies one at all.
func statusFor(t EventType) (Status, bool) {
	switch t {
	case EventDisputeWon:
		return StatusWon, true
	case EventDisputeLost:
		return StatusLost, true
	case EventDisputeClosed:
		return StatusClosed, true
	default:
		return "", false
	}
}
