// Package dispute owns the chargeback record: its normalized shape, its
// lifecycle, and the ingestion/enrichment service that keeps it current
// as gateway and platform webhooks arrive.
package dispute

import (
	"strconv"
	"strings"
	"time"

	"disputedesk/internal/domain/match"
)

// Event is one normalized chargeback record. It is created by the first
// valid gateway delivery for a given ID, mutated in place by every
// subsequent delivery (redelivery or enrichment) and never deleted by
// this service; retention is capped by store eviction.
type Event struct {
	ID               string         `json:"id"`
	ChargeID         string         `json:"charge_id"`
	GatewayOrderID   string         `json:"gateway_order_id,omitempty"` // gateway-side reference, NOT the platform order number
	AmountMinorUnits int64          `json:"amount_minor_units"`
	ReasonCode       string         `json:"reason_code,omitempty"`
	Reason           string         `json:"reason"`
	CustomerName     string         `json:"customer_name"`
	CustomerEmail    string         `json:"customer_email"`
	CreatedAt        time.Time      `json:"created_at"`
	Status           Status         `json:"status"`
	EvidenceDueAt    *time.Time     `json:"evidence_due_at,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Draft            *DraftDefense  `json:"draft_defense,omitempty"`
	Match            *MatchInfo     `json:"match,omitempty"`
}

// Amount returns the disputed amount in decimal currency units.
func (e Event) Amount() float64 {
	return float64(e.AmountMinorUnits) / 100
}

// Status is the dispute lifecycle state.
type Status string

const (
	StatusOpened    Status = "opened"
	StatusSubmitted Status = "submitted"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	// StatusClosed labels gateway-reported closures that carry no
	// outcome; the gateway may still report won/lost later.
	StatusClosed Status = "closed"
)

// CanTransitionTo reports whether moving from s to next is a valid
// forward transition. Won and lost are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusOpened:
		return next == StatusSubmitted || next == StatusWon || next == StatusLost || next == StatusClosed
	case StatusSubmitted:
		return next == StatusWon || next == StatusLost || next == StatusClosed
	case StatusClosed:
		return next == StatusWon || next == StatusLost
	default:
		return false
	}
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// MatchInfo is the reconciliation outcome merged into the dispute
// record. Attempts is the operator-facing audit trail of every strategy
// tried; it is data, not logging.
type MatchInfo struct {
	Method            match.Method `json:"method"`
	OrderID           string       `json:"order_id,omitempty"`
	OrderName         string       `json:"order_name,omitempty"`
	FulfillmentStatus string       `json:"fulfillment_status,omitempty"`
	TrackingNumber    string       `json:"tracking_number,omitempty"`
	TrackingCarrier   string       `json:"tracking_carrier,omitempty"`
	TrackingURL       string       `json:"tracking_url,omitempty"`
	SourceTopic       string       `json:"source_topic,omitempty"`
	Attempts          []string     `json:"attempts"`
	MatchedAt         time.Time    `json:"matched_at"`
}

// ContestationType classifies the defense a dispute reason calls for.
type ContestationType string

const (
	ContestationFraud              ContestationType = "fraud"
	ContestationProductNotReceived ContestationType = "product_not_received"
	ContestationCreditNotProcessed ContestationType = "credit_not_processed"
	ContestationCommercial         ContestationType = "commercial_disagreement"
)

// InferContestationType picks the defense template family from the
// gateway's free-text reason. Keywords cover the gateway's Portuguese
// and English reason strings; anything unrecognized defaults to a
// commercial disagreement.
func InferContestationType(reason string) ContestationType {
	l := strings.ToLower(reason)
	switch {
	case strings.Contains(l, "não recebido"), strings.Contains(l, "nao recebido"), strings.Contains(l, "not received"):
		return ContestationProductNotReceived
	case strings.Contains(l, "fraude"), strings.Contains(l, "fraud"), strings.Contains(l, "unauthorized"):
		return ContestationFraud
	case strings.Contains(l, "crédito"), strings.Contains(l, "credito"), strings.Contains(l, "credit"), strings.Contains(l, "reembolso"), strings.Contains(l, "refund"):
		return ContestationCreditNotProcessed
	default:
		return ContestationCommercial
	}
}

// DraftDefense is the pre-filled defense form attached to a dispute on
// creation and kept current by enrichment. The authoring workflow reads
// it as a starting point.
type DraftDefense struct {
	ContestationType  ContestationType `json:"contestation_type"`
	TransactionAmount string           `json:"transaction_amount"` // decimal units, "150.00"
	OrderNumber       string           `json:"order_number,omitempty"`
	ConfirmationCode  string           `json:"confirmation_code,omitempty"`
	CustomerName      string           `json:"customer_name,omitempty"`
	CustomerEmail     string           `json:"customer_email,omitempty"`
	CardBrand         string           `json:"card_brand,omitempty"`
	CardLastFour      string           `json:"card_last_four,omitempty"`
	Carrier           string           `json:"carrier,omitempty"`
	TrackingCode      string           `json:"tracking_code,omitempty"`
}

// FormatAmount renders minor units as a decimal string ("15000" -> "150.00").
func FormatAmount(minorUnits int64) string {
	return strconv.FormatFloat(float64(minorUnits)/100, 'f', 2, 64)
}
