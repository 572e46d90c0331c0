// Package defense owns the defense dossier filed against a dispute:
// its authoring lifecycle and the hand-off to the payment gateway.
package defense

import (
	"encoding/json"
	"time"
)

// Source records how a defense came to exist.
type Source string

const (
	SourceAutomatic Source = "automatic"
	SourceManual    Source = "manual"
)

// Status is the defense authoring lifecycle state.
type Status string

const (
	StatusDrafted   Status = "drafted"
	StatusApproved  Status = "approved"
	StatusSubmitted Status = "submitted"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

// CanTransitionTo reports whether moving from s to next is allowed.
// Approval is optional: a drafted defense may go straight to submitted.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusDrafted:
		return next == StatusApproved || next == StatusSubmitted
	case StatusApproved:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusWon || next == StatusLost
	default:
		return false
	}
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Record is one defense dossier. SubmissionResponse holds the gateway's
// raw acknowledgement once the defense has been handed off.
type Record struct {
	ID                 string          `json:"id"`
	DisputeID          string          `json:"dispute_id"`
	Status             Status          `json:"status"`
	Source             Source          `json:"source"`
	Dossier            string          `json:"dossier"`
	Opinion            string          `json:"opinion,omitempty"`
	SubmissionResponse json.RawMessage `json:"submission_response,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	SubmittedAt        *time.Time      `json:"submitted_at,omitempty"`
}
