package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus tracks a won prize from draw to hand-over.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusClaimed   ClaimStatus = "claimed"
	ClaimStatusDelivered ClaimStatus = "delivered"
)

// Valid reports whether s is a known status.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusClaimed, ClaimStatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether a spin may move from s to next. Status only
// moves forward, except that a host may put a claimed spin back to pending
// when the submitted proof is rejected; the proof is then discarded.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	switch s {
	case ClaimStatusPending:
		return next == ClaimStatusClaimed || next == ClaimStatusDelivered
	case ClaimStatusClaimed:
		return next == ClaimStatusDelivered || next == ClaimStatusPending
	}
	return false
}

// SpinRecord is the persisted outcome of a draw. There is at most one per
// (WheelCode, ParticipantKey) and records are never deleted.
type SpinRecord struct {
	ID                uuid.UUID   `json:"id"`
	WheelCode         string      `json:"wheel_code"`
	ParticipantKey    string      `json:"participant_key"`
	ParticipantName   string      `json:"participant_name"`
	ParticipantAvatar string      `json:"participant_avatar,omitempty"`
	PrizeID           string      `json:"prize_id"`
	PrizeLabel        string      `json:"prize_label"`
	CreatedAt         time.Time   `json:"created_at"`
	ClaimStatus       ClaimStatus `json:"claim_status"`
	ProofRef          *string     `json:"proof_ref,omitempty"`
}

// AwaitingProof reports whether the participant still owes a proof of claim.
func (s SpinRecord) AwaitingProof() bool {
	return s.ClaimStatus == ClaimStatusPending && s.ProofRef == nil
}

// DrawResult is what the resolver hands back to the caller: the committed
// record plus what a renderer needs to land the wheel on the right slice.
type DrawResult struct {
	Spin       SpinRecord `json:"spin"`
	Prize      Prize      `json:"prize"`
	SliceIndex int        `json:"slice_index"`
	SliceCount int        `json:"slice_count"`
}

// Eligibility is the advisory answer to "may this participant draw now?".
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
