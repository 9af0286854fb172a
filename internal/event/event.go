// Package event carries draw and claim activity from the services to the
// dashboards, metrics and Discord.
package event

import (
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

type Type string

// Event is one bus message. Metadata holds routing keys such as the wheel
// code so subscribers need not decode the payload to filter.
type Event struct {
	Version  string            `json:"version"`
	Type     Type              `json:"type"`
	Payload  interface{}       `json:"payload"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WheelCode returns the wheel the event belongs to, or "".
func (e Event) WheelCode() string {
	return e.Metadata[MetadataKeyWheelCode]
}

// Event types
const (
	SpinResolved       Type = "spin.resolved"
	ProofSubmitted     Type = "proof.submitted"
	ClaimStatusChanged Type = "claim.status_changed"
)

// SpinResolvedPayloadV1 is the typed payload for a committed draw
type SpinResolvedPayloadV1 struct {
	SpinID          string `json:"spin_id"`
	WheelCode       string `json:"wheel_code"`
	ParticipantKey  string `json:"participant_key"`
	ParticipantName string `json:"participant_name"`
	PrizeID         string `json:"prize_id"`
	PrizeLabel      string `json:"prize_label"`
	SliceIndex      int    `json:"slice_index"`
	Timestamp       int64  `json:"timestamp"`
}

// ProofSubmittedPayloadV1 is the typed payload for an attached proof of claim
type ProofSubmittedPayloadV1 struct {
	SpinID          string `json:"spin_id"`
	WheelCode       string `json:"wheel_code"`
	ParticipantKey  string `json:"participant_key"`
	ParticipantName string `json:"participant_name"`
	PrizeLabel      string `json:"prize_label"`
	ProofRef        string `json:"proof_ref"`
	Timestamp       int64  `json:"timestamp"`
}

// ClaimStatusChangedPayloadV1 is the typed payload for a host status update
type ClaimStatusChangedPayloadV1 struct {
	SpinID    string             `json:"spin_id"`
	WheelCode string             `json:"wheel_code"`
	From      domain.ClaimStatus `json:"from"`
	To        domain.ClaimStatus `json:"to"`
	Timestamp int64              `json:"timestamp"`
}

func wheelMetadata(code string) map[string]string {
	return map[string]string{MetadataKeyWheelCode: code}
}

// NewSpinResolvedEvent creates a spin resolved event from a draw result
func NewSpinResolvedEvent(r *domain.DrawResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinResolved,
		Payload: SpinResolvedPayloadV1{
			SpinID:          r.Spin.ID.String(),
			WheelCode:       r.Spin.WheelCode,
			ParticipantKey:  r.Spin.ParticipantKey,
			ParticipantName: r.Spin.ParticipantName,
			PrizeID:         r.Prize.ID,
			PrizeLabel:      r.Prize.Label,
			SliceIndex:      r.SliceIndex,
			Timestamp:       r.Spin.CreatedAt.Unix(),
		},
		Metadata: wheelMetadata(r.Spin.WheelCode),
	}
}

// NewProofSubmittedEvent creates a proof submitted event
func NewProofSubmittedEvent(spin *domain.SpinRecord) Event {
	ref := ""
	if spin.ProofRef != nil {
		ref = *spin.ProofRef
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    ProofSubmitted,
		Payload: ProofSubmittedPayloadV1{
			SpinID:          spin.ID.String(),
			WheelCode:       spin.WheelCode,
			ParticipantKey:  spin.ParticipantKey,
			ParticipantName: spin.ParticipantName,
			PrizeLabel:      spin.PrizeLabel,
			ProofRef:        ref,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: wheelMetadata(spin.WheelCode),
	}
}

// NewClaimStatusChangedEvent creates a claim status changed event
func NewClaimStatusChangedEvent(spin *domain.SpinRecord, from, to domain.ClaimStatus) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ClaimStatusChanged,
		Payload: ClaimStatusChangedPayloadV1{
			SpinID:    spin.ID.String(),
			WheelCode: spin.WheelCode,
			From:      from,
			To:        to,
			Timestamp: time.Now().Unix(),
		},
		Metadata: wheelMetadata(spin.WheelCode),
	}
}
