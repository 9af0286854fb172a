package handler

import (
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// PrizeView is a prize as participants see it. Weights and stock counts stay
// with the host.
type PrizeView struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Color     string `json:"color,omitempty"`
	Available bool   `json:"available"`
}

// WheelView is the public shape of a wheel
type WheelView struct {
	Code      string      `json:"code"`
	Title     string      `json:"title"`
	HostName  string      `json:"host_name"`
	Paused    bool        `json:"paused"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Prizes    []PrizeView `json:"prizes"`
}

func newPrizeView(p domain.Prize) PrizeView {
	return PrizeView{ID: p.ID, Label: p.Label, Color: p.Color, Available: p.Available()}
}

func newWheelView(w *domain.Wheel) WheelView {
	prizes := make([]PrizeView, 0, len(w.Prizes))
	for _, p := range w.Prizes {
		prizes = append(prizes, newPrizeView(p))
	}
	return WheelView{
		Code:      w.Code,
		Title:     w.Title,
		HostName:  w.HostName,
		Paused:    w.Paused,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Prizes:    prizes,
	}
}

// WinnerView is one entry of the public winners list. The participant key
// (an email address) is never exposed.
type WinnerView struct {
	SpinID            string             `json:"spin_id"`
	ParticipantName   string             `json:"participant_name"`
	ParticipantAvatar string             `json:"participant_avatar,omitempty"`
	PrizeLabel        string             `json:"prize_label"`
	ClaimStatus       domain.ClaimStatus `json:"claim_status"`
	CreatedAt         time.Time          `json:"created_at"`
}

func newWinnerViews(spins []domain.SpinRecord) []WinnerView {
	out := make([]WinnerView, 0, len(spins))
	for _, s := range spins {
		out = append(out, WinnerView{
			SpinID:            s.ID.String(),
			ParticipantName:   s.ParticipantName,
			ParticipantAvatar: s.ParticipantAvatar,
			PrizeLabel:        s.PrizeLabel,
			ClaimStatus:       s.ClaimStatus,
			CreatedAt:         s.CreatedAt,
		})
	}
	return out
}

// EligibilityResponse answers whether the caller may draw now
type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// DrawResponse is the committed outcome of a draw
type DrawResponse struct {
	Spin       domain.SpinRecord `json:"spin"`
	Prize      PrizeView         `json:"prize"`
	SliceIndex int               `json:"slice_index"`
	SliceCount int               `json:"slice_count"`
	Message    string            `json:"message"`
}

// WinnersResponse lists recent winners, newest first
type WinnersResponse struct {
	Winners []WinnerView `json:"winners"`
}

// PendingSpinsResponse lists the caller's unclaimed prizes
type PendingSpinsResponse struct {
	Spins   []domain.SpinRecord `json:"spins"`
	Message string              `json:"message,omitempty"`
}
