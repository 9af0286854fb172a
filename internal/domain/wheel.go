package domain

import (
	"strings"
	"time"
)

// UnlimitedStock marks a prize that is never exhausted.
const UnlimitedStock = -1

// Prize is one slice of a wheel. Stock of 0 means exhausted and the prize is
// never selected; UnlimitedStock means it is never decremented.
type Prize struct {
	ID     string  `json:"id" yaml:"id" validate:"required,max=64"`
	Label  string  `json:"label" yaml:"label" validate:"required,max=100"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gte=0"`
	Stock  int     `json:"stock" yaml:"stock" validate:"gte=-1"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Unlimited reports whether the prize has unbounded stock.
func (p Prize) Unlimited() bool {
	return p.Stock == UnlimitedStock
}

// Available reports whether the prize can still be won.
func (p Prize) Available() bool {
	return p.Stock != 0
}

// Wheel is a host's configured drawing: its prize pool plus the gating fields.
// Prize order is significant; it fixes slice positions for rendering and the
// walk order for selection.
type Wheel struct {
	Code      string     `json:"code"`
	Title     string     `json:"title"`
	HostName  string     `json:"host_name"`
	Paused    bool       `json:"paused"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Prizes    []Prize    `json:"prizes"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so callers can hand wheels out of caches safely.
func (w *Wheel) Clone() *Wheel {
	if w == nil {
		return nil
	}
	c := *w
	c.Prizes = append([]Prize(nil), w.Prizes...)
	if w.StartTime != nil {
		t := *w.StartTime
		c.StartTime = &t
	}
	if w.EndTime != nil {
		t := *w.EndTime
		c.EndTime = &t
	}
	return &c
}

// PrizeByID returns the prize with the given id.
func (w *Wheel) PrizeByID(id string) (Prize, bool) {
	for _, p := range w.Prizes {
		if p.ID == id {
			return p, true
		}
	}
	return Prize{}, false
}

// NormalizeWheelCode canonicalises a wheel code taken from a URL or request.
func NormalizeWheelCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Participant is an authenticated user. Key is the stable identity used for
// the one-spin-per-wheel rule (the verified email address).
type Participant struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NormalizeParticipantKey canonicalises an identity so that the same person
// always maps to the same key.
func NormalizeParticipantKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
