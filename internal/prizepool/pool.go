// Package prizepool holds the ordered prize list of a wheel and the weighted
// selection over it.
package prizepool

import (
	"errors"
	"fmt"
	"math"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/utils"
)

var (
	ErrEmptyPool      = errors.New(ErrMsgEmptyPool)
	ErrDuplicatePrize = errors.New(ErrMsgDuplicatePrize)
	ErrInvalidPrize   = errors.New(ErrMsgInvalidPrize)
)

// Pool is an immutable, ordered, non-empty list of prizes. Slice order is
// both the rendering order and the walk order for selection.
type Pool struct {
	prizes []domain.Prize
	index  map[string]int
}

// New validates prizes and builds a pool. The slice is copied.
func New(prizes []domain.Prize) (*Pool, error) {
	if len(prizes) == 0 {
		return nil, ErrEmptyPool
	}

	p := &Pool{
		prizes: append([]domain.Prize(nil), prizes...),
		index:  make(map[string]int, len(prizes)),
	}
	for i, prize := range p.prizes {
		if prize.ID == "" {
			return nil, fmt.Errorf("%w: prize %d has no id", ErrInvalidPrize, i)
		}
		if _, dup := p.index[prize.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePrize, prize.ID)
		}
		if prize.Weight < 0 || math.IsNaN(prize.Weight) || math.IsInf(prize.Weight, 0) {
			return nil, fmt.Errorf("%w: %s weight %v", ErrInvalidPrize, prize.ID, prize.Weight)
		}
		if prize.Stock < domain.UnlimitedStock {
			return nil, fmt.Errorf("%w: %s stock %d", ErrInvalidPrize, prize.ID, prize.Stock)
		}
		p.index[prize.ID] = i
	}
	return p, nil
}

// FromWheel builds the pool of a wheel.
func FromWheel(w *domain.Wheel) (*Pool, error) {
	if w == nil {
		return nil, ErrEmptyPool
	}
	return New(w.Prizes)
}

// Len is the slice count N of the rendered wheel. Exhausted prizes keep their
// slice.
func (p *Pool) Len() int {
	return len(p.prizes)
}

// Prizes returns a copy of the prizes in pool order.
func (p *Pool) Prizes() []domain.Prize {
	return append([]domain.Prize(nil), p.prizes...)
}

// IndexOf returns the slice index of a prize, or -1.
func (p *Pool) IndexOf(prizeID string) int {
	if i, ok := p.index[prizeID]; ok {
		return i
	}
	return -1
}

// EligiblePrizes returns the prizes with stock != 0, in pool order.
func (p *Pool) EligiblePrizes() []domain.Prize {
	eligible := make([]domain.Prize, 0, len(p.prizes))
	for _, prize := range p.prizes {
		if prize.Available() {
			eligible = append(eligible, prize)
		}
	}
	return eligible
}

// TotalWeight is the sum of weights over eligible prizes.
func (p *Pool) TotalWeight() float64 {
	var total float64
	for _, prize := range p.prizes {
		if prize.Available() {
			total += prize.Weight
		}
	}
	return total
}

// OutOfStock reports whether no prize can be won.
func (p *Pool) OutOfStock() bool {
	for _, prize := range p.prizes {
		if prize.Available() {
			return false
		}
	}
	return true
}

// Select maps u in [0, 1) onto the eligible prizes and returns the chosen
// prize with its slice index.
//
// With total weight W > 0, r = u*W is walked through the eligible prizes in
// pool order and the first prize whose running sum exceeds r wins, so each
// prize is chosen with probability weight/W and zero-weight prizes never win.
// When W == 0 every eligible prize gets an equal share.
func (p *Pool) Select(u float64) (domain.Prize, int, error) {
	if math.IsNaN(u) || u < 0 || u >= 1 {
		return domain.Prize{}, -1, fmt.Errorf("%w: random value %v outside [0, 1)", domain.ErrInvalidInput, u)
	}

	eligible := p.EligiblePrizes()
	if len(eligible) == 0 {
		return domain.Prize{}, -1, domain.ErrOutOfStock
	}

	total := p.TotalWeight()
	if total == 0 {
		i := int(u * float64(len(eligible)))
		if i >= len(eligible) {
			i = len(eligible) - 1
		}
		chosen := eligible[i]
		return chosen, p.index[chosen.ID], nil
	}

	r := u * total
	var cumulative float64
	lastPositive := -1
	for i, prize := range eligible {
		if prize.Weight == 0 {
			continue
		}
		cumulative += prize.Weight
		lastPositive = i
		if r < cumulative {
			return prize, p.index[prize.ID], nil
		}
	}

	// u*W can round up to W; the tail belongs to the last weighted prize
	chosen := eligible[lastPositive]
	return chosen, p.index[chosen.ID], nil
}

// Draw picks a prize using rng.
func (p *Pool) Draw(rng utils.RandomSource) (domain.Prize, int, error) {
	return p.Select(rng.Float64())
}
