package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Float64() //nolint:gosec // fallback only when the OS source fails
	}
	// top 53 bits fill a float64 mantissa exactly
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source used for real draws.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source for tests and simulations.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec // deterministic by design of the caller
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// FixedRNG replays the given values in order, then repeats the last one.
type FixedRNG struct {
	Values []float64
	next   int
}

func (f *FixedRNG) Float64() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next]
	if f.next < len(f.Values)-1 {
		f.next++
	}
	return v
}
