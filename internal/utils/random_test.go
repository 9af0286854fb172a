package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRNG_Range(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		v := rng.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestNewSeededRNG_Reproducible(t *testing.T) {
	a := NewSeededRNG(42)
	b := NewSeededRNG(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestFixedRNG(t *testing.T) {
	f := &FixedRNG{Values: []float64{0.1, 0.9}}
	assert.Equal(t, 0.1, f.Float64())
	assert.Equal(t, 0.9, f.Float64())
	assert.Equal(t, 0.9, f.Float64())

	assert.Equal(t, 0.0, (&FixedRNG{}).Float64())
}
