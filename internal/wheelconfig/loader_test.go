package wheelconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/memstore"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

const defaultsYAML = `
prizes:
  - id: small
    label: Small
    weight: 0.7
    stock: 0
    color: "#FFD700"
  - id: big
    label: Big
    weight: 0.3
    stock: 0
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func ptr[T any](v T) *T { return &v }

func TestMergePrizes(t *testing.T) {
	defaults := []PrizeEntry{
		{ID: "a", Label: "A", Weight: ptr(1.0), Stock: ptr(0)},
		{ID: "b", Label: "B", Weight: ptr(2.0), Stock: ptr(0)},
	}
	overrides := []PrizeEntry{
		{ID: "extra", Label: "Extra", Weight: ptr(5.0)},
		{ID: "b", Stock: ptr(7)},
	}

	merged := MergePrizes(defaults, overrides)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, 0, *merged[0].Stock)
	assert.Equal(t, "b", merged[1].ID)
	assert.Equal(t, "B", merged[1].Label, "label kept from defaults")
	assert.Equal(t, 7, *merged[1].Stock)
	assert.Equal(t, "extra", merged[2].ID)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultsFile, defaultsYAML)
	writeFile(t, dir, "tet.yaml", `
code: tet
title: New year
start_time: 2026-01-01T00:00:00Z
use_defaults: true
prizes:
  - id: big
    stock: 2
`)
	writeFile(t, dir, "plain.yml", `
code: PLAIN
prizes:
  - id: only
    weight: 1
`)
	writeFile(t, dir, "notes.txt", "ignored")

	wheels, err := NewLoader(dir).LoadAll()
	require.NoError(t, err)
	require.Len(t, wheels, 2)

	plain, tet := wheels[0], wheels[1]
	assert.Equal(t, "PLAIN", plain.Code)
	require.Len(t, plain.Prizes, 1)
	assert.Equal(t, "only", plain.Prizes[0].Label)
	assert.Equal(t, domain.UnlimitedStock, plain.Prizes[0].Stock)

	assert.Equal(t, "TET", tet.Code)
	require.NotNil(t, tet.StartTime)
	assert.True(t, tet.StartTime.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Len(t, tet.Prizes, 2)
	assert.Equal(t, 0, tet.Prizes[0].Stock)
	assert.Equal(t, 2, tet.Prizes[1].Stock)
	assert.InDelta(t, 0.3, tet.Prizes[1].Weight, 1e-9)
}

func TestLoadAll_RejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
code: BAD
prizes:
  - id: x
    color: not-a-colour
`)
	_, err := NewLoader(dir).LoadAll()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadAll_MissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultsFile, defaultsYAML)
	writeFile(t, dir, "tet.yaml", "code: TET\nuse_defaults: true\n")

	store := memstore.New()
	svc := wheel.NewService(store, 4, time.Minute)
	ctx := context.Background()

	n, err := Seed(ctx, NewLoader(dir), svc)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	w, err := svc.Get(ctx, "TET")
	require.NoError(t, err)
	require.Len(t, w.Prizes, 2)
	assert.Equal(t, "small", w.Prizes[0].ID)
}

func TestSeed_ShippedDefinitions(t *testing.T) {
	wheels, err := NewLoader("../../configs/wheels").LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, wheels)
	for _, w := range wheels {
		assert.NoError(t, wheel.Validate(w), w.Code)
	}
}
