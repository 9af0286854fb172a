package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListIsSorted(t *testing.T) {
	r := NewRegistry(watchCommand(), migrateCommand())
	r.Register(checkWheelsCommand())

	var names []string
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"check-wheels", "migrate", "watch"}, names)

	_, ok := r.Get("seed")
	assert.False(t, ok)

	var help strings.Builder
	r.WriteHelp(&help)
	assert.Contains(t, help.String(), "check-wheels")
}

func TestHealthCommand_ProbesEveryPath(t *testing.T) {
	hits := make(chan string, len(probePaths))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- r.URL.Path
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL+"/")

	require.NoError(t, healthCommand().Run(context.Background(), nil))
	close(hits)
	var got []string
	for p := range hits {
		got = append(got, p)
	}
	assert.Equal(t, probePaths, got)
}

func TestHealthCommand_FailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	assert.ErrorContains(t, healthCommand().Run(context.Background(), nil), "503")
}

func TestRedactPassword(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://user:secret@db:5432/app", "postgres://user:xxxxx@db:5432/app"},
		{"postgres://user@db:5432/app", "postgres://user@db:5432/app"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, redactPassword(tt.in))
	}
}

func TestCheckWheels_ShippedDefinitions(t *testing.T) {
	n, err := checkWheels("../../configs/wheels")
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestCheckWheels_MissingDir(t *testing.T) {
	_, err := checkWheels(t.TempDir() + "/missing")
	assert.Error(t, err)
}

func TestPrintEvents(t *testing.T) {
	stream := "id: 1\nevent: spin.resolved\ndata: {\"prize\":\"50k\"}\n\n"
	assert.NoError(t, printEvents(strings.NewReader(stream)))
}

func TestCheckWheels_SchemaCatchesTypo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typo.yaml"), []byte("code: X\nprizes:\n  - id: a\n    wieght: 1\n"), 0o600))

	_, err := checkWheels(dir)
	assert.ErrorContains(t, err, "typo.yaml")
}
