package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_BoundedTicks(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-ticks", "2", "-interval", "0s", "-seed", "1"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Tick 1 Conditions -> ")
	assert.Contains(t, out, "Tick 2 Conditions -> ")
	assert.NotContains(t, out, "Tick 3")
	assert.Equal(t, 2, strings.Count(out, "Baseline Path: [Checkpoint1 -> Checkpoint2 -> Customer]"))
	assert.Contains(t, out, "Baseline Battery Consumption: 31.50 units")
}

func TestRun_SameSeedSameOutput(t *testing.T) {
	args := []string{"-ticks", "3", "-interval", "0s", "-seed", "42"}
	var first, second, stderr bytes.Buffer
	require.Equal(t, 0, run(args, &first, &stderr))
	require.Equal(t, 0, run(args, &second, &stderr))
	assert.Equal(t, first.String(), second.String())
}

func TestRun_ConfigFile(t *testing.T) {
	path := writeFile(t, "planner.yaml", `
start: A
end: C
max_ticks: 1
interval: 0s
waypoints:
  A:
    B: 1
    D: 5
  B:
    D: 1
  D:
    C: 1
`)
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "Optimized Path: [A -> B -> D -> C]")
	assert.Contains(t, stdout.String(), "Baseline Path: [B -> D -> C]")
}

func TestRun_Failures(t *testing.T) {
	missingEdge := writeFile(t, "missing.yaml", `
start: A
end: C
waypoints:
  A:
    B: 1
  B:
    D: 1
  D:
    C: 1
`)
	broken := writeFile(t, "broken.yaml", "start: [\n")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-bogus"}, 2},
		{"missing config file", []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, 1},
		{"invalid config", []string{"-config", broken}, 1},
		{"baseline edge missing", []string{"-config", missingEdge, "-ticks", "1"}, 1},
		{"missing airspace", []string{"-ticks", "1", "-airspace", filepath.Join(t.TempDir(), "nope.geojson")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
			if tt.code == 1 {
				assert.Contains(t, stderr.String(), "fatal: ")
			}
		})
	}
}
