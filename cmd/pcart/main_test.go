package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pcart/pkg/log"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.LevelWarn)
	})

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeSearch writes a CSV dataset where Y follows B and a description of it.
func writeSearch(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var csv strings.Builder
	csv.WriteString("A,B,Y\n")
	for i := 0; i < 24; i++ {
		b := i % 3
		y := 0
		if b == 2 {
			y = 1
		}
		csv.WriteString(strings.Join([]string{
			[]string{"0.1", "0.4", "0.6", "0.9"}[i%4],
			[]string{"0", "1", "2"}[b],
			[]string{"0", "1"}[y],
		}, ",") + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(csv.String()), 0o600))

	yaml := `
data: data.csv
has_header: true
response: Y
predictors: [A, B]
variables:
  - {name: A, kind: real, column: 0, min: 0, max: 1, max_subdivisions: 1}
  - {name: B, kind: categorical, column: 1, categories: [x, y, z]}
  - {name: Y, kind: categorical, column: 2, categories: ["no", "yes"]}
`
	path := filepath.Join(dir, "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestOptimizeCommand(t *testing.T) {
	path := writeSearch(t)
	figure := filepath.Join(t.TempDir(), "tree.svg")

	out, err := run(t, "optimize", "--config", path, "--verify", "--dot", figure)
	require.NoError(t, err)
	assert.Contains(t, out, "Total score:")
	assert.Contains(t, out, "In-sample accuracy: 1.0000")
	assert.Contains(t, out, "B in {")

	info, err := os.Stat(figure)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEnumerateCommand(t *testing.T) {
	path := writeSearch(t)

	out, err := run(t, "enumerate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Shapes: ")
	assert.Contains(t, out, "Prior mass: 1.000000000")
}

func TestOptimizeCommandRequiresConfig(t *testing.T) {
	_, err := run(t, "optimize")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "enumerate", "--config", writeSearch(t))
	assert.Error(t, err)
}

func TestDemoCommand(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "scores.png")

	out, err := run(t, "demo", "--min-rows", "32", "--max-rows", "64", "--seed", "3", "--plot", plotPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Sample size:"))
	assert.Contains(t, out, "Sample size: 64")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDemoCommandRejectsBadRange(t *testing.T) {
	_, err := run(t, "demo", "--min-rows", "64", "--max-rows", "32")
	assert.Error(t, err)
}
