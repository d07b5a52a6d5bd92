package treeprint

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/pcart/cart"
)

// splitTree returns the optimum of a small dataset where the response
// follows B exactly, so the tree splits on B.
func splitTree(t *testing.T) cart.Node {
	t.Helper()
	a, err := cart.NewRealVar("A", 0, 0, 1, 1)
	require.NoError(t, err)
	b, err := cart.NewCatVar("B", 1, []string{"x", "y", "z"})
	require.NoError(t, err)
	y, err := cart.NewCatVar("Y", 2, []string{"no", "yes"})
	require.NoError(t, err)

	var rows cart.Rows
	for i := 0; i < 30; i++ {
		cat := float64(i % 3)
		resp := 0.0
		if cat == 1 {
			resp = 1
		}
		rows = append(rows, []float64{float64(i%10) / 10, cat, resp})
	}
	result, err := cart.OptimizeTree([]cart.Variable{a, b}, y, rows)
	require.NoError(t, err)
	return result.Tree
}

func TestFprint(t *testing.T) {
	tree := splitTree(t)

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, tree))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 2*tree.NumLeaves()-1)
	assert.True(t, strings.HasPrefix(lines[0], "B in {"), lines[0])
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "  "), l)
	}
	assert.Equal(t, buf.String(), String(tree))
}

func TestLabels(t *testing.T) {
	v, err := cart.NewRealVar("A", 0, 0, 1, 1)
	require.NoError(t, err)
	y, err := cart.NewCatVar("Y", 1, []string{"no", "yes"})
	require.NoError(t, err)

	data := mat.NewDense(4, 2, []float64{0.1, 0, 0.2, 0, 0.7, 1, 0.9, 1})
	result, err := cart.OptimizeTree([]cart.Variable{v}, y, data)
	require.NoError(t, err)

	split, ok := result.Tree.(*cart.RealSplit)
	require.True(t, ok, "tree is %T", result.Tree)
	assert.Equal(t, "A < 0.5", SplitLabel(split))
	assert.Equal(t, "Y: n=2 [no=2 yes=0]", LeafLabel(split.Left()))
	assert.Equal(t, "Y: n=2 [no=0 yes=2]", LeafLabel(split.Right()))
	assert.Empty(t, SplitLabel(split.Left()))
	assert.Empty(t, LeafLabel(split))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".SVG")
	require.NoError(t, err)
	assert.Equal(t, graphviz.SVG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	tree := splitTree(t)

	var buf bytes.Buffer
	require.NoError(t, Render(tree, graphviz.XDOT, &buf))
	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "B in {")
}

func TestRenderFile(t *testing.T) {
	tree := splitTree(t)
	path := filepath.Join(t.TempDir(), "tree.svg")

	require.NoError(t, RenderFile(tree, path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<svg")

	assert.Error(t, RenderFile(tree, filepath.Join(t.TempDir(), "tree.gif")))
}
