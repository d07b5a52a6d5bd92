package treeprint

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// Formats maps file extensions to Graphviz output formats.
var Formats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

// ParseFormat returns the Graphviz format for a name such as "svg".
func ParseFormat(name string) (graphviz.Format, error) {
	f, ok := Formats[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return "", errors.NewValidationError("format", "unsupported figure format", name)
	}
	return f, nil
}

// Graph builds the Graphviz graph of tree. Splits are ellipses, leaves are
// boxes, and edges are labelled with the branch they stand for. The caller
// must Close both returned values.
func Graph(tree cart.Node) (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, errors.Wrap(err, "treeprint: create graph")
	}
	d := &drawer{graph: graph}
	if _, err := d.draw(tree); err != nil {
		graph.Close()
		gv.Close()
		return nil, nil, err
	}
	return gv, graph, nil
}

type drawer struct {
	graph *cgraph.Graph
	next  int
}

func (d *drawer) draw(n cart.Node) (*cgraph.Node, error) {
	gn, err := d.graph.CreateNode(fmt.Sprintf("n%d", d.next))
	if err != nil {
		return nil, errors.Wrap(err, "treeprint: create node")
	}
	d.next++

	var (
		left, right           cart.Node
		leftLabel, rightLabel string
	)
	switch node := n.(type) {
	case *cart.RealSplit:
		left, right = node.Left(), node.Right()
		leftLabel, rightLabel = "yes", "no"
	case *cart.CatSplit:
		left, right = node.Left(), node.Right()
		leftLabel = strings.Join(categoryNames(node.Var(), node.LeftMask()), ",")
		rightLabel = strings.Join(categoryNames(node.Var(), node.RightMask()), ",")
	case *cart.RealLeaf, *cart.CatLeaf:
		gn.Set("label", LeafLabel(n))
		gn.Set("shape", "box")
		return gn, nil
	default:
		return nil, errors.NewValidationError("tree", "unknown node kind", fmt.Sprintf("%T", n))
	}

	gn.Set("label", SplitLabel(n))
	for _, child := range []struct {
		node  cart.Node
		label string
	}{{left, leftLabel}, {right, rightLabel}} {
		cn, err := d.draw(child.node)
		if err != nil {
			return nil, err
		}
		e, err := d.graph.CreateEdge("", gn, cn)
		if err != nil {
			return nil, errors.Wrap(err, "treeprint: create edge")
		}
		e.Set("label", child.label)
	}
	return gn, nil
}

// Render writes tree to w in the given format.
func Render(tree cart.Node, format graphviz.Format, w io.Writer) error {
	gv, graph, err := Graph(tree)
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()
	return errors.Wrap(gv.Render(graph, format, w), "treeprint: render")
}

// RenderFile writes tree to path, choosing the format from the extension.
func RenderFile(tree cart.Node, path string) error {
	ext := path[strings.LastIndexByte(path, '.')+1:]
	format, err := ParseFormat(ext)
	if err != nil {
		return err
	}
	gv, graph, err := Graph(tree)
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()
	return errors.Wrapf(gv.RenderFilename(graph, format, path), "treeprint: render %s", path)
}
