// Package treeprint renders trees found by the cart package, as indented
// text for terminals and as Graphviz figures.
package treeprint

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// Fprint writes tree to w, one node per line, children indented below
// their split with the left child first.
func Fprint(w io.Writer, tree cart.Node) error {
	var sb strings.Builder
	if err := printNode(&sb, tree, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String returns the Fprint rendering of tree.
func String(tree cart.Node) string {
	var sb strings.Builder
	if err := printNode(&sb, tree, 0); err != nil {
		return err.Error()
	}
	return sb.String()
}

func printNode(sb *strings.Builder, n cart.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch node := n.(type) {
	case *cart.RealSplit:
		fmt.Fprintf(sb, "%s%s\n", indent, SplitLabel(node))
		if err := printNode(sb, node.Left(), depth+1); err != nil {
			return err
		}
		return printNode(sb, node.Right(), depth+1)
	case *cart.CatSplit:
		fmt.Fprintf(sb, "%s%s\n", indent, SplitLabel(node))
		if err := printNode(sb, node.Left(), depth+1); err != nil {
			return err
		}
		return printNode(sb, node.Right(), depth+1)
	case *cart.RealLeaf, *cart.CatLeaf:
		fmt.Fprintf(sb, "%s%s\n", indent, LeafLabel(node))
		return nil
	default:
		return errors.NewValidationError("tree", "unknown node kind", fmt.Sprintf("%T", n))
	}
}

// SplitLabel describes a split node: "A < 0.5" for a continuous split and
// "B in {x, z}" for a categorical one. Other nodes yield "".
func SplitLabel(n cart.Node) string {
	switch node := n.(type) {
	case *cart.RealSplit:
		return fmt.Sprintf("%s < %g", node.Var().Name(), node.SplitVal())
	case *cart.CatSplit:
		return fmt.Sprintf("%s in {%s}", node.Var().Name(), strings.Join(categoryNames(node.Var(), node.LeftMask()), ", "))
	}
	return ""
}

// LeafLabel describes a leaf by its statistics. Other nodes yield "".
func LeafLabel(n cart.Node) string {
	switch node := n.(type) {
	case *cart.RealLeaf:
		s := node.Stats()
		return fmt.Sprintf("%s: n=%d mean=%.4g sd=%.4g", node.Var().Name(), s.Count, s.Mean, s.StdDev)
	case *cart.CatLeaf:
		s := node.Stats()
		parts := make([]string, len(s.CatCounts))
		for i, c := range s.CatCounts {
			parts[i] = fmt.Sprintf("%s=%d", node.Var().Category(i), c)
		}
		return fmt.Sprintf("%s: n=%d [%s]", node.Var().Name(), s.Count, strings.Join(parts, " "))
	}
	return ""
}

func categoryNames(v *cart.CatVar, mask uint64) []string {
	names := make([]string, 0, bits.OnesCount64(mask))
	for m := mask; m != 0; m &= m - 1 {
		names = append(names, v.Category(bits.TrailingZeros64(m)))
	}
	return names
}
