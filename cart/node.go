package cart

// Node is a tree node. The set of implementations is closed: *RealSplit,
// *CatSplit, *RealLeaf and *CatLeaf. Nodes are immutable and are only built
// by the search engines.
type Node interface {
	// NumLeaves returns the number of leaves in the subtree.
	NumLeaves() int

	node()
}

// RealSplit routes rows with Var < SplitVal left and all others right.
type RealSplit struct {
	v        *RealVar
	splitVal float64
	left     Node
	right    Node
	leaves   int
}

func newRealSplit(v *RealVar, splitVal float64, left, right Node) *RealSplit {
	return &RealSplit{v: v, splitVal: splitVal, left: left, right: right, leaves: left.NumLeaves() + right.NumLeaves()}
}

func (s *RealSplit) node() {}

// NumLeaves implements Node.
func (s *RealSplit) NumLeaves() int { return s.leaves }

// Var returns the split variable.
func (s *RealSplit) Var() *RealVar { return s.v }

// SplitVal returns the threshold, the midpoint of the variable's interval at this node.
func (s *RealSplit) SplitVal() float64 { return s.splitVal }

// Left returns the subtree for values below SplitVal.
func (s *RealSplit) Left() Node { return s.left }

// Right returns the subtree for values at or above SplitVal.
func (s *RealSplit) Right() Node { return s.right }

// CatSplit routes rows whose category is in LeftMask left and rows whose
// category is in RightMask right. The masks are disjoint.
type CatSplit struct {
	v         *CatVar
	leftMask  uint64
	rightMask uint64
	left      Node
	right     Node
	leaves    int
}

func newCatSplit(v *CatVar, leftMask, rightMask uint64, left, right Node) *CatSplit {
	return &CatSplit{v: v, leftMask: leftMask, rightMask: rightMask, left: left, right: right, leaves: left.NumLeaves() + right.NumLeaves()}
}

func (s *CatSplit) node() {}

// NumLeaves implements Node.
func (s *CatSplit) NumLeaves() int { return s.leaves }

// Var returns the split variable.
func (s *CatSplit) Var() *CatVar { return s.v }

// LeftMask returns the categories routed left, bit i standing for category i.
func (s *CatSplit) LeftMask() uint64 { return s.leftMask }

// RightMask returns the categories routed right.
func (s *CatSplit) RightMask() uint64 { return s.rightMask }

// Left returns the subtree for LeftMask.
func (s *CatSplit) Left() Node { return s.left }

// Right returns the subtree for RightMask.
func (s *CatSplit) Right() Node { return s.right }

// RealLeaf is a leaf predicting a continuous response.
type RealLeaf struct {
	v     *RealVar
	stats RealLeafStats
}

func (l *RealLeaf) node() {}

// NumLeaves implements Node.
func (l *RealLeaf) NumLeaves() int { return 1 }

// Var returns the response variable.
func (l *RealLeaf) Var() *RealVar { return l.v }

// Stats returns the sufficient statistics of the rows reaching the leaf.
func (l *RealLeaf) Stats() RealLeafStats { return l.stats }

// CatLeaf is a leaf predicting a categorical response.
type CatLeaf struct {
	v     *CatVar
	stats CatLeafStats
}

func (l *CatLeaf) node() {}

// NumLeaves implements Node.
func (l *CatLeaf) NumLeaves() int { return 1 }

// Var returns the response variable.
func (l *CatLeaf) Var() *CatVar { return l.v }

// Stats returns a copy of the category counts of the rows reaching the leaf.
func (l *CatLeaf) Stats() CatLeafStats {
	return CatLeafStats{Count: l.stats.Count, CatCounts: append([]int(nil), l.stats.CatCounts...)}
}

// TreeResult is a tree together with its log scores.
type TreeResult struct {
	Tree           Node
	DataScore      float64
	StructureScore float64
}

// TotalScore returns the unnormalized log posterior DataScore + StructureScore.
func (r TreeResult) TotalScore() float64 {
	return r.DataScore + r.StructureScore
}
