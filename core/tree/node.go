// Package tree is the portable binary decision-tree representation shared by
// the forest and gradient-boosting document kinds.
//
// A Node is exactly one of *Split or *Leaf. Nodes are immutable after
// construction and every child is owned by exactly one parent, so a tree is
// finite and acyclic by construction. Trees are built root-down from
// complete children:
//
//	root := tree.NewSplit(1, 10.0,
//	    tree.NewLeaf(100),
//	    tree.NewLeaf(200),
//	)
//
// What a leaf value means depends on the enclosing document: an absolute
// prediction inside a forest, a residual correction inside a gbm ensemble.
package tree

import "fmt"

// Node is a decision-tree node: *Split or *Leaf.
type Node interface {
	isNode()
}

// Split routes a feature vector to Left when x[Feature()] <= Threshold(),
// otherwise to Right.
type Split struct {
	feature   int
	threshold float64
	left      Node
	right     Node
}

func (*Split) isNode() {}

// NewSplit creates an internal node from two complete children.
// It panics if either child is nil.
func NewSplit(feature int, threshold float64, left, right Node) *Split {
	if left == nil || right == nil {
		panic(fmt.Sprintf("tree: split on feature %d needs two children", feature))
	}
	return &Split{feature: feature, threshold: threshold, left: left, right: right}
}

// Feature returns the feature-slot index compared at this node.
func (s *Split) Feature() int { return s.feature }

// Threshold returns the split threshold.
func (s *Split) Threshold() float64 { return s.threshold }

// Left returns the child taken when x[Feature()] <= Threshold().
func (s *Split) Left() Node { return s.left }

// Right returns the child taken when x[Feature()] > Threshold().
func (s *Split) Right() Node { return s.right }

// Leaf is a terminal node holding one scalar output.
type Leaf struct {
	value float64
}

func (*Leaf) isNode() {}

// NewLeaf creates a terminal node.
func NewLeaf(value float64) *Leaf {
	return &Leaf{value: value}
}

// Value returns the leaf output.
func (l *Leaf) Value() float64 { return l.value }
