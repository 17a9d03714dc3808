package export

import (
	"fmt"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// FittedTree is the trainer-side view of one fitted regression tree. Nodes are
// addressed by integer id and the root is node 0.
type FittedTree interface {
	// NodeCount returns the number of addressable node ids.
	NodeCount() int
	// IsSplit reports whether node id is an internal split node.
	IsSplit(id int) bool
	// SplitFeature returns the feature-slot index tested by split node id.
	SplitFeature(id int) int
	// SplitThreshold returns the threshold of split node id.
	SplitThreshold(id int) float64
	// Children returns the left and right child ids of split node id.
	Children(id int) (left, right int)
	// LeafValue returns the output of leaf node id.
	LeafValue(id int) float64
}

// TreeUndefined marks a leaf in ArrayTree.Feature, as sklearn's
// _tree.TREE_UNDEFINED does.
const TreeUndefined = -2

// TreeLeaf is sklearn's child id for "no child".
const TreeLeaf = -1

// ArrayTree is a fitted tree in sklearn's parallel-array layout (the tree_
// attribute of a fitted estimator), with value already reduced to one
// output per node (value[node][0][0]).
type ArrayTree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// Check verifies that all arrays describe the same number of nodes.
func (t *ArrayTree) Check() error {
	n := len(t.Feature)
	if n == 0 {
		return errors.NewValidationError("feature", "tree has no nodes", n)
	}
	lengths := []struct {
		name string
		n    int
	}{
		{"children_left", len(t.ChildrenLeft)},
		{"children_right", len(t.ChildrenRight)},
		{"threshold", len(t.Threshold)},
		{"value", len(t.Value)},
	}
	for _, l := range lengths {
		if l.n != n {
			return errors.NewValidationError(l.name, fmt.Sprintf("expected %d entries to match feature", n), l.n)
		}
	}
	return nil
}

// NodeCount implements FittedTree.
func (t *ArrayTree) NodeCount() int { return len(t.Feature) }

// IsSplit implements FittedTree.
func (t *ArrayTree) IsSplit(id int) bool { return t.Feature[id] != TreeUndefined }

// SplitFeature implements FittedTree.
func (t *ArrayTree) SplitFeature(id int) int { return t.Feature[id] }

// SplitThreshold implements FittedTree.
func (t *ArrayTree) SplitThreshold(id int) float64 { return t.Threshold[id] }

// Children implements FittedTree.
func (t *ArrayTree) Children(id int) (left, right int) {
	return t.ChildrenLeft[id], t.ChildrenRight[id]
}

// LeafValue implements FittedTree.
func (t *ArrayTree) LeafValue(id int) float64 { return t.Value[id] }
