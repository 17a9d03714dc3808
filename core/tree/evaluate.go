package tree

import (
	"fmt"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Evaluate walks n from the root and returns the value of the leaf reached by x.
// At each split, x[feature] <= threshold goes left (a value equal to the
// threshold routes left). The tree must have passed Validate for len(x) features.
func Evaluate(n Node, x []float64) float64 {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.value
		case *Split:
			if x[node.feature] <= node.threshold {
				n = node.left
			} else {
				n = node.right
			}
		default:
			panic(fmt.Sprintf("tree: unknown node type %T", n))
		}
	}
}

// Validate checks that every node is non-nil and that every split feature
// index is in [0, numFeatures). path prefixes the field in the returned
// MalformedModelError, e.g. "trees[3]".
func Validate(n Node, numFeatures int, path string) error {
	switch node := n.(type) {
	case *Leaf:
		if node == nil {
			return errors.NewMalformedModelError("tree.Validate", path, "nil leaf")
		}
		return nil
	case *Split:
		if node == nil {
			return errors.NewMalformedModelError("tree.Validate", path, "nil split")
		}
		if node.feature < 0 || node.feature >= numFeatures {
			return errors.NewMalformedModelError("tree.Validate", path+".feature_index",
				fmt.Sprintf("feature index %d out of range [0, %d)", node.feature, numFeatures))
		}
		if err := Validate(node.left, numFeatures, path+".left"); err != nil {
			return err
		}
		return Validate(node.right, numFeatures, path+".right")
	default:
		return errors.NewMalformedModelError("tree.Validate", path, "missing node")
	}
}
