package tree

// Walk visits every node depth-first, left before right, passing each node's
// depth (root = 0). Returning false from fn skips the node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if s, ok := n.(*Split); ok {
		walk(s.left, depth+1, fn)
		walk(s.right, depth+1, fn)
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
// A single leaf has depth 0.
func Depth(n Node) int {
	maxDepth := 0
	Walk(n, func(_ Node, d int) bool {
		if d > maxDepth {
			maxDepth = d
		}
		return true
	})
	return maxDepth
}

// CountLeaves returns the number of leaves in the tree.
func CountLeaves(n Node) int {
	leaves := 0
	Walk(n, func(node Node, _ int) bool {
		if _, ok := node.(*Leaf); ok {
			leaves++
		}
		return true
	})
	return leaves
}

// CountNodes returns the number of nodes, splits and leaves together.
func CountNodes(n Node) int {
	nodes := 0
	Walk(n, func(Node, int) bool {
		nodes++
		return true
	})
	return nodes
}

// FeatureUsage counts how many splits test each feature slot. Indices outside
// [0, numFeatures) are ignored.
func FeatureUsage(n Node, numFeatures int) []int {
	usage := make([]int, numFeatures)
	Walk(n, func(node Node, _ int) bool {
		if s, ok := node.(*Split); ok && s.feature >= 0 && s.feature < numFeatures {
			usage[s.feature]++
		}
		return true
	})
	return usage
}
