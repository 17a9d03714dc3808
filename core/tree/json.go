package tree

import (
	"bytes"
	"encoding/json"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// MarshalJSON encodes a split as
// {"feature_index":<int>,"threshold":<float>,"left":<node>,"right":<node>}.
func (s *Split) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FeatureIndex int     `json:"feature_index"`
		Threshold    float64 `json:"threshold"`
		Left         Node    `json:"left"`
		Right        Node    `json:"right"`
	}{s.feature, s.threshold, s.left, s.right})
}

// MarshalJSON encodes a leaf as {"value":<float>}.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value float64 `json:"value"`
	}{l.value})
}

// Marshal encodes n.
func Marshal(n Node) ([]byte, error) {
	if n == nil {
		return nil, errors.NewValueError("tree.Marshal", "nil node")
	}
	return json.Marshal(n)
}

// wireNode accepts either variant; presence of fields picks the variant.
type wireNode struct {
	FeatureIndex *int            `json:"feature_index"`
	Threshold    *float64        `json:"threshold"`
	Left         json.RawMessage `json:"left"`
	Right        json.RawMessage `json:"right"`
	Value        *float64        `json:"value"`
}

// Unmarshal decodes one node and its subtree. An object with "value" is a
// leaf and one with "feature_index" is a split; anything else is a
// MalformedModelError.
func Unmarshal(data []byte) (Node, error) {
	return Decode(data, "tree")
}

// Decode is Unmarshal with path naming the node's position in the enclosing
// document, e.g. "trees[4]", for error messages.
func Decode(data []byte, path string) (Node, error) {
	if isNull(data) {
		return nil, errors.NewMalformedModelError("tree.Decode", path, "node is missing")
	}

	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.NewMalformedModelError("tree.Decode", path, err.Error())
	}

	isSplit := w.FeatureIndex != nil
	isLeaf := w.Value != nil
	switch {
	case isSplit && isLeaf:
		return nil, errors.NewMalformedModelError("tree.Decode", path, "node has both value and feature_index")
	case isLeaf:
		if w.Threshold != nil || !isNull(w.Left) || !isNull(w.Right) {
			return nil, errors.NewMalformedModelError("tree.Decode", path, "leaf carries split fields")
		}
		return NewLeaf(*w.Value), nil
	case isSplit:
		if w.Threshold == nil {
			return nil, errors.NewMalformedModelError("tree.Decode", path+".threshold", "split has no threshold")
		}
		left, err := Decode(w.Left, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := Decode(w.Right, path+".right")
		if err != nil {
			return nil, err
		}
		return NewSplit(*w.FeatureIndex, *w.Threshold, left, right), nil
	default:
		return nil, errors.NewMalformedModelError("tree.Decode", path, "node has neither value nor feature_index")
	}
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
