package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// sampleTree mirrors a depth-2 regression tree over (streak, delay, utility, linkedin).
func sampleTree() Node {
	return NewSplit(1, 12.5,
		NewSplit(0, 2.5,
			NewLeaf(540.25),
			NewLeaf(655.0),
		),
		NewSplit(3, 0.5,
			NewLeaf(402.75),
			NewLeaf(451.5),
		),
	)
}

func TestEvaluate_BoundaryRoutesLeft(t *testing.T) {
	root := NewSplit(0, 10.0, NewLeaf(100), NewLeaf(200))

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"equal to threshold", 10.0, 100},
		{"just above threshold", 10.0001, 200},
		{"below threshold", -3, 100},
		{"far above threshold", 1e9, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(root, []float64{tt.value, 0, 0, 0})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_SingleLeaf(t *testing.T) {
	leaf := NewLeaf(612.5)
	inputs := [][]float64{
		{0, 0, 0, 0},
		{24, -5, 1, 1},
		{-1e6, 1e6, 42, 7},
	}
	for _, x := range inputs {
		assert.Equal(t, 612.5, Evaluate(leaf, x))
	}
}

func TestEvaluate_Paths(t *testing.T) {
	root := sampleTree()
	tests := []struct {
		x    []float64
		want float64
	}{
		{[]float64{0, 0, 0.5, 0}, 540.25},
		{[]float64{12, 12.5, 0.5, 0}, 655.0},
		{[]float64{3, 20, 0.5, 0}, 402.75},
		{[]float64{3, 20, 0.5, 1}, 451.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Evaluate(root, tt.x), "x=%v", tt.x)
	}
}

func TestMarshal_Schema(t *testing.T) {
	root := NewSplit(2, 0.25, NewLeaf(1.5), NewLeaf(-2))

	data, err := Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"feature_index":2,"threshold":0.25,"left":{"value":1.5},"right":{"value":-2}}`,
		string(data))

	leafData, err := Marshal(NewLeaf(3))
	require.NoError(t, err)
	assert.Equal(t, `{"value":3}`, string(leafData))

	_, err = Marshal(nil)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	root := sampleTree()

	data, err := Marshal(root)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	inputs := [][]float64{
		{0, 0, 0, 0},
		{2.5, 12.5, 0.3, 0},
		{2.5000001, 12.5, 0.3, 0},
		{10, 12.5000001, 0.9, 0.5},
		{10, 30, 0.9, 1},
	}
	for _, x := range inputs {
		assert.Equal(t, Evaluate(root, x), Evaluate(decoded, x), "x=%v", x)
	}
	assert.Equal(t, CountNodes(root), CountNodes(decoded))
}

func TestRoundTrip_PreservesBits(t *testing.T) {
	threshold := 0.1 + 0.2
	value := 1.0 / 3.0
	data, err := Marshal(NewSplit(2, threshold, NewLeaf(value), NewLeaf(-value)))
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	split, ok := decoded.(*Split)
	require.True(t, ok)
	assert.Equal(t, threshold, split.Threshold())
	assert.Equal(t, value, split.Left().(*Leaf).Value())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"both variants", `{"value":1,"feature_index":0,"threshold":1,"left":{"value":1},"right":{"value":2}}`},
		{"neither variant", `{"threshold":1}`},
		{"empty object", `{}`},
		{"null", `null`},
		{"missing threshold", `{"feature_index":0,"left":{"value":1},"right":{"value":2}}`},
		{"missing right", `{"feature_index":0,"threshold":1,"left":{"value":1}}`},
		{"null left", `{"feature_index":0,"threshold":1,"left":null,"right":{"value":2}}`},
		{"leaf with children", `{"value":1,"left":{"value":2}}`},
		{"fractional feature index", `{"feature_index":0.5,"threshold":1,"left":{"value":1},"right":{"value":2}}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedModel), "got %v", err)
		})
	}
}

func TestDecode_ErrorPath(t *testing.T) {
	_, err := Decode([]byte(`{"feature_index":0,"threshold":1,"left":{"value":1},"right":{}}`), "trees[3]")
	require.Error(t, err)

	var malformed *errors.MalformedModelError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "trees[3].right", malformed.Field)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sampleTree(), 4, "tree"))
	assert.NoError(t, Validate(NewLeaf(1), 4, "tree"))

	bad := NewSplit(0, 1, NewLeaf(1), NewSplit(4, 2, NewLeaf(2), NewLeaf(3)))
	err := Validate(bad, 4, "trees[0]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedModel))

	var malformed *errors.MalformedModelError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "trees[0].right.feature_index", malformed.Field)

	negative := NewSplit(-1, 1, NewLeaf(1), NewLeaf(2))
	assert.Error(t, Validate(negative, 4, "tree"))

	assert.Error(t, Validate(nil, 4, "tree"))
	var nilLeaf *Leaf
	assert.Error(t, Validate(nilLeaf, 4, "tree"))
}

func TestNewSplit_PanicsOnNilChild(t *testing.T) {
	assert.Panics(t, func() { NewSplit(0, 1, nil, NewLeaf(1)) })
	assert.Panics(t, func() { NewSplit(0, 1, NewLeaf(1), nil) })
}

func TestStats(t *testing.T) {
	root := sampleTree()
	assert.Equal(t, 2, Depth(root))
	assert.Equal(t, 4, CountLeaves(root))
	assert.Equal(t, 7, CountNodes(root))
	assert.Equal(t, []int{1, 1, 0, 1}, FeatureUsage(root, 4))

	leaf := NewLeaf(0)
	assert.Equal(t, 0, Depth(leaf))
	assert.Equal(t, 1, CountLeaves(leaf))
	assert.Equal(t, 1, CountNodes(leaf))
	assert.Equal(t, []int{0, 0, 0, 0}, FeatureUsage(leaf, 4))
}

func TestWalk_SkipChildren(t *testing.T) {
	visited := 0
	Walk(sampleTree(), func(n Node, depth int) bool {
		visited++
		return depth < 1
	})
	// root + two depth-1 splits; their children are skipped
	assert.Equal(t, 3, visited)
}

func TestNodeEmbedsInJSON(t *testing.T) {
	doc := struct {
		Trees []Node `json:"trees"`
	}{Trees: []Node{NewLeaf(1), NewSplit(0, 2, NewLeaf(3), NewLeaf(4))}}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"trees":[{"value":1},{"feature_index":0,"threshold":2,"left":{"value":3},"right":{"value":4}}]}`,
		string(data))
}
