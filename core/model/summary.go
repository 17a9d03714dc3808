package model

import "github.com/YuminosukeSato/tenantscore/core/tree"

// Summary は文書の形状の要約（inspect コマンドやログ出力用）
type Summary struct {
	Kind         Kind
	Trees        int
	MaxDepth     int
	Leaves       int
	Nodes        int
	FeatureUsage []int // 各特徴量スロットを判定する分岐の数
}

// Summarize は文書の要約を計算する。Linear の場合、木に関する値はゼロ。
func Summarize(doc Document) Summary {
	s := Summary{Kind: doc.Kind(), FeatureUsage: make([]int, NumFeatures)}
	for _, t := range Trees(doc) {
		s.Trees++
		if d := tree.Depth(t); d > s.MaxDepth {
			s.MaxDepth = d
		}
		s.Leaves += tree.CountLeaves(t)
		s.Nodes += tree.CountNodes(t)
		for i, u := range tree.FeatureUsage(t, NumFeatures) {
			s.FeatureUsage[i] += u
		}
	}
	return s
}
