package service

import (
	"sort"

	"llmboard/internal/model"
)

// 偏离已核验中位数的倍数阈值，超出即标记 flagged
const (
	flagHighFactor = 3.0
	flagLowFactor  = 0.3
)

// classifySubmission 对新的手动提交做异常判定
// 没有历史样本时无从比较，直接 pending（同配置首条总是被信任，已接受的局限）
// 恰好落在 3x / 0.3x 边界上不算异常
func classifySubmission(tokensPerSecond float64, verifiedSamples []float64) string {
	if len(verifiedSamples) == 0 {
		return model.StatusPending
	}
	m := median(verifiedSamples)
	if tokensPerSecond > m*flagHighFactor || tokensPerSecond < m*flagLowFactor {
		return model.StatusFlagged
	}
	return model.StatusPending
}

// median 真中位数，对离群值比均值稳
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
