package service

import (
	"testing"

	"llmboard/internal/model"
)

func TestClassifyNoHistoryAlwaysPending(t *testing.T) {
	// 同配置首条没有比较基线，给多离谱都先 pending
	for _, tps := range []float64{0.001, 42, 99999} {
		if got := classifySubmission(tps, nil); got != model.StatusPending {
			t.Fatalf("classify(%v, no history) = %s, want pending", tps, got)
		}
	}
}

func TestClassifyAgainstBaseline(t *testing.T) {
	baseline := []float64{100} // m = 100

	cases := []struct {
		tps  float64
		want string
	}{
		{310, model.StatusFlagged},
		{290, model.StatusPending},
		{29, model.StatusFlagged},
		{31, model.StatusPending},
		// 恰好压线不算异常
		{300, model.StatusPending},
		{30, model.StatusPending},
	}
	for _, tc := range cases {
		if got := classifySubmission(tc.tps, baseline); got != tc.want {
			t.Errorf("classify(%v) = %s, want %s", tc.tps, got, tc.want)
		}
	}
}

func TestMedianRobustToOutlier(t *testing.T) {
	// 单个离群样本不应显著拉动基线
	samples := []float64{90, 100, 110, 10000}
	if m := median(samples); m != 105 {
		t.Fatalf("median = %v, want 105", m)
	}
	if m := median([]float64{100, 90, 110}); m != 100 {
		t.Fatalf("odd median = %v, want 100", m)
	}
	if m := median([]float64{7}); m != 7 {
		t.Fatalf("single median = %v, want 7", m)
	}
}
