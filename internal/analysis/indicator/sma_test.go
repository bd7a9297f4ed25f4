package indicator

import (
	"math"
	"testing"
	"time"

	"twquant/internal/market"
)

func makeBars(closes ...float64) []market.Bar {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	if len(out) != len(values) {
		t.Fatalf("输出长度应为 %d, 实际=%d", len(values), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Fatalf("前 period-1 笔应为 NaN, out[%d]=%v", i, out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if math.Abs(out[i+2]-w) > 1e-9 {
			t.Fatalf("out[%d] 应为 %.2f, 实际=%.4f", i+2, w, out[i+2])
		}
	}
}

func TestSMAInsufficientHistory(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("历史不足时整列应为 NaN, out[%d]=%v", i, v)
		}
	}
}

func TestSMANaNPropagation(t *testing.T) {
	values := []float64{1, math.NaN(), 3, 4, 5}
	out := SMA(values, 3)
	if !math.IsNaN(out[2]) || !math.IsNaN(out[3]) {
		t.Fatalf("覆盖到 NaN 的窗口应输出 NaN, out[2]=%v out[3]=%v", out[2], out[3])
	}
	if math.Abs(out[4]-4) > 1e-9 {
		t.Fatalf("NaN 移出窗口后应恢复计算, out[4]=%v", out[4])
	}
}

func TestSMALast(t *testing.T) {
	if _, ok := SMALast([]float64{1, 2}, 3); ok {
		t.Fatalf("历史不足时 ok 应为 false")
	}
	v, ok := SMALast([]float64{1, 2, 3, 4, 5}, 5)
	if !ok || math.Abs(v-3) > 1e-9 {
		t.Fatalf("5 日均值应为 3, 实际=%v ok=%v", v, ok)
	}
}

func TestAttachMA(t *testing.T) {
	bars := makeBars(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	out := AttachMA(bars, []int{5, 20})

	ma5 := out[5]
	if math.Abs(ma5[len(ma5)-1]-8) > 1e-9 {
		t.Fatalf("末端 5 日均值应为 8, 实际=%v", ma5[len(ma5)-1])
	}
	for i, v := range out[20] {
		if !math.IsNaN(v) {
			t.Fatalf("20MA 历史不足应整列 NaN, out[%d]=%v", i, v)
		}
	}
}
