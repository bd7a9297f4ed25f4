package indicator

import (
	"math"
	"testing"

	"twquant/internal/market"
)

func TestKDSeedAndFlatRange(t *testing.T) {
	// 价格全程不动：RSV 恒为 50（零振幅回退），K、D 维持在 50。
	bars := makeBars(100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100)
	k, d := KD(bars, DefaultKDPeriod)

	if k[0] != 50 || d[0] != 50 {
		t.Fatalf("K、D 初始值应为 50, 实际 K=%v D=%v", k[0], d[0])
	}
	for i := range k {
		if k[i] != 50 || d[i] != 50 {
			t.Fatalf("零振幅序列 K、D 应恒为 50, i=%d K=%v D=%v", i, k[i], d[i])
		}
	}
}

func TestKDRecurrence(t *testing.T) {
	// 连续上涨且收在窗口最高点：RSV 从第 9 笔起为 100，
	// K 按 K = 2/3·K + 1/3·100 向 100 收敛且单调不减。
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{High: c, Low: c - 1, Close: c}
	}
	k, d := KD(bars, DefaultKDPeriod)

	// 手算前两步：K(8)=50 之前全为 50（RSV 窗口不足回退 50），
	// i=8 起 RSV=100：K = 2/3·50 + 1/3·100 = 66.67。
	if k[8] != 66.67 {
		t.Fatalf("第一笔有效 RSV 后 K 应为 66.67, 实际=%v", k[8])
	}
	for i := 9; i < len(k); i++ {
		if k[i] < k[i-1] {
			t.Fatalf("持续强势下 K 应单调不减, k[%d]=%v < k[%d]=%v", i, k[i], i-1, k[i-1])
		}
		if k[i] > 100 || d[i] > 100 || k[i] < 0 || d[i] < 0 {
			t.Fatalf("K、D 应落在 [0,100], i=%d K=%v D=%v", i, k[i], d[i])
		}
	}
	if k[len(k)-1] < 99 {
		t.Fatalf("长期满 RSV 下 K 应收敛到 100 附近, 实际=%v", k[len(k)-1])
	}
}

func TestKDRoundsToTwoDecimals(t *testing.T) {
	closes := []float64{10, 11, 9, 12, 8, 13, 10, 11, 12, 9, 10, 13, 12}
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{High: c + 1, Low: c - 1, Close: c}
	}
	k, d := KD(bars, DefaultKDPeriod)
	for i := range k {
		if k[i] != round2(k[i]) || d[i] != round2(d[i]) {
			t.Fatalf("输出应保留两位小数, i=%d K=%v D=%v", i, k[i], d[i])
		}
	}
}

func TestKDEmptyAndNaN(t *testing.T) {
	k, d := KD(nil, DefaultKDPeriod)
	if len(k) != 0 || len(d) != 0 {
		t.Fatalf("空序列应输出空切片")
	}

	bars := makeBars(10, 10, 10, 10, 10, 10, 10, 10, 10, 10)
	bars[3].High = math.NaN()
	k, _ = KD(bars, DefaultKDPeriod)
	for i, v := range k {
		if math.IsNaN(v) {
			t.Fatalf("含 NaN 的窗口应回退 50 而非扩散, k[%d]=NaN", i)
		}
	}
}
