package indicator

import (
	"math"

	"twquant/internal/market"
)

// DefaultKDPeriod 台湾市场惯用的 RSV 周期。
const DefaultKDPeriod = 9

// KD 计算台湾市场标准 KD 指标（随机指标）：
//
//	RSV(t) = (Close - LowestLow(N)) / (HighestHigh(N) - LowestLow(N)) × 100，裁剪到 [0,100]
//	K(t) = (2/3)·K(t-1) + (1/3)·RSV(t)
//	D(t) = (2/3)·D(t-1) + (1/3)·K(t)
//
// K、D 初始值均为 50，递推从「调用方提供的序列」第一笔开始，而不是真实
// 上市日。因此结果依赖暖机长度：关注窗口之前至少再给 20 根 Bar，递推
// 才会收敛到与长历史一致的数值，这是调用方契约的一部分。
//
// 窗口内最高价等于最低价（零振幅）时 RSV 取 50；窗口不足 N 笔或含 NaN
// 时同样取 50，与指标的中性起点一致。输出按惯例保留两位小数。
func KD(bars []market.Bar, period int) (k, d []float64) {
	if period <= 0 {
		period = DefaultKDPeriod
	}
	n := len(bars)
	k = make([]float64, n)
	d = make([]float64, n)
	if n == 0 {
		return k, d
	}

	rsv := make([]float64, n)
	for i := 0; i < n; i++ {
		rsv[i] = rawStochastic(bars, i, period)
	}

	k[0], d[0] = 50, 50
	for i := 1; i < n; i++ {
		k[i] = (2.0/3.0)*k[i-1] + (1.0/3.0)*rsv[i]
		d[i] = (2.0/3.0)*d[i-1] + (1.0/3.0)*k[i]
	}
	for i := range k {
		k[i] = round2(k[i])
		d[i] = round2(d[i])
	}
	return k, d
}

// rawStochastic 计算单点 RSV；窗口不足、零振幅或含非法值时回退 50。
func rawStochastic(bars []market.Bar, idx, period int) float64 {
	if idx < period-1 {
		return 50
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for j := idx - period + 1; j <= idx; j++ {
		b := bars[j]
		if math.IsNaN(b.High) || math.IsNaN(b.Low) || math.IsNaN(b.Close) {
			return 50
		}
		if b.Low < lo {
			lo = b.Low
		}
		if b.High > hi {
			hi = b.High
		}
	}
	denom := hi - lo
	if denom == 0 {
		return 50
	}
	v := (bars[idx].Close - lo) / denom * 100
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
