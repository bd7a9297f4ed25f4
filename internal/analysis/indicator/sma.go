package indicator

import (
	"math"

	"twquant/internal/market"
)

// SMA 计算 period 日简单移动平均。前 period-1 笔为 NaN（历史不足即未定义，
// 不编造数值）；输入中任何 NaN 会让覆盖到它的窗口输出 NaN。
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			v := values[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				valid = false
				break
			}
			sum += v
		}
		if valid {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// SMALast 返回序列末端的 period 日均值；历史不足时 ok 为 false。
func SMALast(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		sum += v
	}
	return sum / float64(period), true
}

// AttachMA 对多条均线各自独立计算，返回 period → 序列 的映射。
// 单条均线历史不足时该条输出整列 NaN，不影响其他均线。
func AttachMA(bars []market.Bar, periods []int) map[int][]float64 {
	closes := market.Closes(bars)
	out := make(map[int][]float64, len(periods))
	for _, p := range periods {
		out[p] = SMA(closes, p)
	}
	return out
}
