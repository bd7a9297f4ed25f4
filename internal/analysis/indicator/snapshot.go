package indicator

import (
	"math"

	"github.com/markcheno/go-talib"

	"twquant/internal/market"
)

// Snapshot 汇总评分模型所需的末根 Bar 指标读数。
// RSI/MACD/慢速随机指标由 go-talib 计算（与图表库同源的外部指标契约）；
// 均线与扣抵来自本包。无法计算的字段为 NaN，调用方用 Valid 判断。
type Snapshot struct {
	Close  float64
	Volume float64

	MA10  float64
	MA20  float64
	MA60  float64
	MA240 float64

	RSI14 float64

	StochK float64 // 9,3,3 慢速随机指标
	StochD float64

	MACDDif  float64 // DIF（快线）
	MACDDea  float64 // DEA / 信号线
	MACDHist float64 // 柱状图 = DIF − DEA

	Vol5Avg float64 // 近 5 日均量（不含当日）

	// 扣抵压力笔数：10/20/60MA 中「即将移出的收盘价高于现价」的条数。
	// -1 表示历史不足无法判断。
	PressureCount int
}

// Valid 判断读数是否可用。
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// minStochBars 9,3,3 慢速随机指标的回看长度（9+3-1+3-1）。
const minStochBars = 13

// TakeSnapshot 在序列副本上计算指标快照；序列长度不设下限，
// 算不出来的字段保持 NaN。
func TakeSnapshot(bars []market.Bar) Snapshot {
	snap := Snapshot{
		Close: math.NaN(), Volume: math.NaN(),
		MA10: math.NaN(), MA20: math.NaN(), MA60: math.NaN(), MA240: math.NaN(),
		RSI14: math.NaN(), StochK: math.NaN(), StochD: math.NaN(),
		MACDDif: math.NaN(), MACDDea: math.NaN(), MACDHist: math.NaN(),
		Vol5Avg: math.NaN(), PressureCount: -1,
	}
	if len(bars) == 0 {
		return snap
	}
	closes := market.Closes(bars)
	highs := market.Highs(bars)
	lows := market.Lows(bars)
	volumes := market.Volumes(bars)
	last := len(bars) - 1

	snap.Close = closes[last]
	snap.Volume = volumes[last]

	if v, ok := SMALast(closes, 10); ok {
		snap.MA10 = v
	}
	if v, ok := SMALast(closes, 20); ok {
		snap.MA20 = v
	}
	if v, ok := SMALast(closes, 60); ok {
		snap.MA60 = v
	}
	if v, ok := SMALast(closes, 240); ok {
		snap.MA240 = v
	}

	// go-talib 在回看期内填 0 而非 NaN，此处按长度先行把关。
	if len(closes) > 14 {
		rsi := talib.Rsi(closes, 14)
		snap.RSI14 = rsi[last]
	}
	if len(closes) >= minStochBars {
		k, d := talib.Stoch(highs, lows, closes, 9, 3, talib.SMA, 3, talib.SMA)
		snap.StochK = k[last]
		snap.StochD = d[last]
	}
	if len(closes) >= 35 {
		dif, dea, hist := talib.Macd(closes, 12, 26, 9)
		snap.MACDDif = dif[last]
		snap.MACDDea = dea[last]
		snap.MACDHist = hist[last]
	}

	if len(volumes) >= 6 {
		sum := 0.0
		for _, v := range volumes[len(volumes)-6 : len(volumes)-1] {
			sum += v
		}
		snap.Vol5Avg = sum / 5
	}

	if len(closes) >= 60 {
		count := 0
		for _, p := range []int{10, 20, 60} {
			if pressure, ok := DeductionPressure(closes, p); ok && pressure {
				count++
			}
		}
		snap.PressureCount = count
	}
	return snap
}
