package indicator

import (
	"math"

	"twquant/internal/market"
)

// Trend 扣抵趋势预判（台湾习惯：涨红跌绿）。
type Trend string

const (
	TrendBullish       Trend = "bullish"       // 易涨 / 支撑强
	TrendBearish       Trend = "bearish"       // 易跌 / 压力大
	TrendConsolidating Trend = "consolidating" // 盘整转折点
)

// consolidationBandPct 乖离绝对值在 ±1% 以内视为盘整转折。
const consolidationBandPct = 1.0

// DeductionRecord 单条均线的扣抵值分析结果。
// 扣抵价是下一次均线更新时将被移出窗口的那笔收盘价，它与现价的关系
// 预告的是均线自身下一步的方向，而不是股价的方向。
type DeductionRecord struct {
	Period         int     `json:"period"`
	Name           string  `json:"name"`
	Subtitle       string  `json:"subtitle"`
	MAValue        float64 `json:"ma_value"`
	CurrentClose   float64 `json:"current_close"`
	DeductionPrice float64 `json:"deduction_price"`
	DiffPct        float64 `json:"diff_pct"`
	Trend          Trend   `json:"trend"`
}

type maConfig struct {
	period   int
	name     string
	subtitle string
}

var deductionConfigs = []maConfig{
	{5, "5MA", "周線"},
	{10, "10MA", "雙週線"},
	{20, "20MA", "月線"},
	{60, "60MA", "季線"},
}

// minDeductionBars 至少 45 笔才开始输出（确保 5/10/20MA 齐全且有参考价值）；
// 45~59 笔时跳过季线。
const minDeductionBars = 45

// DeductionRecords 计算 5/10/20/60MA 的扣抵值与趋势预判。
// 历史不足 minDeductionBars 笔时返回 nil；单条均线不足 N 笔时仅跳过该条。
func DeductionRecords(bars []market.Bar) []DeductionRecord {
	if len(bars) < minDeductionBars {
		return nil
	}
	closes := market.Closes(bars)
	current := closes[len(closes)-1]

	out := make([]DeductionRecord, 0, len(deductionConfigs))
	for _, cfg := range deductionConfigs {
		if len(closes) < cfg.period {
			continue
		}
		maVal, ok := SMALast(closes, cfg.period)
		if !ok {
			continue
		}
		dedPrice := closes[len(closes)-cfg.period]
		if dedPrice == 0 || math.IsNaN(dedPrice) {
			continue
		}
		diffPct := (current - dedPrice) / dedPrice * 100

		trend := TrendConsolidating
		switch {
		case math.Abs(diffPct) <= consolidationBandPct:
			trend = TrendConsolidating
		case diffPct > 0:
			trend = TrendBullish
		default:
			trend = TrendBearish
		}

		out = append(out, DeductionRecord{
			Period:         cfg.period,
			Name:           cfg.name,
			Subtitle:       cfg.subtitle,
			MAValue:        round2(maVal),
			CurrentClose:   round2(current),
			DeductionPrice: round2(dedPrice),
			DiffPct:        round2(diffPct),
			Trend:          trend,
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DeductionSeries 返回整条历史扣抵价序列，供图表叠加使用。
// 第 i 笔的扣抵价 = closes[i-period+1]，即该日窗口内最旧的收盘价；
// 前 period-1 笔为 NaN。
func DeductionSeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		if period <= 0 || i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = closes[i-period+1]
	}
	return out
}

// DeductionPressure 判断 period 日均线是否存在扣抵压力：
// 即将被移出的收盘价高于现价，意味着均线下一步倾向走低。
// 历史不足时返回 (false, false)。
func DeductionPressure(closes []float64, period int) (pressure, ok bool) {
	if period <= 0 || len(closes) < period {
		return false, false
	}
	current := closes[len(closes)-1]
	dedPrice := closes[len(closes)-period]
	if math.IsNaN(current) || math.IsNaN(dedPrice) {
		return false, false
	}
	return dedPrice > current, true
}
