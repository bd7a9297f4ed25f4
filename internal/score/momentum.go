package score

import (
	"fmt"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
)

// Momentum 短线动能评分（Mode A，100 分制），偏向追强势波段：
//
//	趋势  Trend   40 分  站上三条均线各 10 分，另按扣抵压力条数给 0~10 分
//	动能  Momentum 30 分  RSI 分段 + MACD 柱状图
//	量能  Volume  30 分  今日量对 5 日均量的倍数
//
// 历史不足 65 根返回 nil。
func Momentum(bars []market.Bar) *Result {
	if len(bars) < MinBars {
		return nil
	}
	snap := indicator.TakeSnapshot(bars)

	details := make([]Detail, 0, 7)

	// 趋势 Trend（40 分）
	trend := 0
	for _, c := range []struct {
		period int
		metric string
		ma     float64
	}{
		{10, "站上 10MA", snap.MA10},
		{20, "站上 20MA", snap.MA20},
		{60, "站上 60MA", snap.MA60},
	} {
		pts, verdict := 0, "收盤在均線之下"
		observed := verdictNoData
		if indicator.Valid(c.ma) {
			cmp := "≤"
			if snap.Close > c.ma {
				pts, verdict, cmp = 10, "收盤站上均線", ">"
			}
			observed = fmt.Sprintf("收 %s %s %dMA %s", fnum(snap.Close), cmp, c.period, fnum(c.ma))
		} else {
			verdict = verdictNoData
		}
		trend += pts
		details = append(details, Detail{
			Dimension: "趨勢 Trend", Metric: c.metric,
			Observed: observed, Verdict: verdict, Points: pts, Max: 10,
		})
	}

	// 扣抵压力：即将移出窗口的收盘价高于现价的均线条数越少，
	// 均线后续上弯的力道越强。
	pressPts, pressVerdict := 0, verdictNoData
	observed := verdictNoData
	if snap.PressureCount >= 0 {
		switch snap.PressureCount {
		case 0:
			pressPts, pressVerdict = 10, "三線扣抵皆助漲"
		case 1:
			pressPts, pressVerdict = 5, "一條均線扣抵壓力"
		default:
			pressPts, pressVerdict = 0, "兩條以上均線扣抵壓力"
		}
		observed = fmt.Sprintf("%d / 3 條均線有扣抵壓力", snap.PressureCount)
	}
	trend += pressPts
	details = append(details, Detail{
		Dimension: "趨勢 Trend", Metric: "扣抵壓力 (10/20/60MA)",
		Observed: observed, Verdict: pressVerdict, Points: pressPts, Max: 10,
	})

	// 动能 Momentum（30 分）
	momentum := 0
	rsiPts, rsiVerdict := 0, verdictNoData
	if indicator.Valid(snap.RSI14) {
		switch rsi := snap.RSI14; {
		case rsi >= 50 && rsi <= 70:
			rsiPts, rsiVerdict = 15, "強勢多頭（50~70）"
		case rsi > 70:
			rsiPts, rsiVerdict = 10, "超買警戒（> 70）"
		case rsi >= 40:
			rsiPts, rsiVerdict = 5, "動能偏弱（40~50）"
		default:
			rsiPts, rsiVerdict = 0, "動能不足（< 40）"
		}
	}
	momentum += rsiPts
	details = append(details, Detail{
		Dimension: "動能 Momentum", Metric: "RSI (14)",
		Observed: fnum(snap.RSI14), Verdict: rsiVerdict, Points: rsiPts, Max: 15,
	})

	histPts, histVerdict := 0, verdictNoData
	if indicator.Valid(snap.MACDHist) {
		if snap.MACDHist > 0 {
			histPts, histVerdict = 15, "柱狀 > 0（多頭動能）"
		} else {
			histVerdict = "柱狀 ≤ 0（動能減弱）"
		}
	}
	momentum += histPts
	details = append(details, Detail{
		Dimension: "動能 Momentum", Metric: "MACD 柱狀圖 (Hist)",
		Observed: fnum(snap.MACDHist), Verdict: histVerdict, Points: histPts, Max: 15,
	})

	// 量能 Volume（30 分）
	volume := 0
	volPts, volVerdict := 0, verdictNoData
	volObserved := verdictNoData
	if indicator.Valid(snap.Volume) && indicator.Valid(snap.Vol5Avg) && snap.Vol5Avg > 0 {
		ratio := snap.Volume / snap.Vol5Avg
		switch {
		case ratio >= 1.5:
			volPts, volVerdict = 30, "爆量表態（≥ 1.5 倍）"
		case ratio >= 1.0:
			volPts, volVerdict = 20, "量能溫和放大（≥ 1 倍）"
		default:
			volVerdict = "量能萎縮（< 1 倍）"
		}
		volObserved = fmt.Sprintf("今日 %s 張 / 均 %s 張 = %.2f 倍", fvol(snap.Volume), fvol(snap.Vol5Avg), ratio)
	}
	volume += volPts
	details = append(details, Detail{
		Dimension: "量能 Volume", Metric: "量比 (今日量 / 5 日均量)",
		Observed: volObserved, Verdict: volVerdict, Points: volPts, Max: 30,
	})

	return &Result{
		Model: ModelMomentum,
		Total: trend + momentum + volume,
		Dimensions: map[string]Dimension{
			"trend":    {Score: trend, Max: 40, Label: "趨勢 Trend"},
			"momentum": {Score: momentum, Max: 30, Label: "動能 Momentum"},
			"volume":   {Score: volume, Max: 30, Label: "量能 Volume"},
		},
		Details: details,
	}
}
