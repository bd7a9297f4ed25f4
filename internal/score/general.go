package score

import (
	"fmt"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
)

// General 通用综合买进评分（100 分制）：
//
//	趋势  Trend       30 分  10MA / 20MA / 60MA 位置
//	动能  Momentum    30 分  RSI(14) + KD(9,3,3)
//	震荡  Oscillator  20 分  MACD(12,26,9) 柱状图 + 快慢线
//	量能  Volume      20 分  今日量 vs 5 日均量
//
// 历史不足 65 根返回 nil。
func General(bars []market.Bar) *Result {
	if len(bars) < MinBars {
		return nil
	}
	snap := indicator.TakeSnapshot(bars)

	details := make([]Detail, 0, 8)

	// 趋势 Trend（30 分）
	trend := 0
	for _, c := range []struct {
		period int
		metric string
		ma     float64
	}{
		{10, "短線趨勢 (10MA)", snap.MA10},
		{20, "中線趨勢 (20MA)", snap.MA20},
		{60, "長線趨勢 (60MA)", snap.MA60},
	} {
		pts, verdict := 0, "空頭"
		observed := verdictNoData
		if indicator.Valid(c.ma) {
			cmp := "≤"
			if snap.Close > c.ma {
				pts, verdict, cmp = 10, "多頭", ">"
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

	// 动能 Momentum（30 分）
	momentum := 0
	rsiPts, rsiVerdict := 0, verdictNoData
	if indicator.Valid(snap.RSI14) {
		switch rsi := snap.RSI14; {
		case rsi >= 40 && rsi <= 70:
			rsiPts, rsiVerdict = 15, "健康多頭（40~70）"
		case rsi < 30:
			rsiPts, rsiVerdict = 15, "超賣反彈潛力（< 30）"
		case rsi > 80:
			rsiPts, rsiVerdict = 0, "超買過熱（> 80）"
		default:
			rsiPts, rsiVerdict = 5, "中性偏弱（30~40 或 70~80）"
		}
	}
	momentum += rsiPts
	details = append(details, Detail{
		Dimension: "動能 Momentum", Metric: "RSI (14)",
		Observed: fnum(snap.RSI14), Verdict: rsiVerdict, Points: rsiPts, Max: 15,
	})

	kdPts, kdVerdict := 0, verdictNoData
	if indicator.Valid(snap.StochK) && indicator.Valid(snap.StochD) {
		if snap.StochK > snap.StochD {
			kdPts, kdVerdict = 15, "K > D（黃金交叉）"
		} else {
			kdVerdict = "K ≤ D（死亡交叉）"
		}
	}
	momentum += kdPts
	details = append(details, Detail{
		Dimension: "動能 Momentum", Metric: "KD (9,3,3)",
		Observed: fmt.Sprintf("K %s  D %s", fnum(snap.StochK), fnum(snap.StochD)),
		Verdict:  kdVerdict, Points: kdPts, Max: 15,
	})

	// 震荡 Oscillator（20 分）
	oscillator := 0
	histPts, histVerdict := 0, verdictNoData
	if indicator.Valid(snap.MACDHist) {
		if snap.MACDHist > 0 {
			histPts, histVerdict = 10, "柱狀 > 0（多頭動能）"
		} else {
			histVerdict = "柱狀 ≤ 0（動能減弱）"
		}
	}
	oscillator += histPts
	details = append(details, Detail{
		Dimension: "震盪 Oscillator", Metric: "MACD 柱狀圖 (Hist)",
		Observed: fnum(snap.MACDHist), Verdict: histVerdict, Points: histPts, Max: 10,
	})

	crossPts, crossVerdict := 0, verdictNoData
	if indicator.Valid(snap.MACDDif) && indicator.Valid(snap.MACDDea) {
		if snap.MACDDif > snap.MACDDea {
			crossPts, crossVerdict = 10, "DIF > DEA（多頭）"
		} else {
			crossVerdict = "DIF ≤ DEA（空頭）"
		}
	}
	oscillator += crossPts
	details = append(details, Detail{
		Dimension: "震盪 Oscillator", Metric: "MACD 快慢線 (DIF/DEA)",
		Observed: fmt.Sprintf("DIF %s  DEA %s", fnum(snap.MACDDif), fnum(snap.MACDDea)),
		Verdict:  crossVerdict, Points: crossPts, Max: 10,
	})

	// 量能 Volume（20 分）
	volume := 0
	volPts, volVerdict := 0, verdictNoData
	if indicator.Valid(snap.Volume) && indicator.Valid(snap.Vol5Avg) && snap.Vol5Avg > 0 {
		if snap.Volume > snap.Vol5Avg {
			volPts, volVerdict = 20, "量能放大"
		} else {
			volVerdict = "量能萎縮"
		}
	}
	volume += volPts
	details = append(details, Detail{
		Dimension: "量能 Volume", Metric: "成交量 vs 5 日均量",
		Observed: fmt.Sprintf("今日 %s 張  均 %s 張", fvol(snap.Volume), fvol(snap.Vol5Avg)),
		Verdict:  volVerdict, Points: volPts, Max: 20,
	})

	return &Result{
		Model: ModelGeneral,
		Total: trend + momentum + oscillator + volume,
		Dimensions: map[string]Dimension{
			"trend":      {Score: trend, Max: 30, Label: "趨勢 Trend"},
			"momentum":   {Score: momentum, Max: 30, Label: "動能 Momentum"},
			"oscillator": {Score: oscillator, Max: 20, Label: "震盪 Oscillator"},
			"volume":     {Score: volume, Max: 20, Label: "量能 Volume"},
		},
		Details: details,
	}
}
