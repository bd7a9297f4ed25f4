package score

import (
	"fmt"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
)

// Accumulation 长线存股评分（Mode B，100 分制），左侧布局取向，
// 价格越便宜分数越高：
//
//	价位  PriceLevel 40 分  收盘对 60MA / 240MA 的相对位置
//	超跌  Oversold   40 分  RSI 深度超卖 + 对季线的负乖离
//	长线  LTBaseline 20 分  KD 低档与低档黄金交叉
//
// 240MA 仅在历史达 240 根时参与判断；历史不足 65 根返回 nil。
func Accumulation(bars []market.Bar) *Result {
	if len(bars) < MinBars {
		return nil
	}
	snap := indicator.TakeSnapshot(bars)
	hasMA240 := len(bars) >= 240 && indicator.Valid(snap.MA240)

	details := make([]Detail, 0, 4)

	// 价位 PriceLevel（40 分）
	level := 0
	levelPts, levelVerdict := 0, verdictNoData
	levelObserved := verdictNoData
	if indicator.Valid(snap.MA60) {
		switch {
		case snap.Close < snap.MA60:
			levelPts, levelVerdict = 40, "跌破季線（深度折價區）"
		case hasMA240 && snap.Close < snap.MA240:
			levelPts, levelVerdict = 20, "季線之上、年線之下"
		default:
			levelPts, levelVerdict = 10, "價位偏高"
		}
		if hasMA240 {
			levelObserved = fmt.Sprintf("收 %s  60MA %s  240MA %s", fnum(snap.Close), fnum(snap.MA60), fnum(snap.MA240))
		} else {
			levelObserved = fmt.Sprintf("收 %s  60MA %s  240MA 不足", fnum(snap.Close), fnum(snap.MA60))
		}
	}
	level += levelPts
	details = append(details, Detail{
		Dimension: "價位 PriceLevel", Metric: "收盤 vs 60MA / 240MA",
		Observed: levelObserved, Verdict: levelVerdict, Points: levelPts, Max: 40,
	})

	// 超跌 Oversold（40 分）
	oversold := 0
	rsiPts, rsiVerdict := 0, verdictNoData
	if indicator.Valid(snap.RSI14) {
		if snap.RSI14 < 30 {
			rsiPts, rsiVerdict = 20, "深度超賣（< 30）"
		} else {
			rsiVerdict = "未達超賣（≥ 30）"
		}
	}
	oversold += rsiPts
	details = append(details, Detail{
		Dimension: "超跌 Oversold", Metric: "RSI (14)",
		Observed: fnum(snap.RSI14), Verdict: rsiVerdict, Points: rsiPts, Max: 20,
	})

	biasPts, biasVerdict := 0, verdictNoData
	biasObserved := verdictNoData
	if indicator.Valid(snap.MA60) && snap.MA60 != 0 {
		bias := (snap.Close - snap.MA60) / snap.MA60
		if bias < -0.10 {
			biasPts, biasVerdict = 20, "負乖離過大（< -10%）"
		} else {
			biasVerdict = "乖離未達門檻"
		}
		biasObserved = fmt.Sprintf("%.2f%%", bias*100)
	}
	oversold += biasPts
	details = append(details, Detail{
		Dimension: "超跌 Oversold", Metric: "60MA 乖離率",
		Observed: biasObserved, Verdict: biasVerdict, Points: biasPts, Max: 20,
	})

	// 长线 LTBaseline（20 分）
	baseline := 0
	kdPts, kdVerdict := 0, verdictNoData
	kdObserved := verdictNoData
	if indicator.Valid(snap.StochK) && indicator.Valid(snap.StochD) {
		k, d := snap.StochK, snap.StochD
		switch {
		case k < 20 && d < 20 && k > d:
			kdPts, kdVerdict = 20, "低檔黃金交叉（K,D < 20 且 K > D）"
		case k < 20 && d < 20:
			kdPts, kdVerdict = 10, "低檔鈍化（K,D < 20）"
		case k < 30 || d < 30:
			kdPts, kdVerdict = 5, "接近低檔（K 或 D < 30）"
		default:
			kdVerdict = "未達低檔區"
		}
		kdObserved = fmt.Sprintf("K %s  D %s", fnum(k), fnum(d))
	}
	baseline += kdPts
	details = append(details, Detail{
		Dimension: "長線 LTBaseline", Metric: "KD (9,3,3) 低檔結構",
		Observed: kdObserved, Verdict: kdVerdict, Points: kdPts, Max: 20,
	})

	return &Result{
		Model: ModelAccumulation,
		Total: level + oversold + baseline,
		Dimensions: map[string]Dimension{
			"price_level": {Score: level, Max: 40, Label: "價位 PriceLevel"},
			"oversold":    {Score: oversold, Max: 40, Label: "超跌 Oversold"},
			"lt_baseline": {Score: baseline, Max: 20, Label: "長線 LTBaseline"},
		},
		Details: details,
	}
}

// Compute 按模型识别码分派，未知识别码返回 false。
func Compute(model string, bars []market.Bar) (*Result, bool) {
	switch model {
	case ModelGeneral, "":
		return General(bars), true
	case ModelMomentum:
		return Momentum(bars), true
	case ModelAccumulation:
		return Accumulation(bars), true
	}
	return nil, false
}
