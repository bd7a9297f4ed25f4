package screener

import (
	"twquant/internal/market"

	"twquant/internal/analysis/indicator"
)

// MAAlignment 构造「均线多头排列」策略。固定使用 5/10/20MA：
// 5MA > 10MA > 20MA，收盘站上 5MA，且 20MA 趋势向上
// （今日 20MA > 昨日 20MA）。任何一条均线算不出来即不命中。
func MAAlignment() Predicate {
	return func(bars []market.Bar) *Match {
		// 20MA 之外还要比较前后两日，至少 21 笔。
		if len(bars) < 21 {
			return nil
		}
		closes := market.Closes(bars)
		last := len(closes) - 1

		ma5, ok5 := indicator.SMALast(closes, 5)
		ma10, ok10 := indicator.SMALast(closes, 10)
		ma20, ok20 := indicator.SMALast(closes, 20)
		ma20Prev, okPrev := indicator.SMALast(closes[:last], 20)
		if !ok5 || !ok10 || !ok20 || !okPrev {
			return nil
		}
		close := closes[last]

		if !(ma5 > ma10 && ma10 > ma20) {
			return nil
		}
		if close <= ma5 {
			return nil
		}
		if ma20 <= ma20Prev {
			return nil
		}

		return &Match{
			Date: bars[last].Date,
			Fields: map[string]any{
				"close":            round2(close),
				"ma5":              round2(ma5),
				"ma10":             round2(ma10),
				"ma20":             round2(ma20),
				"close_vs_ma5_pct": round2((close - ma5) / ma5 * 100),
				"volume":           bars[last].Volume,
			},
		}
	}
}
