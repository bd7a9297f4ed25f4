package screener

import (
	"math"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
)

// OversoldParams 乖离过大跌深反弹的可调参数。
type OversoldParams struct {
	// BiasThreshold 负乖离门槛（例如 -0.10 表示收盘低于月线 10% 以上才触发）。
	BiasThreshold float64
	// ShadowRatio 下影线最小比例：下影线 ≥ 红 K 实体 × 此比例。
	ShadowRatio float64
}

func (p OversoldParams) withDefaults() OversoldParams {
	out := p
	if out.BiasThreshold >= 0 {
		out.BiasThreshold = -0.10
	}
	if out.ShadowRatio <= 0 {
		out.ShadowRatio = 0.30
	}
	return out
}

// Oversold 构造「乖离过大跌深反弹」策略：
// 收盘对 20MA 的负乖离超过门槛，当日收红（台湾惯例收盘 > 开盘为红 K），
// 且带有足够长的下影线，确认盘中买盘收复低点。
func Oversold(p OversoldParams) Predicate {
	p = p.withDefaults()
	return func(bars []market.Bar) *Match {
		if len(bars) < 21 {
			return nil
		}
		closes := market.Closes(bars)
		today := bars[len(bars)-1]

		ma20, ok := indicator.SMALast(closes, 20)
		if !ok || ma20 == 0 {
			return nil
		}

		bias := (today.Close - ma20) / ma20
		if bias >= p.BiasThreshold {
			return nil
		}

		// 红 K：收盘 > 开盘。
		if today.Close <= today.Open {
			return nil
		}

		body := today.Close - today.Open
		lowerShadow := math.Min(today.Close, today.Open) - today.Low
		if body <= 0 || lowerShadow < body*p.ShadowRatio {
			return nil
		}

		return &Match{
			Date: today.Date,
			Fields: map[string]any{
				"close":             round2(today.Close),
				"ma20":              round2(ma20),
				"bias_pct":          round2(bias * 100),
				"shadow_body_ratio": round2(lowerShadow / body),
				"volume":            today.Volume,
			},
		}
	}
}
