package screener

import (
	"math"

	"twquant/internal/market"
)

// BreakoutParams 盘整突破第一根的可调参数。
// 收紧任何一项（缩小振幅、放大量比、拉长盘整天数）只会减少命中。
type BreakoutParams struct {
	// Days 盘整区间的交易日天数 N。
	Days int
	// AmplitudeThreshold 箱体最大允许振幅，(箱顶-箱底)/箱底 的上限。
	AmplitudeThreshold float64
	// VolumeRatio 带量条件：今日量 ≥ 近 5 日均量 × 此倍数。
	VolumeRatio float64
	// SkipVolumeCheck 为 true 时仅判断价格突破（条件 C 停用）。
	SkipVolumeCheck bool
}

func (p BreakoutParams) withDefaults() BreakoutParams {
	out := p
	// 至少要有 1 天箱体加 1 天突破日。
	if out.Days < 2 {
		out.Days = 21
	}
	if out.AmplitudeThreshold <= 0 {
		out.AmplitudeThreshold = 0.10
	}
	if out.VolumeRatio <= 0 {
		out.VolumeRatio = 1.5
	}
	return out
}

// Breakout 构造「盘整突破第一根」策略：
// 前 N-1 天构成箱体且振幅受限，今日收盘首次站上箱顶，
// 可选地要求带量突破。收盘恰好等于箱顶不算突破。
func Breakout(p BreakoutParams) Predicate {
	p = p.withDefaults()
	return func(bars []market.Bar) *Match {
		if len(bars) < p.Days+1 {
			return nil
		}
		recent := bars[len(bars)-p.Days:]
		box := recent[:len(recent)-1]
		today := recent[len(recent)-1]
		yesterday := recent[len(recent)-2]

		boxHigh := math.Inf(-1)
		boxLow := math.Inf(1)
		for _, b := range box {
			if math.IsNaN(b.High) || math.IsNaN(b.Low) {
				return nil
			}
			if b.High > boxHigh {
				boxHigh = b.High
			}
			if b.Low < boxLow {
				boxLow = b.Low
			}
		}
		if boxLow <= 0 {
			return nil
		}
		amplitude := (boxHigh - boxLow) / boxLow
		if amplitude >= p.AmplitudeThreshold {
			return nil
		}

		// 近 5 日均量取箱体末 5 天（即今日之前的 5 个交易日），
		// 箱体不足 5 天时退化为全箱体均量。
		vol5 := box
		if len(vol5) > 5 {
			vol5 = vol5[len(vol5)-5:]
		}
		volSum := 0.0
		for _, b := range vol5 {
			volSum += float64(b.Volume)
		}
		avg5 := volSum / float64(len(vol5))

		// 条件 A：今日收盘突破箱顶（严格大于）。
		if today.Close <= boxHigh {
			return nil
		}
		// 条件 B：昨日收盘未突破，确保今日是第一根。
		if yesterday.Close > boxHigh {
			return nil
		}
		// 条件 C（可选）：带量突破。
		if !p.SkipVolumeCheck && float64(today.Volume) < avg5*p.VolumeRatio {
			return nil
		}

		fields := map[string]any{
			"close":         round2(today.Close),
			"box_high":      round2(boxHigh),
			"box_low":       round2(boxLow),
			"amplitude_pct": round2(amplitude * 100),
			"volume":        today.Volume,
			"vol5_avg":      int64(avg5),
		}
		if avg5 > 0 {
			fields["volume_ratio"] = round2(float64(today.Volume) / avg5)
		}
		return &Match{Date: today.Date, Fields: fields}
	}
}
