package screener

import "twquant/internal/market"

// VolumeSurgeParams 爆量长红起涨的可调参数。
type VolumeSurgeParams struct {
	// VolumeRatio 爆量倍数：今日量 ≥ 近 5 日均量 × 此倍数。
	VolumeRatio float64
	// BodyPct 红 K 实体最小涨幅，(收盘-开盘)/开盘 的下限。
	BodyPct float64
}

func (p VolumeSurgeParams) withDefaults() VolumeSurgeParams {
	out := p
	if out.VolumeRatio <= 0 {
		out.VolumeRatio = 2.0
	}
	if out.BodyPct <= 0 {
		out.BodyPct = 0.03
	}
	return out
}

// VolumeSurge 构造「爆量长红起涨」策略：
// 今日量显著放大、红 K 实体够长，且收盘为近 5 日（含今日）最高收盘，
// 确认是真突破新高而非区间内的大红 K。
func VolumeSurge(p VolumeSurgeParams) Predicate {
	p = p.withDefaults()
	return func(bars []market.Bar) *Match {
		// 前 5 日均量 + 今日，至少 6 笔。
		if len(bars) < 6 {
			return nil
		}
		today := bars[len(bars)-1]
		past5 := bars[len(bars)-6 : len(bars)-1]

		volSum := 0.0
		for _, b := range past5 {
			volSum += float64(b.Volume)
		}
		avg5 := volSum / 5
		if avg5 <= 0 {
			return nil
		}

		if float64(today.Volume) < avg5*p.VolumeRatio {
			return nil
		}

		bodyRatio := 0.0
		if today.Open > 0 {
			bodyRatio = (today.Close - today.Open) / today.Open
		}
		if bodyRatio <= p.BodyPct {
			return nil
		}

		// 收高：收盘须为近 5 日（含今日）最高收盘。
		for _, b := range bars[len(bars)-5:] {
			if today.Close < b.Close {
				return nil
			}
		}

		return &Match{
			Date: today.Date,
			Fields: map[string]any{
				"close":        round2(today.Close),
				"body_pct":     round2(bodyRatio * 100),
				"volume":       today.Volume,
				"vol5_avg":     int64(avg5),
				"volume_ratio": round2(float64(today.Volume) / avg5),
			},
		}
	}
}
