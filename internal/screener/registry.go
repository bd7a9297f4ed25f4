package screener

import "twquant/internal/analysis/indicator"

// Entry 描述一个可供扫描的选股策略。
type Entry struct {
	// ID 稳定的机器识别码，路由与 CLI 均以此指定策略。
	ID string
	// Name 繁体中文显示名。
	Name string
	// Rule 策略条件的文字说明。
	Rule string
	// Hint 给使用者的操作提示。
	Hint string
	// FetchWindow 建议抓取的最少 K 线根数，由策略的指标需求推导。
	FetchWindow int
	// New 以参数表构造判定函数；缺省键采用策略默认值。
	New func(params map[string]float64) Predicate
}

var entries = []Entry{
	{
		ID:   "breakout",
		Name: "旱地拔蔥",
		Rule: "狹幅盤整後放量突破箱體上緣，昨日收盤仍在箱體內",
		Hint: "突破日追價風險高，留意回測箱頂的買點",
		// 21 日箱体加突破日共 22 根滚动窗口。
		FetchWindow: indicator.RequiredWarmup(
			indicator.Requirement{Kind: indicator.KindMA, Period: 22},
		),
		New: func(params map[string]float64) Predicate {
			p := BreakoutParams{}
			if v, ok := params["days"]; ok {
				p.Days = int(v)
			}
			if v, ok := params["amplitude"]; ok {
				p.AmplitudeThreshold = v
			}
			if v, ok := params["volume_ratio"]; ok {
				p.VolumeRatio = v
			}
			if v, ok := params["skip_volume"]; ok && v != 0 {
				p.SkipVolumeCheck = true
			}
			return Breakout(p)
		},
	},
	{
		ID:   "ma_alignment",
		Name: "均線多頭排列",
		Rule: "5MA > 10MA > 20MA，收盤站上 5MA 且月線上揚",
		Hint: "趨勢行進中的順勢標的，跌破 10MA 視為轉弱",
		// 20MA 加前一日比较共 21 根。
		FetchWindow: indicator.RequiredWarmup(
			indicator.Requirement{Kind: indicator.KindMA, Period: 21},
		),
		New: func(params map[string]float64) Predicate {
			return MAAlignment()
		},
	},
	{
		ID:   "volume_surge",
		Name: "爆量長紅",
		Rule: "成交量達 5 日均量兩倍以上，收長紅且創 5 日收盤新高",
		Hint: "量價齊揚常為波段起點，隔日未續強需提防出貨",
		// 5 日均量加当日共 6 根。
		FetchWindow: indicator.RequiredWarmup(
			indicator.Requirement{Kind: indicator.KindMA, Period: 6},
		),
		New: func(params map[string]float64) Predicate {
			p := VolumeSurgeParams{}
			if v, ok := params["volume_ratio"]; ok {
				p.VolumeRatio = v
			}
			if v, ok := params["body_pct"]; ok {
				p.BodyPct = v
			}
			return VolumeSurge(p)
		},
	},
	{
		ID:   "oversold_reversal",
		Name: "跌深反彈",
		Rule: "收盤低於月線一成以上，當日收紅且帶長下影線",
		Hint: "搶反彈以短線為宜，跌破前低即停損",
		// 月线乖离需要 20MA 加当日共 21 根。
		FetchWindow: indicator.RequiredWarmup(
			indicator.Requirement{Kind: indicator.KindMA, Period: 21},
		),
		New: func(params map[string]float64) Predicate {
			p := OversoldParams{}
			if v, ok := params["bias"]; ok {
				p.BiasThreshold = v
			}
			if v, ok := params["shadow_ratio"]; ok {
				p.ShadowRatio = v
			}
			return Oversold(p)
		},
	},
}

// All 返回全部注册策略，顺序固定。
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup 以 ID 查找策略，未注册返回 false。
func Lookup(id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
