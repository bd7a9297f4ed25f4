package screener

import (
	"testing"
	"time"

	"twquant/internal/market"
)

// boxBar 构造单根 K 线的便捷入口。
func boxBar(day int, open, high, low, close float64, volume int64) market.Bar {
	base := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return market.Bar{
		Date:   base.AddDate(0, 0, day),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

// breakoutFixture 25 根：前 24 根在 100~108 横盘（振幅 8%），
// 末根收 112 放量两倍。
func breakoutFixture() []market.Bar {
	bars := make([]market.Bar, 0, 25)
	for i := 0; i < 24; i++ {
		bars = append(bars, boxBar(i, 103, 108, 100, 107, 1000))
	}
	bars = append(bars, boxBar(24, 107, 113, 106, 112, 2000))
	return bars
}

func TestBreakoutMatch(t *testing.T) {
	m := Breakout(BreakoutParams{})(breakoutFixture())
	if m == nil {
		t.Fatalf("放量突破箱顶应命中")
	}
	if m.Fields["box_high"] != 108.0 {
		t.Fatalf("箱顶应为 108, 实际=%v", m.Fields["box_high"])
	}
	if m.Fields["box_low"] != 100.0 {
		t.Fatalf("箱底应为 100, 实际=%v", m.Fields["box_low"])
	}
	if m.Fields["amplitude_pct"] != 8.0 {
		t.Fatalf("振幅应为 8%%, 实际=%v", m.Fields["amplitude_pct"])
	}
	if m.Fields["volume_ratio"] != 2.0 {
		t.Fatalf("量比应为 2, 实际=%v", m.Fields["volume_ratio"])
	}
}

func TestBreakoutFirstBarOnly(t *testing.T) {
	// 昨日收盘已在箱顶之上：不是第一根突破，不命中。
	bars := breakoutFixture()
	bars[23].Close = 109
	if m := Breakout(BreakoutParams{})(bars); m != nil {
		t.Fatalf("昨日已突破不应再命中, 实际=%v", m.Fields)
	}
}

func TestBreakoutCloseAtBoxHighIsNoMatch(t *testing.T) {
	bars := breakoutFixture()
	bars[24].Close = 108
	if m := Breakout(BreakoutParams{})(bars); m != nil {
		t.Fatalf("收盘恰等于箱顶不算突破")
	}
}

func TestBreakoutTighterParamsReduceMatches(t *testing.T) {
	bars := breakoutFixture()

	// 基准参数命中。
	if Breakout(BreakoutParams{})(bars) == nil {
		t.Fatalf("基准参数应命中")
	}
	// 更严的振幅上限：8% 的箱体不再合格。
	if Breakout(BreakoutParams{AmplitudeThreshold: 0.05})(bars) != nil {
		t.Fatalf("振幅上限收紧后不应命中")
	}
	// 更高的量比门槛：2 倍量不够 2.5 倍。
	if Breakout(BreakoutParams{VolumeRatio: 2.5})(bars) != nil {
		t.Fatalf("量比门槛提高后不应命中")
	}
}

func TestBreakoutSkipVolumeCheck(t *testing.T) {
	bars := breakoutFixture()
	bars[24].Volume = 500

	if Breakout(BreakoutParams{})(bars) != nil {
		t.Fatalf("量能不足时默认不应命中")
	}
	if Breakout(BreakoutParams{SkipVolumeCheck: true})(bars) == nil {
		t.Fatalf("停用量能条件后应命中")
	}
}

func TestBreakoutShortBoxUsesWholeBoxVolume(t *testing.T) {
	// Days=5 时箱体仅 4 根，均量退化为全箱体均量，不得越界。
	bars := breakoutFixture()
	m := Breakout(BreakoutParams{Days: 5})(bars)
	if m == nil {
		t.Fatalf("短盘整窗口应正常判定并命中")
	}
	if m.Fields["vol5_avg"] != int64(1000) {
		t.Fatalf("4 天箱体均量应为 1000, 实际=%v", m.Fields["vol5_avg"])
	}
	if m.Fields["volume_ratio"] != 2.0 {
		t.Fatalf("量比应为 2, 实际=%v", m.Fields["volume_ratio"])
	}
}

func TestBreakoutMinimumBoxDays(t *testing.T) {
	bars := breakoutFixture()

	// Days=2：单根箱体也能完整评估。
	if Breakout(BreakoutParams{Days: 2})(bars) == nil {
		t.Fatalf("单根箱体应可评估并命中")
	}
	// Days=1 没有箱体可言，回退为默认 21。
	if Breakout(BreakoutParams{Days: 1})(bars) == nil {
		t.Fatalf("Days=1 应回退默认参数并命中")
	}
}

func TestBreakoutInsufficientHistory(t *testing.T) {
	bars := breakoutFixture()[:20]
	if m := Breakout(BreakoutParams{})(bars); m != nil {
		t.Fatalf("历史不足 N+1 笔应返回 nil")
	}
}
