package indicator

import (
	"math"
	"testing"
)

func rampCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func TestDeductionRecords(t *testing.T) {
	// 60 笔递增序列：现价 159，5MA 扣抵价 = closes[60-5] = 155。
	bars := makeBars(rampCloses(60)...)
	records := DeductionRecords(bars)
	if records == nil {
		t.Fatalf("60 笔历史应产出扣抵记录")
	}
	if len(records) != 4 {
		t.Fatalf("应覆盖 5/10/20/60 四条均线, 实际=%d", len(records))
	}

	r5 := records[0]
	if r5.Period != 5 || r5.Subtitle != "周線" {
		t.Fatalf("首条应为周线 5MA, 实际=%+v", r5)
	}
	if r5.DeductionPrice != 155 {
		t.Fatalf("5MA 扣抵价应为 155, 实际=%v", r5.DeductionPrice)
	}
	if r5.CurrentClose != 159 {
		t.Fatalf("现价应为 159, 实际=%v", r5.CurrentClose)
	}
	wantDiff := round2((159.0 - 155.0) / 155.0 * 100)
	if r5.DiffPct != wantDiff {
		t.Fatalf("乖离应为 %v, 实际=%v", wantDiff, r5.DiffPct)
	}
	if r5.Trend != TrendBullish {
		t.Fatalf("现价高于扣抵价 1%% 以上应判助涨, 实际=%v", r5.Trend)
	}

	// 60MA 扣抵价 = closes[0] = 100，乖离 59% 同样助涨。
	r60 := records[3]
	if r60.Period != 60 || r60.DeductionPrice != 100 {
		t.Fatalf("60MA 扣抵价应为 100, 实际=%+v", r60)
	}
}

func TestDeductionTrendBands(t *testing.T) {
	// 构造乖离恰在 ±1% 以内：现价 100，5 笔前收盘 100.5。
	closes := rampCloses(50)
	closes[len(closes)-5] = 100.5
	closes[len(closes)-1] = 100
	bars := makeBars(closes...)

	records := DeductionRecords(bars)
	if records == nil {
		t.Fatalf("50 笔历史应产出扣抵记录")
	}
	if got := records[0].Trend; got != TrendConsolidating {
		t.Fatalf("乖离 -0.5%% 应判盘整, 实际=%v", got)
	}

	// 现价明显低于扣抵价则助跌。
	closes[len(closes)-5] = 120
	records = DeductionRecords(makeBars(closes...))
	if got := records[0].Trend; got != TrendBearish {
		t.Fatalf("现价低于扣抵价应判助跌, 实际=%v", got)
	}
}

func TestDeductionRecordsInsufficientHistory(t *testing.T) {
	if got := DeductionRecords(makeBars(rampCloses(44)...)); got != nil {
		t.Fatalf("44 笔历史不应产出记录, 实际=%v", got)
	}

	// 45~59 笔时跳过季线。
	records := DeductionRecords(makeBars(rampCloses(45)...))
	if records == nil || len(records) != 3 {
		t.Fatalf("45 笔历史应仅有 5/10/20 三条, 实际=%v", records)
	}
}

func TestDeductionSeries(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14}
	out := DeductionSeries(closes, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Fatalf("前 period-1 笔应为 NaN, 实际=%v", out[:2])
	}
	// 第 i 笔扣抵价 = 窗口内最旧收盘 closes[i-period+1]。
	want := []float64{10, 11, 12}
	for i, w := range want {
		if out[i+2] != w {
			t.Fatalf("out[%d] 应为 %v, 实际=%v", i+2, w, out[i+2])
		}
	}
}

func TestDeductionPressure(t *testing.T) {
	closes := rampCloses(20)
	pressure, ok := DeductionPressure(closes, 10)
	if !ok || pressure {
		t.Fatalf("上升序列扣抵价低于现价, 不应有压力, pressure=%v ok=%v", pressure, ok)
	}

	// 下跌序列：10 笔前的收盘高于现价。
	down := make([]float64, 20)
	for i := range down {
		down[i] = 200 - float64(i)
	}
	pressure, ok = DeductionPressure(down, 10)
	if !ok || !pressure {
		t.Fatalf("下跌序列应有扣抵压力, pressure=%v ok=%v", pressure, ok)
	}

	if _, ok := DeductionPressure(closes[:5], 10); ok {
		t.Fatalf("历史不足时 ok 应为 false")
	}
}
