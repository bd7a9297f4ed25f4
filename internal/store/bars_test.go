package store

import (
	"context"
	"testing"
	"time"

	"twquant/internal/market"
)

func sampleBars(n int) []market.Bar {
	base := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = market.Bar{Date: base.AddDate(0, 0, i), Close: float64(100 + i), Volume: 1000}
	}
	return bars
}

func TestMemoryBarStoreCopySemantics(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	src := sampleBars(5)

	if err := s.Set(ctx, "2330", src); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}

	// 写入后修改原切片不应影响缓存。
	src[0].Close = -1
	got, savedAt, ok := s.Get(ctx, "2330")
	if !ok {
		t.Fatalf("应命中缓存")
	}
	if got[0].Close != 100 {
		t.Fatalf("缓存应持有写入时的副本, 实际=%v", got[0].Close)
	}
	if savedAt.IsZero() {
		t.Fatalf("应记录写入时间")
	}

	// 读取结果的修改同样不应回写缓存。
	got[1].Close = -1
	again, _, _ := s.Get(ctx, "2330")
	if again[1].Close != 101 {
		t.Fatalf("Get 应返回拷贝, 实际=%v", again[1].Close)
	}
}

func TestMemoryBarStoreMiss(t *testing.T) {
	s := NewMemoryBarStore()
	if _, _, ok := s.Get(context.Background(), "none"); ok {
		t.Fatalf("未写入的代号不应命中")
	}
	if err := s.Set(context.Background(), "", nil); err == nil {
		t.Fatalf("空代号应报错")
	}
}

func TestMemoryBarStoreExport(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	_ = s.Set(ctx, "2330", sampleBars(10))

	out := s.Export(ctx, "2330", 3)
	if len(out) != 3 {
		t.Fatalf("应导出最近 3 笔, 实际=%d", len(out))
	}
	if out[2].Close != 109 {
		t.Fatalf("末笔应为最新收盘 109, 实际=%v", out[2].Close)
	}
	if got := s.Export(ctx, "2330", 99); len(got) != 10 {
		t.Fatalf("limit 超过长度时应返回全部, 实际=%d", len(got))
	}
	if got := s.Export(ctx, "2330", 0); got != nil {
		t.Fatalf("limit 为 0 应返回 nil")
	}
}
