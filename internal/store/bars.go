package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"twquant/internal/market"
)

// BarStore 抽象：按股票代号读写日 K 序列。
type BarStore interface {
	Set(ctx context.Context, symbol string, bars []market.Bar) error
	Get(ctx context.Context, symbol string) ([]market.Bar, time.Time, bool)
	// Export 返回最近 limit 根 Bar（升序），未命中或 limit 无效时为 nil。
	Export(ctx context.Context, symbol string, limit int) []market.Bar
}

// MemoryBarStore 内存实现，供展示层在同一代号的连续查询间复用拉取结果。
// 不做持久化。
type MemoryBarStore struct {
	mu   sync.RWMutex
	data map[string]entry
}

type entry struct {
	bars    []market.Bar
	savedAt time.Time
}

func NewMemoryBarStore() *MemoryBarStore {
	return &MemoryBarStore{data: make(map[string]entry)}
}

// Set 全量替换指定代号的序列（存副本）。
func (s *MemoryBarStore) Set(ctx context.Context, symbol string, bars []market.Bar) error {
	if symbol == "" {
		return errors.New("symbol 不能为空")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[symbol] = entry{bars: market.Clone(bars), savedAt: time.Now()}
	return nil
}

// Get 返回拷贝及写入时间；未命中时 ok 为 false。
func (s *MemoryBarStore) Get(ctx context.Context, symbol string) ([]market.Bar, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[symbol]
	if !ok {
		return nil, time.Time{}, false
	}
	return market.Clone(e.bars), e.savedAt, true
}

// Export 返回最近 limit 根 Bar（按日期升序）；不足时返回全部。
func (s *MemoryBarStore) Export(ctx context.Context, symbol string, limit int) []market.Bar {
	if limit <= 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[symbol]
	if !ok || len(e.bars) == 0 {
		return nil
	}
	if limit > len(e.bars) {
		limit = len(e.bars)
	}
	return market.Clone(e.bars[len(e.bars)-limit:])
}
