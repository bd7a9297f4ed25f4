package screener

import (
	"math"
	"time"

	"twquant/internal/market"
)

// Match 是策略命中的结果：触发日期加上各策略自述的关键指标。
// 未命中以 nil 表示，绝不以错误表示。
type Match struct {
	Date   time.Time      `json:"date"`
	Fields map[string]any `json:"fields"`
}

// Predicate 所有选股策略共享的判断签名。输入为日期升序的 Bar 序列；
// 历史不足或必要字段缺失时返回 nil。
type Predicate func(bars []market.Bar) *Match

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
