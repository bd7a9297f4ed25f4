package market

import (
	"context"
	"errors"
	"time"
)

// ErrNoData 表示行情源对合法代号返回了空结果（例如代号不存在）。
// 批量扫描时按「查无资料」处理，不视为错误。
var ErrNoData = errors.New("no data found")

// Query 描述一次历史 K 线查询。
type Query struct {
	// Limit 最多返回的交易日笔数；上游资料更多时取最近 Limit 笔。
	Limit int
	// From/To 日历区间，零值表示由数据源自行推算。
	From time.Time
	To   time.Time
}

// Source 统一对接外部行情供应商。
type Source interface {
	// FetchBars 拉取日 K 线并按日期升序、去重后返回。
	// 空结果返回 (nil, ErrNoData)。
	FetchBars(ctx context.Context, symbol string, q Query) ([]Bar, error)
}

// SourceFunc 便于用函数直接充当 Source（测试与扫描引擎常用）。
type SourceFunc func(ctx context.Context, symbol string, q Query) ([]Bar, error)

func (f SourceFunc) FetchBars(ctx context.Context, symbol string, q Query) ([]Bar, error) {
	return f(ctx, symbol, q)
}
