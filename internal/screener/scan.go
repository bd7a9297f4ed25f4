package screener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"twquant/internal/logger"
	"twquant/internal/market"
)

const (
	defaultFetchLimit   = 100
	defaultScanDelay    = 200 * time.Millisecond
	defaultFetchTimeout = 10 * time.Second
	maxErrorReasonLen   = 80
)

// SymbolMatch 某档股票的命中结果。
type SymbolMatch struct {
	Symbol string
	Match  Match
}

// ScanError 单档股票扫描失败的记录，不影响其余标的。
type ScanError struct {
	Symbol string
	Reason string
}

// Options 扫描批次的可调项。
type Options struct {
	// FetchLimit 每档股票请求的 K 线根数。
	FetchLimit int
	// Delay 相邻两档请求之间的最小间隔，避免触发数据源限流。
	Delay time.Duration
	// FetchTimeout 单档抓取的超时上限。
	FetchTimeout time.Duration
	// OnProgress 每处理完一档后回调，参数为完成比例 (0, 1]。
	OnProgress func(fraction float64)
	// OnStatus 每档开始处理时回调当前标的说明。
	OnStatus func(text string)
}

func (o Options) withDefaults() Options {
	out := o
	if out.FetchLimit <= 0 {
		out.FetchLimit = defaultFetchLimit
	}
	if out.Delay <= 0 {
		out.Delay = defaultScanDelay
	}
	if out.FetchTimeout <= 0 {
		out.FetchTimeout = defaultFetchTimeout
	}
	return out
}

// Scan 按入参顺序逐档扫描：抓取日 K、套用判定函数、汇总命中与失败，
// 单档的错误或 panic 只记入 ScanError。ctx 取消时返回已完成的部分结果
// 与 ctx.Err()。
func Scan(ctx context.Context, src market.Source, symbols []string, pred Predicate, opts Options) ([]SymbolMatch, []ScanError, error) {
	opts = opts.withDefaults()

	matches := make([]SymbolMatch, 0, len(symbols))
	scanErrs := make([]ScanError, 0)
	limiter := rate.NewLimiter(rate.Every(opts.Delay), 1)
	total := len(symbols)

	for i, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return matches, scanErrs, err
		}
		if err := limiter.Wait(ctx); err != nil {
			return matches, scanErrs, err
		}

		if opts.OnStatus != nil {
			opts.OnStatus(fmt.Sprintf("掃描中 %s (%d/%d)", symbol, i+1, total))
		}

		m, err := scanOne(ctx, src, symbol, pred, opts)
		if err != nil {
			scanErrs = append(scanErrs, ScanError{Symbol: symbol, Reason: truncateReason(err)})
			logger.Warnf("扫描 %s 失败: %v", symbol, err)
		} else if m != nil {
			matches = append(matches, SymbolMatch{Symbol: symbol, Match: *m})
		}

		if opts.OnProgress != nil {
			opts.OnProgress(float64(i+1) / float64(total))
		}
	}

	return matches, scanErrs, nil
}

// scanOne 单档抓取加判定，panic 转为普通错误以隔离坏数据。
func scanOne(ctx context.Context, src market.Source, symbol string, pred Predicate, opts Options) (m *Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, opts.FetchTimeout)
	defer cancel()

	bars, err := src.FetchBars(fetchCtx, symbol, market.Query{Limit: opts.FetchLimit})
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			return nil, market.ErrNoData
		}
		return nil, err
	}
	return pred(bars), nil
}

func truncateReason(err error) string {
	reason := []rune(err.Error())
	if len(reason) > maxErrorReasonLen {
		reason = reason[:maxErrorReasonLen]
	}
	return string(reason)
}
