package fugle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"twquant/internal/config"
	"twquant/internal/logger"
	"twquant/internal/market"
)

const maxHistoryLimit = 1000

// Source 实现 market.Source，负责 Fugle Historical API 接入。
type Source struct {
	cfg        Config
	httpClient *http.Client
}

// New 构造 Source；缺少 API key 视为配置错误，立即失败。
func New(cfg Config) (*Source, error) {
	final := cfg.withDefaults()
	if strings.TrimSpace(final.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}
	return &Source{
		cfg:        final,
		httpClient: &http.Client{Timeout: final.HTTPTimeout},
	}, nil
}

// FetchBars 拉取日 K 线，按日期升序、去重后取最近 q.Limit 笔。
func (s *Source) FetchBars(ctx context.Context, symbol string, q market.Query) ([]market.Bar, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	to := q.To
	if to.IsZero() {
		to = time.Now()
	}
	from := q.From
	if from.IsZero() {
		// 每个交易日约折合 1.5 个日历天（含周末假日），再加 30 天缓冲。
		daysBack := int(float64(limit)*1.5) + 30
		if daysBack < 90 {
			daysBack = 90
		}
		from = to.AddDate(0, 0, -daysBack)
	}

	endpoint := fmt.Sprintf("%s/stock/historical/candles/%s", s.cfg.BaseURL, url.PathEscape(symbol))
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("fields", "open,high,low,close,volume,turnover")
	full := endpoint + "?" + params.Encode()
	logger.Debugf("[fugle] REST %s", full)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.cfg.APIKey)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fugle history error: %s", resp.Status)
	}

	var payload candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	bars := normalizeRows(payload.Data)
	if len(bars) == 0 {
		return nil, market.ErrNoData
	}
	if !market.Ascending(bars) {
		return nil, fmt.Errorf("fugle history: rows not strictly ascending after normalize")
	}
	return market.Tail(bars, limit), nil
}

type candlesResponse struct {
	Symbol string      `json:"symbol"`
	Type   string      `json:"type"`
	Data   []candleRow `json:"data"`
}

type candleRow struct {
	Date     string   `json:"date"`
	Open     float64  `json:"open"`
	High     float64  `json:"high"`
	Low      float64  `json:"low"`
	Close    float64  `json:"close"`
	Volume   int64    `json:"volume"`
	Turnover *int64   `json:"turnover"`
}

// normalizeRows 解析日期、升序排序并按日期去重（保留最后一笔）。
func normalizeRows(rows []candleRow) []market.Bar {
	out := make([]market.Bar, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			logger.Warnf("[fugle] 丢弃无法解析日期的行: %q", r.Date)
			continue
		}
		b := market.Bar{
			Date:     d,
			Open:     r.Open,
			High:     r.High,
			Low:      r.Low,
			Close:    r.Close,
			Volume:   r.Volume,
			Turnover: r.Turnover,
		}
		if idx, ok := seen[r.Date]; ok {
			out[idx] = b
			continue
		}
		seen[r.Date] = len(out)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
