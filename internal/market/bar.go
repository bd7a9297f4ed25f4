package market

import "time"

// Bar 表示单一交易日的行情记录。Volume 以「张」为单位，
// Turnover（成交值，千元）为可选字段，上游缺省时为 nil。
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	Turnover *int64    `json:"turnover,omitempty"`
}

// Clone 返回序列的独立副本。指标计算一律在副本上进行，
// 调用方持有的序列不会被修改。
func Clone(bars []Bar) []Bar {
	out := make([]Bar, len(bars))
	copy(out, bars)
	return out
}

// Ascending 检查日期是否严格递增（允许缺口，周末假日本来就不存在）。
func Ascending(bars []Bar) bool {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return false
		}
	}
	return true
}

// Closes 抽取收盘价序列。
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs 抽取最高价序列。
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows 抽取最低价序列。
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes 抽取成交量序列（float64，便于直接喂给指标函数）。
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// Tail 返回最近 n 根 Bar 的副本；n 超过长度时返回全量副本。
func Tail(bars []Bar, n int) []Bar {
	if n <= 0 {
		return nil
	}
	if n > len(bars) {
		n = len(bars)
	}
	return Clone(bars[len(bars)-n:])
}

// HasTurnover 判断序列是否带有成交值字段。
func HasTurnover(bars []Bar) bool {
	for _, b := range bars {
		if b.Turnover != nil {
			return true
		}
	}
	return false
}
