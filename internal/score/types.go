// Package score 提供三套个股综合评分模型：
// 通用买进评分、短线动能评分（Mode A）、长线存股评分（Mode B）。
// 每套模型都是 Bar 序列到 Result 的纯函数，历史不足 65 根返回 nil。
package score

import (
	"fmt"
	"math"

	"twquant/internal/analysis/indicator"
)

// MinBars 三套模型共同的最低历史长度（确保 60MA 有效）。
const MinBars = 65

// 模型识别码。
const (
	ModelGeneral      = "general"
	ModelMomentum     = "momentum"
	ModelAccumulation = "accumulation"
)

const verdictNoData = "資料不足"

// Dimension 单一维度的得分汇总。
type Dimension struct {
	Score int    `json:"score"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// Detail 单一子条件的明细行：观察值、判语、得分。
type Detail struct {
	Dimension string `json:"dimension"`
	Metric    string `json:"metric"`
	Observed  string `json:"observed"`
	Verdict   string `json:"verdict"`
	Points    int    `json:"points"`
	Max       int    `json:"max"`
}

// Result 一次评分的完整输出。
type Result struct {
	Model      string               `json:"model"`
	Total      int                  `json:"total"`
	Dimensions map[string]Dimension `json:"dimensions"`
	Details    []Detail             `json:"details"`
}

// fnum 格式化数值，NaN 显示 N/A。
func fnum(v float64) string {
	if !indicator.Valid(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// fvol 成交量取整显示。
func fvol(v float64) string {
	if !indicator.Valid(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.0f", math.Round(v))
}
