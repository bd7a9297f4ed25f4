package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
	"twquant/internal/score"
)

func newScoreCmd() *cobra.Command {
	var (
		model string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "score <symbol>",
		Short: "个股综合买进评分",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			src, err := newSource()
			if err != nil {
				return err
			}

			bars, err := src.FetchBars(cmd.Context(), symbol, market.Query{Limit: limit})
			if err != nil {
				return fmt.Errorf("查询 %s 失败: %w", symbol, err)
			}

			result, ok := score.Compute(model, bars)
			if !ok {
				return fmt.Errorf("未知的評分模型: %s", model)
			}
			if result == nil {
				return fmt.Errorf("%s 歷史資料不足（需至少 %d 個交易日），無法進行評分", symbol, score.MinBars)
			}

			fmt.Printf("%s 綜合評分（%s）：%d / 100  %s\n\n", symbol, result.Model, result.Total, scoreLabel(result.Total))

			dims := table.NewWriter()
			dims.SetOutputMirror(os.Stdout)
			dims.SetStyle(table.StyleLight)
			dims.AppendHeader(table.Row{"維度", "得分"})
			for _, key := range dimensionOrder(result) {
				d := result.Dimensions[key]
				dims.AppendRow(table.Row{d.Label, fmt.Sprintf("%d / %d", d.Score, d.Max)})
			}
			dims.Render()
			fmt.Println()

			details := table.NewWriter()
			details.SetOutputMirror(os.Stdout)
			details.SetStyle(table.StyleLight)
			details.AppendHeader(table.Row{"維度", "指標", "數值", "判斷", "得分"})
			for _, d := range result.Details {
				details.AppendRow(table.Row{
					d.Dimension, d.Metric, d.Observed, d.Verdict,
					fmt.Sprintf("%d / %d", d.Points, d.Max),
				})
			}
			details.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", score.ModelGeneral, "评分模型: general / momentum / accumulation")
	// 默认笔数覆盖 240MA 与各振荡指标的暖机需求。
	cmd.Flags().IntVar(&limit, "limit", indicator.RequiredWarmup(
		indicator.Requirement{Kind: indicator.KindMA, Period: 240},
		indicator.Requirement{Kind: indicator.KindRSI, Period: 14},
		indicator.Requirement{Kind: indicator.KindMACD},
		indicator.Requirement{Kind: indicator.KindStoch},
	), "拉取的 K 线笔数")
	return cmd
}

// dimensionOrder 按明细行出现顺序整理维度，保持输出稳定。
func dimensionOrder(result *score.Result) []string {
	seen := map[string]bool{}
	order := make([]string, 0, len(result.Dimensions))
	for _, d := range result.Details {
		for key, dim := range result.Dimensions {
			if dim.Label == d.Dimension && !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
		}
	}
	for key := range result.Dimensions {
		if !seen[key] {
			order = append(order, key)
		}
	}
	return order
}

func scoreLabel(total int) string {
	switch {
	case total >= 80:
		return "強烈建議關注"
	case total >= 50:
		return "中性觀察"
	default:
		return "偏弱勢"
	}
}
