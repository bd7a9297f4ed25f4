package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"twquant/internal/analysis/indicator"
	"twquant/internal/market"
)

func newQuoteCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "quote <symbol>",
		Short: "查询个股最新报价与扣抵判读",
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

			last := bars[len(bars)-1]
			fmt.Printf("%s  %s  收 %.2f  量 %d\n", symbol, last.Date.Format("2006-01-02"), last.Close, last.Volume)
			if len(bars) >= 2 && bars[len(bars)-2].Close != 0 {
				prev := bars[len(bars)-2].Close
				fmt.Printf("涨跌 %+.2f (%+.2f%%)\n", last.Close-prev, (last.Close-prev)/prev*100)
			}

			records := indicator.DeductionRecords(bars)
			if records == nil {
				fmt.Println("歷史資料不足，無法計算扣抵")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"均線", "MA 值", "扣抵價", "現價差", "趨勢"})
			for _, r := range records {
				t.AppendRow(table.Row{
					fmt.Sprintf("%s (MA%d)", r.Name, r.Period),
					fmt.Sprintf("%.2f", r.MAValue),
					fmt.Sprintf("%.2f", r.DeductionPrice),
					fmt.Sprintf("%+.2f%%", r.DiffPct),
					trendLabel(r.Trend),
				})
			}
			t.Render()
			return nil
		},
	}

	// 默认笔数覆盖 60MA 扣抵序列的暖机需求。
	cmd.Flags().IntVar(&limit, "limit", indicator.RequiredWarmup(
		indicator.Requirement{Kind: indicator.KindDeduction, Period: 60},
	), "拉取的 K 线笔数")
	return cmd
}

func trendLabel(t indicator.Trend) string {
	switch t {
	case indicator.TrendBullish:
		return "助漲"
	case indicator.TrendBearish:
		return "助跌"
	default:
		return "盤整"
	}
}
