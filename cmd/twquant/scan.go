package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"twquant/internal/screener"
)

func newScanCmd() *cobra.Command {
	var (
		strategyID string
		symbolsCSV string
		paramsCSV  string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "按选股策略批量扫描",
		Long: `按选股策略批量扫描给定标的，输出命中明细与失败清单。

可用策略见 twquant strategies。参数以 key=value 逗号分隔，
例如 --params volume_ratio=2.0,amplitude=0.08。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := screener.Lookup(strategyID)
			if !ok {
				return fmt.Errorf("未知的選股策略: %s", strategyID)
			}

			symbols := splitSymbols(symbolsCSV)
			if len(symbols) == 0 {
				return fmt.Errorf("--symbols 不能为空")
			}

			params, err := parseParams(paramsCSV)
			if err != nil {
				return err
			}

			src, err := newSource()
			if err != nil {
				return err
			}

			fetchLimit := limit
			if fetchLimit <= 0 {
				fetchLimit = cfg.Scan.FetchLimit
			}
			if fetchLimit <= 0 {
				fetchLimit = entry.FetchWindow
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bar := progressbar.NewOptions(len(symbols),
				progressbar.OptionSetDescription(fmt.Sprintf("掃描 %s", entry.Name)),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			matches, scanErrs, err := screener.Scan(ctx, src, symbols, entry.New(params), screener.Options{
				FetchLimit:   fetchLimit,
				Delay:        cfg.Scan.ScanDelay(),
				FetchTimeout: cfg.Scan.FetchTimeout(),
				OnProgress: func(fraction float64) {
					_ = bar.Set(int(fraction * float64(len(symbols))))
				},
			})
			_ = bar.Finish()
			if err != nil {
				fmt.Fprintf(os.Stderr, "掃描中斷: %v（已輸出部分結果）\n", err)
			}

			renderMatches(entry, matches)
			renderScanErrors(scanErrs)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyID, "strategy", "breakout", "策略 ID")
	cmd.Flags().StringVar(&symbolsCSV, "symbols", "", "逗号分隔的股票代号")
	cmd.Flags().StringVar(&paramsCSV, "params", "", "策略参数，key=value 逗号分隔")
	cmd.Flags().IntVar(&limit, "limit", 0, "每档拉取的 K 线笔数（0 取策略建议值）")
	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "列出全部选股策略",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "名稱", "條件", "建議筆數"})
			for _, e := range screener.All() {
				t.AppendRow(table.Row{e.ID, e.Name, e.Rule, e.FetchWindow})
			}
			t.Render()
			return nil
		},
	}
}

func renderMatches(entry screener.Entry, matches []screener.SymbolMatch) {
	if len(matches) == 0 {
		fmt.Printf("%s：無符合標的\n", entry.Name)
		if entry.Hint != "" {
			fmt.Printf("提示：%s\n", entry.Hint)
		}
		return
	}

	// 汇总所有命中出现过的字段名，保证列集合一致。
	fieldSet := map[string]struct{}{}
	for _, m := range matches {
		for k := range m.Match.Fields {
			fieldSet[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s  命中 %d 檔", entry.Name, len(matches)))

	header := table.Row{"代號", "日期"}
	for _, f := range fields {
		header = append(header, f)
	}
	t.AppendHeader(header)

	for _, m := range matches {
		row := table.Row{m.Symbol, m.Match.Date.Format("2006-01-02")}
		for _, f := range fields {
			if v, ok := m.Match.Fields[f]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}

func renderScanErrors(scanErrs []screener.ScanError) {
	if len(scanErrs) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("略過 %d 檔", len(scanErrs)))
	t.AppendHeader(table.Row{"代號", "原因"})
	for _, e := range scanErrs {
		t.AppendRow(table.Row{e.Symbol, e.Reason})
	}
	t.Render()
}

func splitSymbols(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseParams(csv string) (map[string]float64, error) {
	params := map[string]float64{}
	if csv == "" {
		return params, nil
	}
	for _, pair := range strings.Split(csv, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("参数格式错误: %s（需 key=value）", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("参数 %s 不是数值: %w", kv[0], err)
		}
		params[strings.TrimSpace(kv[0])] = v
	}
	return params, nil
}
