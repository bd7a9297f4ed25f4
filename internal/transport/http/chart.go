package http

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"twquant/internal/analysis/indicator"
	"twquant/internal/logger"
	"twquant/internal/market"
)

// chartViewBars 图表聚焦的交易日数，拉取时叠加均线与 KD 的暖机需求。
const chartViewBars = 40

var chartMAPeriods = []int{5, 10, 20, 60}

var defaultChartLimit = chartViewBars + indicator.RequiredWarmup(
	indicator.Requirement{Kind: indicator.KindMA, Period: 60},
	indicator.Requirement{Kind: indicator.KindKD, Period: indicator.DefaultKDPeriod},
)

// handleChart 渲染 K 线图页：主图日 K 叠加均线，副图 KD。
func (s *Server) handleChart(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.loadBars(c.Request.Context(), symbol, limitQuery(c, defaultChartLimit))
	if err != nil {
		s.respondFetchError(c, symbol, err)
		return
	}

	page := components.NewPage()
	page.PageTitle = symbol
	page.AddCharts(buildKlineChart(symbol, bars), buildVolumeChart(bars), buildKDChart(bars))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := page.Render(c.Writer); err != nil {
		logger.Errorf("渲染 %s 图表失败: %v", symbol, err)
	}
}

func buildKlineChart(symbol string, bars []market.Bar) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s 日K", symbol)}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 20}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 50, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1180px", Height: "520px"}),
	)

	dates := make([]string, len(bars))
	candles := make([]opts.KlineData, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format("2006-01-02")
		candles[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	kline.SetXAxis(dates).AddSeries("日K", candles)

	overlays := indicator.AttachMA(bars, chartMAPeriods)
	for _, period := range chartMAPeriods {
		series, ok := overlays[period]
		if !ok {
			continue
		}
		line := charts.NewLine()
		line.SetXAxis(dates).AddSeries(fmt.Sprintf("MA%d", period), toLineData(series),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		kline.Overlap(line)
	}

	// 月线扣抵价：20 日前的收盘逐日前推，用于对照均线将扣抵的价位。
	ded := charts.NewLine()
	ded.SetXAxis(dates).AddSeries("月線扣抵", toLineData(indicator.DeductionSeries(market.Closes(bars), 20)))
	kline.Overlap(ded)
	return kline
}

func buildVolumeChart(bars []market.Bar) *charts.Bar {
	dates := make([]string, len(bars))
	vols := make([]opts.BarData, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format("2006-01-02")
		vols[i] = opts.BarData{Value: b.Volume}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "成交量"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1180px", Height: "200px"}),
	)
	bar.SetXAxis(dates).AddSeries("張數", vols)
	return bar
}

func buildKDChart(bars []market.Bar) *charts.Line {
	k, d := indicator.KD(bars, indicator.DefaultKDPeriod)

	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format("2006-01-02")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "KD (9)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1180px", Height: "260px"}),
	)
	line.SetXAxis(dates).
		AddSeries("K", toLineData(k)).
		AddSeries("D", toLineData(d))
	return line
}

// toLineData NaN 以 "-" 表示，echarts 会在该点断线。
func toLineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = opts.LineData{Value: "-"}
		} else {
			out[i] = opts.LineData{Value: v}
		}
	}
	return out
}
