package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twquant/internal/analysis/indicator"
	"twquant/internal/logger"
	"twquant/internal/market"
	"twquant/internal/score"
	"twquant/internal/screener"
)

const (
	maxCandleLimit   = 1000
	noDataMessage    = "查無資料，請確認股票代號是否正確"
	insufficientBars = "歷史資料不足（需至少 65 個交易日），無法進行評分"
)

// 各路径的默认拉取笔数由其指标需求推导。
var (
	// 报价与扣抵最长需要 60MA 的扣抵序列。
	defaultQuoteLimit = indicator.RequiredWarmup(
		indicator.Requirement{Kind: indicator.KindDeduction, Period: 60},
	)
	// 评分最长需要 240MA，并覆盖 RSI/MACD/KD 随机指标。
	defaultScoreLimit = indicator.RequiredWarmup(
		indicator.Requirement{Kind: indicator.KindMA, Period: 240},
		indicator.Requirement{Kind: indicator.KindRSI, Period: 14},
		indicator.Requirement{Kind: indicator.KindMACD},
		indicator.Requirement{Kind: indicator.KindStoch},
	)
)

// barRow API 输出的单根日 K。
type barRow struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   int64   `json:"volume"`
	Turnover *int64  `json:"turnover,omitempty"`
}

func toRows(bars []market.Bar) []barRow {
	rows := make([]barRow, len(bars))
	for i, b := range bars {
		rows[i] = barRow{
			Date:     b.Date.Format("2006-01-02"),
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			Volume:   b.Volume,
			Turnover: b.Turnover,
		}
	}
	return rows
}

func limitQuery(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > maxCandleLimit {
		return maxCandleLimit
	}
	return n
}

func (s *Server) respondFetchError(c *gin.Context, symbol string, err error) {
	if errors.Is(err, market.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": noDataMessage, "symbol": symbol})
		return
	}
	logger.Errorf("拉取 %s 行情失败: %v", symbol, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "symbol": symbol})
}

// handleQuote 最新一根日 K 的报价摘要，附涨跌幅。
func (s *Server) handleQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.loadBars(c.Request.Context(), symbol, limitQuery(c, defaultQuoteLimit))
	if err != nil {
		s.respondFetchError(c, symbol, err)
		return
	}

	last := bars[len(bars)-1]
	resp := gin.H{
		"symbol": symbol,
		"date":   last.Date.Format("2006-01-02"),
		"open":   last.Open,
		"high":   last.High,
		"low":    last.Low,
		"close":  last.Close,
		"volume": last.Volume,
	}
	if last.Turnover != nil {
		resp["turnover"] = *last.Turnover
	}
	if len(bars) >= 2 {
		prev := bars[len(bars)-2].Close
		if prev != 0 {
			resp["change"] = last.Close - prev
			resp["change_pct"] = (last.Close - prev) / prev * 100
		}
	}
	c.JSON(http.StatusOK, resp)
}

// handleCandles 日 K 序列，升序。
func (s *Server) handleCandles(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.loadBars(c.Request.Context(), symbol, limitQuery(c, defaultQuoteLimit))
	if err != nil {
		s.respondFetchError(c, symbol, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":       symbol,
		"has_turnover": market.HasTurnover(bars),
		"candles":      toRows(bars),
	})
}

// handleDeduction 四条均线的扣抵判读表。
func (s *Server) handleDeduction(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.loadBars(c.Request.Context(), symbol, limitQuery(c, defaultQuoteLimit))
	if err != nil {
		s.respondFetchError(c, symbol, err)
		return
	}
	records := indicator.DeductionRecords(bars)
	if records == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "歷史資料不足，無法計算扣抵", "symbol": symbol,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "records": records})
}

// handleScore 三套评分模型，model 取 general / momentum / accumulation。
func (s *Server) handleScore(c *gin.Context) {
	symbol := c.Param("symbol")
	model := c.DefaultQuery("model", score.ModelGeneral)

	bars, err := s.loadBars(c.Request.Context(), symbol, limitQuery(c, defaultScoreLimit))
	if err != nil {
		s.respondFetchError(c, symbol, err)
		return
	}

	result, ok := score.Compute(model, bars)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的評分模型: " + model})
		return
	}
	if result == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": insufficientBars, "symbol": symbol})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "result": result})
}

// handleStrategies 选股策略目录。
func (s *Server) handleStrategies(c *gin.Context) {
	type item struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Rule        string `json:"rule"`
		Hint        string `json:"hint"`
		FetchWindow int    `json:"fetch_window"`
	}
	all := screener.All()
	items := make([]item, len(all))
	for i, e := range all {
		items[i] = item{ID: e.ID, Name: e.Name, Rule: e.Rule, Hint: e.Hint, FetchWindow: e.FetchWindow}
	}
	c.JSON(http.StatusOK, gin.H{"strategies": items})
}

type scanRequest struct {
	Strategy string             `json:"strategy" binding:"required"`
	Symbols  []string           `json:"symbols" binding:"required"`
	Params   map[string]float64 `json:"params"`
	Limit    int                `json:"limit"`
}

// handleScan 同步执行一次批量扫描，返回命中与失败两个列表。
func (s *Server) handleScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	entry, ok := screener.Lookup(req.Strategy)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的選股策略: " + req.Strategy})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.scan.FetchLimit
	}
	if limit <= 0 {
		limit = entry.FetchWindow
	}

	runID := uuid.NewString()
	started := time.Now()
	logger.Infof("[scan %s] 策略=%s 标的=%d", runID, entry.ID, len(req.Symbols))

	matches, scanErrs, err := screener.Scan(c.Request.Context(), s.source, req.Symbols, entry.New(req.Params), screener.Options{
		FetchLimit:   limit,
		Delay:        s.scan.ScanDelay(),
		FetchTimeout: s.scan.FetchTimeout(),
	})
	if err != nil {
		logger.Warnf("[scan %s] 中断: %v", runID, err)
	}

	type matchRow struct {
		Symbol string         `json:"symbol"`
		Date   string         `json:"date"`
		Fields map[string]any `json:"fields"`
	}
	rows := make([]matchRow, len(matches))
	for i, m := range matches {
		rows[i] = matchRow{Symbol: m.Symbol, Date: m.Match.Date.Format("2006-01-02"), Fields: m.Match.Fields}
	}
	errRows := make([]gin.H, len(scanErrs))
	for i, e := range scanErrs {
		errRows[i] = gin.H{"symbol": e.Symbol, "reason": e.Reason}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":     runID,
		"strategy":   entry.ID,
		"elapsed_ms": time.Since(started).Milliseconds(),
		"matches":    rows,
		"errors":     errRows,
	})
}
