// Package http 提供 REST API 与 K 线图页：查询报价、扣抵、评分、
// 批量扫描与 go-echarts 图表渲染。
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"twquant/internal/config"
	"twquant/internal/market"
	"twquant/internal/store"
)

// cacheTTL 同一代号在此时限内的重复查询直接走内存缓存。
const cacheTTL = 5 * time.Minute

// Config HTTP 服务的装配参数。
type Config struct {
	Addr   string
	Source market.Source
	Store  store.BarStore
	Scan   config.ScanConfig
}

// Server 对外 HTTP 服务。
type Server struct {
	addr   string
	source market.Source
	store  store.BarStore
	scan   config.ScanConfig
	router *gin.Engine
}

// NewServer 装配路由；Source 不能为空。
func NewServer(cfg Config) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("source 不能为空")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8089"
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryBarStore()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:   cfg.Addr,
		source: cfg.Source,
		store:  cfg.Store,
		scan:   cfg.Scan,
		router: router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/chart/:symbol", s.handleChart)

	api := s.router.Group("/api")
	api.GET("/quote/:symbol", s.handleQuote)
	api.GET("/candles/:symbol", s.handleCandles)
	api.GET("/deduction/:symbol", s.handleDeduction)
	api.GET("/score/:symbol", s.handleScore)
	api.GET("/strategies", s.handleStrategies)
	api.POST("/scan", s.handleScan)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loadBars 先查内存缓存，过期或长度不足再向数据源拉取。
func (s *Server) loadBars(ctx context.Context, symbol string, limit int) ([]market.Bar, error) {
	if cached, savedAt, ok := s.store.Get(ctx, symbol); ok {
		if time.Since(savedAt) < cacheTTL && len(cached) >= limit {
			return s.store.Export(ctx, symbol, limit), nil
		}
	}

	timeout := s.scan.FetchTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	bars, err := s.source.FetchBars(fetchCtx, symbol, market.Query{Limit: limit})
	if err != nil {
		return nil, err
	}
	_ = s.store.Set(ctx, symbol, bars)
	return bars, nil
}

// Start 启动 HTTP 服务，阻塞直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Handler 暴露底层路由，便于测试。
func (s *Server) Handler() http.Handler {
	return s.router
}
