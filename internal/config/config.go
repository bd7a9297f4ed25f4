package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrMissingAPIKey 启动期配置错误：缺少 Fugle API 凭证。
// 这是少数不做降级处理的错误，直接让进程在第一时间失败。
var ErrMissingAPIKey = errors.New("FUGLE_API_KEY is not configured")

// Config 汇总服务运行所需的全部参数。
type Config struct {
	Server ServerConfig `toml:"server"`
	Fugle  FugleConfig  `toml:"fugle"`
	Scan   ScanConfig   `toml:"scan"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type FugleConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type ScanConfig struct {
	// DelayMS 相邻两次行情请求之间的固定间隔，礼让上游限流。
	DelayMS int `toml:"delay_ms"`
	// FetchTimeoutSeconds 单支股票拉取的超时；超时按单支错误隔离，不中断批次。
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
	// FetchLimit 每支股票拉取的最多 K 线笔数，0 表示由策略的窗口提示决定。
	FetchLimit int `toml:"fetch_limit"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Load 读取 TOML 配置文件；path 为空或文件不存在时退回默认值。
// FUGLE_API_KEY 环境变量始终优先于配置文件。
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// 没有配置文件也可运行，全部取默认值。
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if key := os.Getenv("FUGLE_API_KEY"); key != "" {
		cfg.Fugle.APIKey = key
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	out := c
	if out.Server.Addr == "" {
		out.Server.Addr = ":8089"
	}
	if out.Fugle.BaseURL == "" {
		out.Fugle.BaseURL = "https://api.fugle.tw/marketdata/v1.0"
	}
	if out.Fugle.TimeoutSeconds <= 0 {
		out.Fugle.TimeoutSeconds = 15
	}
	if out.Scan.DelayMS <= 0 {
		out.Scan.DelayMS = 200
	}
	if out.Scan.FetchTimeoutSeconds <= 0 {
		out.Scan.FetchTimeoutSeconds = 10
	}
	if out.Log.Level == "" {
		out.Log.Level = "info"
	}
	return out
}

// Timeout 返回行情 HTTP 客户端的超时。
func (c FugleConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScanDelay 返回扫描节流间隔。
func (c ScanConfig) ScanDelay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// FetchTimeout 返回单支股票的拉取超时。
func (c ScanConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
