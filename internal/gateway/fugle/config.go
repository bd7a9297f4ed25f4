package fugle

import "time"

// Config 描述 Fugle 行情源运行所需的参数。
type Config struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = "https://api.fugle.tw/marketdata/v1.0"
	}
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = 15 * time.Second
	}
	return out
}
