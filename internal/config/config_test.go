package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FUGLE_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("空路径应退回默认配置: %v", err)
	}
	if cfg.Server.Addr != ":8089" {
		t.Fatalf("默认监听地址应为 :8089, 实际=%q", cfg.Server.Addr)
	}
	if cfg.Fugle.BaseURL == "" {
		t.Fatalf("应有默认 Fugle base_url")
	}
	if cfg.Scan.ScanDelay() != 200*time.Millisecond {
		t.Fatalf("默认扫描间隔应为 200ms, 实际=%v", cfg.Scan.ScanDelay())
	}
	if cfg.Scan.FetchTimeout() != 10*time.Second {
		t.Fatalf("默认拉取超时应为 10s, 实际=%v", cfg.Scan.FetchTimeout())
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("默认日志级别应为 info, 实际=%q", cfg.Log.Level)
	}
}

func TestLoadMissingFileIsOK(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("缺少配置文件不应报错: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
addr = ":9000"

[fugle]
api_key = "from-file"
timeout_seconds = 30

[scan]
delay_ms = 500
fetch_limit = 60

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	t.Setenv("FUGLE_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("应读取文件配置, 实际=%q", cfg.Server.Addr)
	}
	if cfg.Fugle.APIKey != "from-env" {
		t.Fatalf("环境变量应优先于文件, 实际=%q", cfg.Fugle.APIKey)
	}
	if cfg.Fugle.Timeout() != 30*time.Second {
		t.Fatalf("timeout_seconds 应生效, 实际=%v", cfg.Fugle.Timeout())
	}
	if cfg.Scan.DelayMS != 500 || cfg.Scan.FetchLimit != 60 {
		t.Fatalf("scan 配置应生效, 实际=%+v", cfg.Scan)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("日志级别应为 debug, 实际=%q", cfg.Log.Level)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("坏 TOML 应报错")
	}
}
