// config_test.go — 配置加载默认值 + 环境变量覆盖测试。
package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// 确保关键环境变量未设置
	os.Unsetenv("KERNEL_BASE_URL")
	os.Unsetenv("CONSOLE_LISTEN_ADDR")
	os.Unsetenv("POSTGRES_SCHEMA")
	os.Unsetenv("EVENT_LOG_CAP")

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"KernelBaseURL", cfg.KernelBaseURL, "http://127.0.0.1:7466"},
		{"KernelEventsURL", cfg.KernelEventsURL, "ws://127.0.0.1:7466/events"},
		{"KernelTimeoutSec", cfg.KernelTimeoutSec, 30},
		{"ListenAddr", cfg.ListenAddr, ":8090"},
		{"EventLogCap", cfg.EventLogCap, 200},
		{"StreamBufferCap", cfg.StreamBufferCap, 8000},
		{"PostgresSchema", cfg.PostgresSchema, "public"},
		{"PostgresPoolMinSize", cfg.PostgresPoolMinSize, 1},
		{"PostgresPoolMaxSize", cfg.PostgresPoolMaxSize, 10},
		{"LogLevel", cfg.LogLevel, "INFO"},
		{"LogEnv", cfg.LogEnv, "production"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KERNEL_BASE_URL", "http://10.0.0.2:7466")
	t.Setenv("CONSOLE_LISTEN_ADDR", ":9000")
	t.Setenv("POSTGRES_SCHEMA", "test_schema")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("EVENT_LOG_CAP", "50")

	cfg := Load()

	if cfg.KernelBaseURL != "http://10.0.0.2:7466" {
		t.Errorf("KernelBaseURL = %q, want 'http://10.0.0.2:7466'", cfg.KernelBaseURL)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want ':9000'", cfg.ListenAddr)
	}
	if cfg.PostgresSchema != "test_schema" {
		t.Errorf("PostgresSchema = %q, want 'test_schema'", cfg.PostgresSchema)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want 'DEBUG'", cfg.LogLevel)
	}
	if cfg.EventLogCap != 50 {
		t.Errorf("EventLogCap = %d, want 50", cfg.EventLogCap)
	}
}

func TestLoadMinClamp(t *testing.T) {
	t.Setenv("EVENT_LOG_CAP", "0")
	cfg := Load()
	if cfg.EventLogCap != 1 {
		t.Errorf("EventLogCap = %d, want clamped to 1", cfg.EventLogCap)
	}
}

func TestLoadReturnsNonNil(t *testing.T) {
	cfg := Load()
	if cfg == nil {
		t.Fatal("Load() returned nil")
	}
}
