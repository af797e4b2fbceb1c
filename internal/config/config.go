// Package config 全局配置加载与管理。
//
// 所有字段通过 struct tag 声明环境变量映射:
//
//	`env:"VAR_NAME" default:"value" min:"0"`
//
// Load() 使用反射自动填充，无需手动逐行赋值。
package config

import (
	"github.com/multi-agent/kernel-console/pkg/util"
)

// Config 应用全局配置，字段名与 .env 变量一一对应。
type Config struct {
	// Kernel 后端
	KernelBaseURL    string `env:"KERNEL_BASE_URL" default:"http://127.0.0.1:7466"`
	KernelEventsURL  string `env:"KERNEL_EVENTS_URL" default:"ws://127.0.0.1:7466/events"`
	KernelTimeoutSec int    `env:"KERNEL_TIMEOUT_SEC" default:"30" min:"1"`

	// Console HTTP API
	ListenAddr string `env:"CONSOLE_LISTEN_ADDR" default:":8090"`

	// 投影器
	EventLogCap     int `env:"EVENT_LOG_CAP" default:"200" min:"1"`
	StreamBufferCap int `env:"STREAM_BUFFER_CAP" default:"8000" min:"1"`

	// PostgreSQL (事件日志持久化, 可选)
	PostgresConnStr        string `env:"POSTGRES_CONNECTION_STRING"`
	PostgresSchema         string `env:"POSTGRES_SCHEMA" default:"public"`
	PostgresPoolMinSize    int    `env:"POSTGRES_POOL_MIN_SIZE" default:"1" min:"1"`
	PostgresPoolMaxSize    int    `env:"POSTGRES_POOL_MAX_SIZE" default:"10" min:"1"`
	PostgresPoolTimeoutSec int    `env:"POSTGRES_POOL_TIMEOUT_SEC" default:"10" min:"1"`

	// 日志
	LogLevel string `env:"LOG_LEVEL" default:"INFO"`
	LogEnv   string `env:"LOG_ENV" default:"production"`
	LogDir   string `env:"LOG_DIR"`
}

// Load 从环境变量加载配置 (通过反射读取 struct tag)。
func Load() *Config {
	var cfg Config
	util.LoadFromEnv(&cfg)
	return &cfg
}
