package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
)

// ========================================
// defaultLogger 数据竞争防护
// 多个 goroutine 并发读写 defaultLogger
// ========================================

func TestDefaultLoggerConcurrentAccess(t *testing.T) {
	// 确保初始状态
	Init("production")

	var wg sync.WaitGroup
	const goroutines = 100

	// 启动读 goroutine (模拟投影器 + API 并发日志)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Info("concurrent log message", "key", "value")
			_ = Get()
		}()
	}

	// 同时执行写操作 (模拟 Init)
	wg.Add(1)
	go func() {
		defer wg.Done()
		Init("development")
	}()

	wg.Wait()
}

// TestGetReturnsCurrentLogger 验证 Get() 返回最新的 logger。
func TestGetReturnsCurrentLogger(t *testing.T) {
	Init("production")
	l := Get()
	if l == nil {
		t.Fatal("Get() returned nil")
	}
}

// TestFromContextFallback 验证无注入时回退到默认日志器。
func TestFromContextFallback(t *testing.T) {
	Init("production")
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("FromContext returned nil")
	}
	if l != Get() {
		t.Error("FromContext without injection should return default logger")
	}
}

// TestWithContextRoundTrip 验证注入的日志器能被取回。
func TestWithContextRoundTrip(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithContext(context.Background(), custom)
	if FromContext(ctx) != custom {
		t.Error("FromContext did not return the injected logger")
	}
}

// TestInitWithFile 验证日志文件创建与关闭。
func TestInitWithFile(t *testing.T) {
	dir := t.TempDir()
	if err := InitWithFile(dir); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}
	defer ShutdownFileHandler()

	Info("file log check")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log dir entries = %d, want 1", len(entries))
	}
}

// TestShutdownFileHandlerIdempotent 验证重复关闭不 panic。
func TestShutdownFileHandlerIdempotent(t *testing.T) {
	ShutdownFileHandler()
	ShutdownFileHandler()
}
