// util_test.go — ClampInt / Env* / SafeGo 表驱动测试。
package util

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestClampInt(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below_min", -1, 0, 10, 0},
		{"above_max", 20, 0, 10, 10},
		{"in_range", 5, 0, 10, 5},
		{"at_min", 0, 0, 10, 0},
		{"at_max", 10, 0, 10, 10},
		{"negative_range", -5, -10, -1, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampInt(tt.v, tt.lo, tt.hi)
			if got != tt.want {
				t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("KC_TEST_INT", "42")
	if got := EnvInt("KC_TEST_INT", 1, 0); got != 42 {
		t.Errorf("EnvInt = %d, want 42", got)
	}
	if got := EnvInt("KC_TEST_INT_MISSING", 7, 0); got != 7 {
		t.Errorf("EnvInt missing = %d, want 7", got)
	}
	t.Setenv("KC_TEST_INT", "not-a-number")
	if got := EnvInt("KC_TEST_INT", 7, 0); got != 7 {
		t.Errorf("EnvInt invalid = %d, want 7", got)
	}
	t.Setenv("KC_TEST_INT", "-5")
	if got := EnvInt("KC_TEST_INT", 7, 0); got != 0 {
		t.Errorf("EnvInt below min = %d, want 0", got)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"on", false, true},
		{"0", true, false},
		{"off", true, false},
		{"garbage", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv("KC_TEST_BOOL", tt.raw)
		if got := EnvBool("KC_TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("EnvBool(%q, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	type cfg struct {
		Name    string  `env:"KC_TEST_NAME" default:"console"`
		Limit   int     `env:"KC_TEST_LIMIT" default:"100" min:"1"`
		Ratio   float64 `env:"KC_TEST_RATIO" default:"0.5" min:"0"`
		Enabled bool    `env:"KC_TEST_ENABLED" default:"true"`
		Skipped string
	}

	t.Setenv("KC_TEST_LIMIT", "250")
	var c cfg
	LoadFromEnv(&c)

	if c.Name != "console" {
		t.Errorf("Name = %q, want console", c.Name)
	}
	if c.Limit != 250 {
		t.Errorf("Limit = %d, want 250", c.Limit)
	}
	if c.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", c.Ratio)
	}
	if !c.Enabled {
		t.Error("Enabled = false, want true")
	}
}

func TestLoadFromEnv_NilSafe(t *testing.T) {
	// nil 指针不应 panic
	LoadFromEnv(nil)
	var p *struct{}
	LoadFromEnv(p)
}

func TestSafeGo_NormalExecution(t *testing.T) {
	var done atomic.Bool
	SafeGo(func() {
		done.Store(true)
	})
	time.Sleep(50 * time.Millisecond)
	if !done.Load() {
		t.Error("SafeGo: function was not executed")
	}
}

func TestSafeGo_PanicDoesNotPropagate(t *testing.T) {
	// SafeGo 应捕获 panic，不扩散到调用方
	var wg sync.WaitGroup
	wg.Add(1)

	SafeGo(func() {
		defer wg.Done()
		panic("test panic")
	})

	// 如果 panic 扩散，测试进程会崩溃 — 走到这里说明捕获成功
	wg.Wait()
}

func TestSafeGo_MultipleConcurrent(t *testing.T) {
	const n = 100
	var counter atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		SafeGo(func() {
			defer wg.Done()
			counter.Add(1)
		})
	}

	wg.Wait()
	if got := counter.Load(); got != n {
		t.Errorf("SafeGo concurrent: executed %d/%d", got, n)
	}
}
