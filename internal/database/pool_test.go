package database

import (
	"context"
	"math"
	"testing"

	"github.com/multi-agent/kernel-console/internal/config"
)

func TestSafeInt32(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int32
	}{
		{"in range", 7, 7},
		{"zero", 0, 0},
		{"negative clamped", -5, 0},
		{"overflow clamped", math.MaxInt32 + 1, math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeInt32(tt.in, tt.name); got != tt.want {
				t.Errorf("safeInt32(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewPoolRequiresConnStr(t *testing.T) {
	_, err := NewPool(context.Background(), &config.Config{})
	if err == nil {
		t.Fatal("expected error when connection string is empty")
	}
}
