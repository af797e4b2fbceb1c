package runview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

// fakeKernelState 提供只读 /state 快照并统计请求次数。
func fakeKernelState(t *testing.T, calls *atomic.Int32, state kernel.RunState) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(state)
	}))
}

func TestLoaderBootstrapsOnceAndSeedsHistory(t *testing.T) {
	var calls atomic.Int32
	ks := fakeKernelState(t, &calls, kernel.RunState{
		RunID:      "run-7",
		AgentState: kernel.StateRunning,
		Messages: []kernel.Message{
			{Role: "user", Content: "fix the build"},
			{Role: "assistant", Content: "looking into it"},
			{Role: "system", Content: "session resumed"},
		},
	})
	defer ks.Close()

	mgr := NewManager()
	kc := kernel.NewClient(ks.URL, "ws://127.0.0.1:1/events", 2*time.Second)
	loader := NewLoader(kc, mgr, nil)

	loader.Load(context.Background())
	loader.Load(context.Background())

	if got := calls.Load(); got != 1 {
		t.Errorf("snapshot fetched %d times, want exactly 1", got)
	}

	run := mgr.Run()
	if run == nil || run.RunID != "run-7" {
		t.Fatalf("run state not installed from snapshot: %+v", run)
	}

	chat := mgr.ChatTimeline()
	if len(chat) != 3 {
		t.Fatalf("seeded entries = %d, want 3", len(chat))
	}
	if chat[0].Role != RoleUser || chat[1].Role != RoleAssistant || chat[2].Role != RoleSystem {
		t.Errorf("seeded roles = %s/%s/%s", chat[0].Role, chat[1].Role, chat[2].Role)
	}
	for i, entry := range chat {
		if entry.ID == "" {
			t.Errorf("seeded entry %d has no id", i)
		}
	}
}

func TestLoaderDeadKernelLeavesUsableState(t *testing.T) {
	mgr := NewManager()
	kc := kernel.NewClient("http://127.0.0.1:1", "ws://127.0.0.1:1/events", time.Second)
	NewLoader(kc, mgr, nil).Load(context.Background())

	if run := mgr.Run(); run != nil {
		t.Fatalf("run state = %+v, want nil with an unreachable kernel", run)
	}

	// 启动失败不影响后续实时事件的投影。
	raw, _ := json.Marshal(map[string]any{"content": "hello"})
	mgr.Apply(kernel.Event{ID: "u1", Type: kernel.EventUserMessage, Ts: 1, Payload: raw})

	chat := mgr.ChatTimeline()
	if len(chat) != 1 || chat[0].Content != "hello" {
		t.Errorf("live event not projected after failed bootstrap: %+v", chat)
	}
}

func TestLoaderDoesNotReseedPopulatedTimeline(t *testing.T) {
	var calls atomic.Int32
	ks := fakeKernelState(t, &calls, kernel.RunState{
		RunID:    "run-8",
		Messages: []kernel.Message{{Role: "user", Content: "old history"}},
	})
	defer ks.Close()

	mgr := NewManager()
	raw, _ := json.Marshal(map[string]any{"content": "live first"})
	mgr.Apply(kernel.Event{ID: "u1", Type: kernel.EventUserMessage, Ts: 1, Payload: raw})

	kc := kernel.NewClient(ks.URL, "ws://127.0.0.1:1/events", 2*time.Second)
	NewLoader(kc, mgr, nil).Load(context.Background())

	chat := mgr.ChatTimeline()
	if len(chat) != 1 || chat[0].Content != "live first" {
		t.Errorf("snapshot history clobbered a live timeline: %+v", chat)
	}
}
