package runview

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

// Default capacities for the bounded structures.
const (
	DefaultEventLogCap = 200
	DefaultStreamCap   = 8000
	diagnosticLogCap   = 200
)

type eventHandler func(m *Manager, evt kernel.Event)

var eventHandlers = map[string]eventHandler{
	kernel.EventStateChanged:      (*Manager).handleStateChanged,
	kernel.EventUserMessage:       (*Manager).handleUserMessage,
	kernel.EventAgentMessage:      (*Manager).handleAgentMessage,
	kernel.EventAgentMessageChunk: (*Manager).handleAgentMessageChunk,
	kernel.EventAgentMessageDone:  (*Manager).handleAgentMessageDone,
	kernel.EventToolCallStarted:   (*Manager).handleToolCallStarted,
	kernel.EventToolCallChunk:     (*Manager).handleToolCallChunk,
	kernel.EventToolCallFinished:  (*Manager).handleToolCallFinished,
	kernel.EventError:             (*Manager).handleError,
	kernel.EventJudgeResult:       (*Manager).handleJudgeResult,
}

// Manager owns every projection structure behind a single mutex. All
// mutation flows through Apply or ReplaceRun; readers only ever receive
// deep copies. Methods with the Locked suffix require m.mu held.
type Manager struct {
	mu sync.RWMutex

	eventCap  int
	streamCap int

	run         *kernel.RunState
	toolCalls   []ToolCall // most-recent-first
	logs        []LogEntry // most-recent-first, survives reset
	events      []kernel.Event
	toolOutputs map[string]string
	chat        []ChatEntry
	llm         LLMStream
	judgeResult json.RawMessage
	focusID     string

	index       map[string]toolPos
	activeEntry int // index into chat, -1 when no entry can host tool calls
	seq         uint64

	onApply func(kernel.Event)
}

func NewManager() *Manager {
	return NewManagerSized(DefaultEventLogCap, DefaultStreamCap)
}

// NewManagerSized builds a manager with explicit caps for the event ring
// and the streaming buffers. Caps below 1 are raised to 1.
func NewManagerSized(eventCap, streamCap int) *Manager {
	if eventCap < 1 {
		eventCap = 1
	}
	if streamCap < 1 {
		streamCap = 1
	}
	return &Manager{
		eventCap:    eventCap,
		streamCap:   streamCap,
		toolOutputs: make(map[string]string),
		index:       make(map[string]toolPos),
		activeEntry: -1,
	}
}

// SetOnApply registers a hook invoked after every Apply, outside the lock.
// Used by the websocket fan-out; a nil fn clears it.
func (m *Manager) SetOnApply(fn func(kernel.Event)) {
	m.mu.Lock()
	m.onApply = fn
	m.mu.Unlock()
}

// Apply feeds one kernel event through the reducer. Events are recorded to
// the event ring unconditionally, then dispatched by type; unknown types
// only appear in the ring.
func (m *Manager) Apply(evt kernel.Event) {
	m.mu.Lock()
	m.pushEventLocked(evt)
	if h, ok := eventHandlers[evt.Type]; ok {
		h(m, evt)
	}
	hook := m.onApply
	m.mu.Unlock()

	if hook != nil {
		hook(evt)
	}
}

// ReplaceRun swaps the run state wholesale, as from a snapshot fetch.
// Nothing else is touched.
func (m *Manager) ReplaceRun(state *kernel.RunState) {
	m.mu.Lock()
	m.replaceRunLocked(state)
	m.mu.Unlock()
}

func (m *Manager) replaceRunLocked(state *kernel.RunState) {
	if state == nil {
		m.run = nil
		return
	}
	cp := cloneRunState(state)
	m.run = cp
}

// resetLocked discards every per-run structure. The diagnostic log is
// deliberately kept: operators need errors from the previous run visible
// across a restart.
func (m *Manager) resetLocked() {
	m.run = nil
	m.toolCalls = nil
	m.events = nil
	m.toolOutputs = make(map[string]string)
	m.chat = nil
	m.llm = LLMStream{}
	m.judgeResult = nil
	m.focusID = ""
	m.index = make(map[string]toolPos)
	m.activeEntry = -1
}

func (m *Manager) pushEventLocked(evt kernel.Event) {
	next := make([]kernel.Event, 0, len(m.events)+1)
	next = append(next, evt)
	next = append(next, m.events...)
	if len(next) > m.eventCap {
		next = next[:m.eventCap]
	}
	m.events = next
}

func (m *Manager) pushLogLocked(level, message string, ts int64) {
	next := make([]LogEntry, 0, len(m.logs)+1)
	next = append(next, LogEntry{Level: level, Message: message, Ts: ts})
	next = append(next, m.logs...)
	if len(next) > diagnosticLogCap {
		next = next[:diagnosticLogCap]
	}
	m.logs = next
}

func (m *Manager) nextEntryIDLocked(kind string) string {
	m.seq++
	return fmt.Sprintf("%s-%d-%d", kind, time.Now().UnixMilli(), m.seq)
}

func eventTs(evt kernel.Event) int64 {
	if evt.Ts > 0 {
		return evt.Ts
	}
	return time.Now().UnixMilli()
}

// capTail keeps at most limit runes from the end of s.
func capTail(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[len(r)-limit:])
}
