package runview

import (
	"strings"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

// appendChatEntryLocked appends a timeline entry and makes it the active
// host for subsequent tool calls. The kernel event id is reused when
// present so replayed events stay stable; otherwise an id is generated.
func (m *Manager) appendChatEntryLocked(evt kernel.Event, role, content string) {
	id := evt.ID
	if id == "" {
		id = m.nextEntryIDLocked(role)
	}
	m.chat = append(m.chat, ChatEntry{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: eventTs(evt),
	})
	m.activeEntry = len(m.chat) - 1
}

// SeedHistory populates the chat timeline from persisted run messages.
// It is a no-op unless the timeline is empty, so a live event stream that
// raced ahead of the snapshot is never clobbered.
func (m *Manager) SeedHistory(messages []kernel.Message, ids []string, baseTs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.chat) > 0 {
		return
	}
	for i, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		if id == "" {
			id = m.nextEntryIDLocked("history")
		}
		m.chat = append(m.chat, ChatEntry{
			ID:        id,
			Role:      normalizeRole(msg.Role),
			Content:   content,
			Timestamp: baseTs + int64(i),
		})
	}
	m.activeEntry = len(m.chat) - 1
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAssistant:
		return RoleAssistant
	case RoleSystem:
		return RoleSystem
	default:
		return RoleUser
	}
}

// ChatTimeline returns a deep copy of the chat entries.
func (m *Manager) ChatTimeline() []ChatEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneChatEntries(m.chat)
}

// FlatToolCalls returns a copy of the flat tool list, most recent first.
func (m *Manager) FlatToolCalls() []ToolCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneToolCalls(m.toolCalls)
}

// EventLog returns a copy of the raw event ring, most recent first.
func (m *Manager) EventLog() []kernel.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneEvents(m.events)
}

// DiagnosticLog returns a copy of the diagnostic entries, most recent first.
func (m *Manager) DiagnosticLog() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogEntry, len(m.logs))
	copy(out, m.logs)
	return out
}

// Run returns a deep copy of the current run state, nil when unknown.
func (m *Manager) Run() *kernel.RunState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRunState(m.run)
}
