package runview

import (
	"strings"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

func (m *Manager) handleStateChanged(evt kernel.Event) {
	p := kernel.DecodeState(evt.Payload)
	if p.Reason == "start" {
		// New run: drop everything, keep the trigger event as the sole
		// ring entry. Diagnostic logs persist across the boundary.
		m.resetLocked()
		m.pushEventLocked(evt)
	}
	if p.State != nil {
		m.replaceRunLocked(p.State)
	}
}

func (m *Manager) handleUserMessage(evt kernel.Event) {
	p := kernel.DecodeMessage(evt.Payload)
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return
	}
	m.appendChatEntryLocked(evt, RoleUser, content)
}

func (m *Manager) handleAgentMessage(evt kernel.Event) {
	p := kernel.DecodeMessage(evt.Payload)
	content := strings.TrimSpace(p.Content)
	if content != "" {
		m.appendChatEntryLocked(evt, RoleAssistant, content)
	}
	// The finalized message supersedes whatever was streaming, even when
	// it turns out to be blank.
	m.llm = LLMStream{}
}

func (m *Manager) handleAgentMessageChunk(evt kernel.Event) {
	p := kernel.DecodeMessage(evt.Payload)
	if p.Content == "" {
		return
	}
	if m.llm.Active {
		m.llm.Content = capTail(m.llm.Content+p.Content, m.streamCap)
	} else {
		m.llm.Content = capTail(p.Content, m.streamCap)
	}
	m.llm.Active = true
	m.llm.UpdatedAt = eventTs(evt)
}

func (m *Manager) handleAgentMessageDone(evt kernel.Event) {
	m.llm = LLMStream{}
}

func (m *Manager) handleToolCallStarted(evt kernel.Event) {
	p := kernel.DecodeToolStart(evt.Payload)
	id := strings.TrimSpace(p.Action.ID)
	if id == "" {
		// An id-less start can never be matched by chunk or finish
		// events, so it is dropped rather than given a synthetic id.
		return
	}
	if _, dup := m.index[id]; dup {
		return
	}

	ts := eventTs(evt)
	m.toolOutputs[id] = ""

	if m.activeEntry < 0 || m.activeEntry >= len(m.chat) {
		m.appendChatEntryLocked(evt, RoleSystem, "")
	}

	tc := ToolCall{
		ID:        id,
		Tool:      p.Action.Type,
		Detail:    kernel.Describe(p.Action),
		Status:    ToolStatusRunning,
		StartedAt: ts,
	}

	entry := &m.chat[m.activeEntry]
	entry.ToolCalls = append(entry.ToolCalls, ChatToolCall{ToolCall: tc})
	m.index[id] = toolPos{entry: m.activeEntry, sub: len(entry.ToolCalls) - 1}

	next := make([]ToolCall, 0, len(m.toolCalls)+1)
	next = append(next, tc)
	next = append(next, m.toolCalls...)
	m.toolCalls = next
}

func (m *Manager) handleToolCallChunk(evt kernel.Event) {
	p := kernel.DecodeToolChunk(evt.Payload)
	if p.ActionID == "" || p.Chunk == "" {
		return
	}
	buf, ok := m.toolOutputs[p.ActionID]
	if !ok {
		return
	}
	m.toolOutputs[p.ActionID] = capTail(buf+p.Chunk, m.streamCap)

	if pos, ok := m.index[p.ActionID]; ok {
		sub := &m.chat[pos.entry].ToolCalls[pos.sub]
		sub.Output = capTail(sub.Output+p.Chunk, m.streamCap)
	}
}

func (m *Manager) handleToolCallFinished(evt kernel.Event) {
	p := kernel.DecodeToolFinish(evt.Payload)
	id := strings.TrimSpace(p.Action.ID)
	if id == "" {
		return
	}

	status := ToolStatusError
	if p.OK {
		status = ToolStatusOK
	}
	ts := eventTs(evt)

	for i := range m.toolCalls {
		if m.toolCalls[i].ID != id {
			continue
		}
		m.toolCalls[i].Status = status
		m.toolCalls[i].ExitCode = p.ExitCode
		m.toolCalls[i].Summary = p.Summary
		m.toolCalls[i].FinishedAt = &ts
		break
	}

	if pos, ok := m.index[id]; ok {
		sub := &m.chat[pos.entry].ToolCalls[pos.sub]
		sub.Status = status
		sub.ExitCode = p.ExitCode
		sub.Summary = p.Summary
		fin := ts
		sub.FinishedAt = &fin
		if sub.Output == "" {
			sub.Output = m.toolOutputs[id]
		}
	}
}

func (m *Manager) handleError(evt kernel.Event) {
	p := kernel.DecodeError(evt.Payload)
	if p.Message == "" {
		return
	}
	m.pushLogLocked("error", p.Message, eventTs(evt))
}

func (m *Manager) handleJudgeResult(evt kernel.Event) {
	p := kernel.DecodeJudge(evt.Payload)
	if len(p.Result) == 0 {
		return
	}
	m.judgeResult = append(m.judgeResult[:0:0], p.Result...)
	m.focusID = evt.ID
}
