package runview

import (
	"github.com/multi-agent/kernel-console/internal/kernel"
)

// Snapshot returns a deep copy of the full projection. No field aliases
// reducer-owned memory.
func (m *Manager) Snapshot() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := View{
		Run:             cloneRunState(m.run),
		ToolCalls:       cloneToolCalls(m.toolCalls),
		Logs:            make([]LogEntry, len(m.logs)),
		Events:          cloneEvents(m.events),
		ToolOutputs:     make(map[string]string, len(m.toolOutputs)),
		ChatEntries:     cloneChatEntries(m.chat),
		LLMStream:       m.llm,
		TimelineFocusID: m.focusID,
	}
	copy(v.Logs, m.logs)
	for k, val := range m.toolOutputs {
		v.ToolOutputs[k] = val
	}
	if len(m.judgeResult) > 0 {
		v.JudgeResult = append(v.JudgeResult, m.judgeResult...)
	}
	return v
}

func cloneToolCalls(in []ToolCall) []ToolCall {
	if in == nil {
		return nil
	}
	out := make([]ToolCall, len(in))
	copy(out, in)
	for i := range out {
		if out[i].FinishedAt != nil {
			f := *out[i].FinishedAt
			out[i].FinishedAt = &f
		}
		if out[i].ExitCode != nil {
			c := *out[i].ExitCode
			out[i].ExitCode = &c
		}
	}
	return out
}

func cloneChatEntries(in []ChatEntry) []ChatEntry {
	if in == nil {
		return nil
	}
	out := make([]ChatEntry, len(in))
	copy(out, in)
	for i := range out {
		if out[i].ToolCalls == nil {
			continue
		}
		subs := make([]ChatToolCall, len(out[i].ToolCalls))
		copy(subs, out[i].ToolCalls)
		for j := range subs {
			if subs[j].FinishedAt != nil {
				f := *subs[j].FinishedAt
				subs[j].FinishedAt = &f
			}
			if subs[j].ExitCode != nil {
				c := *subs[j].ExitCode
				subs[j].ExitCode = &c
			}
		}
		out[i].ToolCalls = subs
	}
	return out
}

func cloneEvents(in []kernel.Event) []kernel.Event {
	if in == nil {
		return nil
	}
	out := make([]kernel.Event, len(in))
	copy(out, in)
	for i := range out {
		if len(out[i].Payload) > 0 {
			out[i].Payload = append(out[i].Payload[:0:0], out[i].Payload...)
		}
	}
	return out
}

func cloneRunState(in *kernel.RunState) *kernel.RunState {
	if in == nil {
		return nil
	}
	out := *in

	if in.Messages != nil {
		out.Messages = make([]kernel.Message, len(in.Messages))
		copy(out.Messages, in.Messages)
	}
	if in.ToolContext.Env != nil {
		out.ToolContext.Env = make(map[string]string, len(in.ToolContext.Env))
		for k, v := range in.ToolContext.Env {
			out.ToolContext.Env[k] = v
		}
	}
	if in.ToolContext.SessionID != nil {
		s := *in.ToolContext.SessionID
		out.ToolContext.SessionID = &s
	}
	if in.TaskID != nil {
		s := *in.TaskID
		out.TaskID = &s
	}
	if in.LastError != nil {
		s := *in.LastError
		out.LastError = &s
	}
	if in.Plan != nil {
		p := *in.Plan
		if in.Plan.Steps != nil {
			p.Steps = make([]kernel.PlanStep, len(in.Plan.Steps))
			copy(p.Steps, in.Plan.Steps)
		}
		out.Plan = &p
	}
	if in.Tasks != nil {
		t := *in.Tasks
		if in.Tasks.Items != nil {
			t.Items = make([]kernel.Task, len(in.Tasks.Items))
			copy(t.Items, in.Tasks.Items)
			for i := range t.Items {
				if t.Items[i].Notes != nil {
					n := *t.Items[i].Notes
					t.Items[i].Notes = &n
				}
			}
		}
		out.Tasks = &t
	}
	if in.RecentObservations != nil {
		out.RecentObservations = make([]string, len(in.RecentObservations))
		copy(out.RecentObservations, in.RecentObservations)
	}
	return &out
}
