package runview

import (
	"encoding/json"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

// Tool call status labels.
const (
	ToolStatusRunning = "running"
	ToolStatusOK      = "ok"
	ToolStatusError   = "error"
)

// Chat entry roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ToolCall is the flat-list view of a tool invocation. One entry per unique
// id, mutated in place by later events referencing the same id.
type ToolCall struct {
	ID         string `json:"id"`
	Tool       string `json:"tool"`
	Detail     string `json:"detail"`
	Status     string `json:"status"`
	StartedAt  int64  `json:"startedAt"`
	FinishedAt *int64 `json:"finishedAt,omitempty"`
	ExitCode   *int   `json:"exitCode,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// ChatToolCall is a tool call embedded in a chat entry, with its own
// accumulating output buffer. Owned exclusively by the parent ChatEntry.
type ChatToolCall struct {
	ToolCall
	Output string `json:"output"`
}

// ChatEntry is one item of the reconstructed chat timeline. Entries are
// append-only: never reordered or removed outside a full reset.
type ChatEntry struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp int64          `json:"timestamp"`
	ToolCalls []ChatToolCall `json:"toolCalls"`
}

// LLMStream is the in-flight model output buffer.
type LLMStream struct {
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"`
	Active    bool   `json:"active"`
}

// LogEntry is one diagnostic log line (most-recent-first).
type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Ts      int64  `json:"ts"`
}

// View is the read-only projection handed to consumers. Every field is a
// deep copy; readers never observe reducer mutation.
type View struct {
	Run             *kernel.RunState  `json:"run"`
	ToolCalls       []ToolCall        `json:"toolCalls"`
	Logs            []LogEntry        `json:"logs"`
	Events          []kernel.Event    `json:"events"`
	ToolOutputs     map[string]string `json:"toolOutputs"`
	ChatEntries     []ChatEntry       `json:"chatEntries"`
	LLMStream       LLMStream         `json:"llmStream"`
	JudgeResult     json.RawMessage   `json:"judgeResult,omitempty"`
	TimelineFocusID string            `json:"timelineFocusId,omitempty"`
}

// toolPos locates a ChatToolCall inside the chat timeline. Non-owning:
// cleared wholesale on reset, entries never removed individually.
type toolPos struct {
	entry int
	sub   int
}
