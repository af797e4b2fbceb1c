// Package kernel defines the wire vocabulary of the backend kernel process
// (events, actions, run state) and the client used to talk to it.
package kernel

import "encoding/json"

// Event is the immutable envelope every kernel notification arrives in.
// Seq and Ts are advisory: ordering trust is purely transport order.
type Event struct {
	ID      string          `json:"id"`
	RunID   string          `json:"runId"`
	Ts      int64           `json:"ts"`
	Seq     uint64          `json:"seq"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Kernel event types, exactly as emitted by the backend.
const (
	EventStateChanged        = "StateChanged"
	EventUserMessage         = "UserMessage"
	EventAgentMessage        = "AgentMessage"
	EventAgentMessageChunk   = "AgentMessageChunk"
	EventAgentMessageDone    = "AgentMessageDone"
	EventAgentActionProposed = "AgentActionProposed"
	EventToolCallStarted     = "ToolCallStarted"
	EventToolCallChunk       = "ToolCallChunk"
	EventToolCallFinished    = "ToolCallFinished"
	EventObservation         = "Observation"
	EventError               = "Error"
	EventJudgeResult         = "JudgeResult"
)

// StatePayload is carried by StateChanged events. Reason "start" marks the
// beginning of a fresh run.
type StatePayload struct {
	Reason string    `json:"reason"`
	State  *RunState `json:"state"`
}

// MessagePayload is carried by UserMessage / AgentMessage / AgentMessageChunk.
type MessagePayload struct {
	Content string `json:"content"`
}

// ToolStartPayload is carried by ToolCallStarted and AgentActionProposed.
type ToolStartPayload struct {
	Action Action `json:"action"`
}

// ToolChunkPayload is carried by ToolCallChunk.
type ToolChunkPayload struct {
	ActionID string `json:"action_id"`
	Chunk    string `json:"chunk"`
}

// ToolFinishPayload is carried by ToolCallFinished.
type ToolFinishPayload struct {
	Action   Action `json:"action"`
	Summary  string `json:"summary"`
	OK       bool   `json:"ok"`
	ExitCode *int   `json:"exit_code"`
}

// ErrorPayload is carried by Error events.
type ErrorPayload struct {
	Message string `json:"message"`
}

// JudgePayload is carried by JudgeResult events. The verdict structure is
// opaque to the projector and passed through to readers as-is.
type JudgePayload struct {
	Result json.RawMessage `json:"result"`
}

// decodeInto unmarshals raw into out, tolerating malformed payloads.
// Missing or broken fields leave out at its zero value; no error is ever
// surfaced, a bad payload must never fail the pipeline.
func decodeInto(raw json.RawMessage, out any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

// DecodeState extracts a StatePayload from a StateChanged event payload.
func DecodeState(raw json.RawMessage) StatePayload {
	var p StatePayload
	decodeInto(raw, &p)
	return p
}

// DecodeMessage extracts a MessagePayload.
func DecodeMessage(raw json.RawMessage) MessagePayload {
	var p MessagePayload
	decodeInto(raw, &p)
	return p
}

// DecodeToolStart extracts a ToolStartPayload.
func DecodeToolStart(raw json.RawMessage) ToolStartPayload {
	var p ToolStartPayload
	decodeInto(raw, &p)
	return p
}

// DecodeToolChunk extracts a ToolChunkPayload.
func DecodeToolChunk(raw json.RawMessage) ToolChunkPayload {
	var p ToolChunkPayload
	decodeInto(raw, &p)
	return p
}

// DecodeToolFinish extracts a ToolFinishPayload.
func DecodeToolFinish(raw json.RawMessage) ToolFinishPayload {
	var p ToolFinishPayload
	decodeInto(raw, &p)
	return p
}

// DecodeError extracts an ErrorPayload.
func DecodeError(raw json.RawMessage) ErrorPayload {
	var p ErrorPayload
	decodeInto(raw, &p)
	return p
}

// DecodeJudge extracts a JudgePayload.
func DecodeJudge(raw json.RawMessage) JudgePayload {
	var p JudgePayload
	decodeInto(raw, &p)
	return p
}
