package kernel

// Agent states as reported in RunState.AgentState.
const (
	StateIdle         = "IDLE"
	StateRunning      = "RUNNING"
	StatePaused       = "PAUSED"
	StateAwaitingUser = "AWAITING_USER"
	StateError        = "ERROR"
	StateFinished     = "FINISHED"
)

// RunState is the authoritative run descriptor. It is always replaced
// wholesale — never field-patched — when an event or command result
// carries a new one.
type RunState struct {
	RunID              string      `json:"runId"`
	AgentState         string      `json:"agentState"`
	Turn               uint32      `json:"turn"`
	Messages           []Message   `json:"messages"`
	ToolContext        ToolContext `json:"toolContext"`
	TaskID             *string     `json:"taskId,omitempty"`
	Plan               *Plan       `json:"plan"`
	Tasks              *TaskList   `json:"tasks"`
	Budget             Budget      `json:"budget"`
	RecentObservations []string    `json:"recentObservations"`
	AutoRun            bool        `json:"autoRun"`
	LastError          *string     `json:"lastError"`
}

// Message is one conversation entry inside RunState.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolContext describes where tool actions execute.
type ToolContext struct {
	Cwd       string            `json:"cwd"`
	Env       map[string]string `json:"env"`
	SessionID *string           `json:"sessionId"`
}

// Budget caps the number of loop steps per run.
type Budget struct {
	MaxSteps  uint32 `json:"maxSteps"`
	UsedSteps uint32 `json:"usedSteps"`
}

// Plan is the kernel's current step plan.
type Plan struct {
	Version uint32     `json:"version"`
	Goal    string     `json:"goal"`
	Steps   []PlanStep `json:"steps"`
}

// PlanStep is a single plan entry.
type PlanStep struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Done   bool   `json:"done"`
}

// TaskList is the kernel's task breakdown.
type TaskList struct {
	Version uint32 `json:"version"`
	Items   []Task `json:"items"`
}

// Task is a single task entry.
type Task struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}
