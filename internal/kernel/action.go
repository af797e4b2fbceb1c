package kernel

import "strings"

// Action kinds the kernel dispatches. The wire format is a tagged union
// keyed by "type"; Action flattens it into one struct with optional fields.
const (
	ActionTerminalExec = "terminal.exec"
	ActionTerminalRun  = "terminal.run"
	ActionFsRead       = "fs.read"
	ActionFsWrite      = "fs.write"
	ActionFsSearch     = "fs.search"
	ActionGitStatus    = "git.status"
	ActionGitDiff      = "git.diff"
	ActionTestsRun     = "tests.run"
	ActionPlanUpdate   = "plan.update"
	ActionTaskUpdate   = "task.update"
	ActionUserAsk      = "user.ask"
)

// Action is a structured tool action. Only the fields matching Type are
// populated; everything else decodes to its zero value.
type Action struct {
	Type     string    `json:"type"`
	ID       string    `json:"id"`
	Cmd      string    `json:"cmd,omitempty"`
	Program  string    `json:"program,omitempty"`
	Args     []string  `json:"args,omitempty"`
	Cwd      string    `json:"cwd,omitempty"`
	Path     string    `json:"path,omitempty"`
	Pattern  string    `json:"pattern,omitempty"`
	Paths    []string  `json:"paths,omitempty"`
	Content  string    `json:"content,omitempty"`
	Question string    `json:"question,omitempty"`
	Plan     *Plan     `json:"plan,omitempty"`
	Tasks    *TaskList `json:"tasks,omitempty"`
}

// Describe maps an action to a one-line display string. Pure and total:
// always returns a string, defaulting to empty where a field is absent,
// and to the raw kind for unrecognized types.
func Describe(a Action) string {
	switch a.Type {
	case ActionTerminalExec:
		return a.Cmd
	case ActionTerminalRun, ActionTestsRun:
		return strings.TrimSpace(a.Program + " " + strings.Join(a.Args, " "))
	case ActionFsRead, ActionFsWrite:
		return a.Path
	case ActionFsSearch:
		return a.Pattern
	case ActionGitStatus:
		return "git status"
	case ActionGitDiff:
		if a.Path != "" {
			return "git diff " + a.Path
		}
		return "git diff"
	default:
		return a.Type
	}
}
