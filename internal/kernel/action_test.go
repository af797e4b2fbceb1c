package kernel

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{"terminal exec", Action{Type: ActionTerminalExec, ID: "a1", Cmd: "ls -la"}, "ls -la"},
		{"terminal exec empty cmd", Action{Type: ActionTerminalExec, ID: "a1"}, ""},
		{"terminal run", Action{Type: ActionTerminalRun, ID: "a2", Program: "cargo", Args: []string{"build", "--release"}}, "cargo build --release"},
		{"terminal run no args", Action{Type: ActionTerminalRun, ID: "a2", Program: "make"}, "make"},
		{"tests run", Action{Type: ActionTestsRun, ID: "a3", Program: "pytest", Args: []string{"-x"}}, "pytest -x"},
		{"fs read", Action{Type: ActionFsRead, ID: "a4", Path: "/tmp/a.txt"}, "/tmp/a.txt"},
		{"fs write", Action{Type: ActionFsWrite, ID: "a5", Path: "src/main.go", Content: "x"}, "src/main.go"},
		{"fs search", Action{Type: ActionFsSearch, ID: "a6", Pattern: "TODO"}, "TODO"},
		{"git status", Action{Type: ActionGitStatus, ID: "a7"}, "git status"},
		{"git diff no path", Action{Type: ActionGitDiff, ID: "a8"}, "git diff"},
		{"git diff with path", Action{Type: ActionGitDiff, ID: "a8", Path: "cmd/"}, "git diff cmd/"},
		{"unknown kind", Action{Type: "plan.update", ID: "a9"}, "plan.update"},
		{"empty kind", Action{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.action); got != tt.want {
				t.Errorf("Describe(%s) = %q, want %q", tt.action.Type, got, tt.want)
			}
		})
	}
}
