package executor

import "os/exec"

// CommandExecutor abstracts execution of external commands (docker, git,
// certbot) so callers can be tested without touching the system.
type CommandExecutor interface {
	// Execute runs a command and returns its combined output
	Execute(name string, args ...string) ([]byte, error)

	// LookPath searches PATH for an executable
	LookPath(file string) (string, error)
}

// SystemExecutor runs commands through os/exec.
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined stdout/stderr
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CommandCall records one command execution for verification in tests.
type CommandCall struct {
	Name string
	Args []string
}

// MockExecutor is a test double that records calls and returns canned results.
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// Execute records the call and delegates to ExecuteFunc when set
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath delegates to LookPathFunc when set
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// LastCall returns the most recent recorded call, or nil when none were made.
func (m *MockExecutor) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
