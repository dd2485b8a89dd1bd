package docsource

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// MockExecutor records commands and returns configured responses.
// This is exported for use in integration tests.
type MockExecutor struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []ExecutorCall
}

// MockResponse is returned for the first command line starting with Prefix.
type MockResponse struct {
	Prefix string
	Output []byte
	Err    error
}

// ExecutorCall records a command invocation.
type ExecutorCall struct {
	Dir  string
	Name string
	Args []string
}

// CommandLine returns the call as a single space separated string.
func (c ExecutorCall) CommandLine() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// NewMockExecutor creates an executor with no responses configured.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddResponse queues a response for the next command matching prefix.
func (m *MockExecutor) AddResponse(prefix string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Prefix: prefix, Output: output, Err: err})
}

// Run implements CommandExecutor. Each configured response is used once.
func (m *MockExecutor) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := ExecutorCall{Dir: dir, Name: name, Args: args}
	m.calls = append(m.calls, call)

	line := call.CommandLine()
	for i, r := range m.responses {
		if strings.HasPrefix(line, r.Prefix) {
			m.responses = append(m.responses[:i], m.responses[i+1:]...)
			return r.Output, r.Err
		}
	}

	return nil, errors.New("no mock response configured for: " + line)
}

// Calls returns the recorded command invocations.
func (m *MockExecutor) Calls() []ExecutorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutorCall(nil), m.calls...)
}

// MustGetLastCall returns the last recorded call and fails the test when
// there is none.
func (m *MockExecutor) MustGetLastCall(t *testing.T) ExecutorCall {
	t.Helper()
	calls := m.Calls()
	if len(calls) == 0 {
		t.Fatal("Expected at least one command call")
	}
	return calls[len(calls)-1]
}
