package services

import (
	"context"
	"strings"
	"sync"
)

// MockCall records the inputs of one MockProvider.Generate invocation.
type MockCall struct {
	Key        string
	UserPrompt string
}

// MockProvider is a configurable Provider for tests.
type MockProvider struct {
	mu    sync.Mutex
	calls []MockCall

	KindName  string
	Keyed     bool
	KeyPrefix string

	// GenerateFunc is invoked per call when set; otherwise Response and
	// Err are returned as-is.
	GenerateFunc func(call int, key string) (string, error)
	Response     string
	Err          error
}

func (m *MockProvider) Kind() string {
	if m.KindName == "" {
		return "mock"
	}
	return m.KindName
}

func (m *MockProvider) NeedsCredential() bool {
	return m.Keyed
}

func (m *MockProvider) ValidCredential(key string) bool {
	if m.KeyPrefix == "" {
		return true
	}
	return strings.HasPrefix(key, m.KeyPrefix)
}

func (m *MockProvider) Generate(_ context.Context, key, _, userPrompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Key: key, UserPrompt: userPrompt})
	call := len(m.calls)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(call, key)
	}
	return m.Response, m.Err
}

// Calls returns a copy of the recorded invocations.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
