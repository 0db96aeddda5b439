package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// MockOracle implements Oracle for testing. Responses are keyed by query;
// unknown queries return an empty list. FailQueries forces errors for
// specific queries to exercise degradation paths.
type MockOracle struct {
	mu          sync.Mutex
	Responses   map[string][]string
	FailQueries map[string]bool
	Calls       []string
}

// NewMockOracle creates a mock with the given canned responses.
func NewMockOracle(responses map[string][]string) *MockOracle {
	return &MockOracle{
		Responses:   responses,
		FailQueries: map[string]bool{},
	}
}

// Fetch returns the canned response for a query and records the call.
func (m *MockOracle) Fetch(ctx context.Context, query string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, query)
	if m.FailQueries[query] {
		return nil, errors.New("mock oracle failure")
	}
	return m.Responses[query], nil
}

// CallCount returns how many oracle calls were made.
func (m *MockOracle) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Called reports whether any recorded call contains substr.
func (m *MockOracle) Called(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if strings.Contains(call, substr) {
			return true
		}
	}
	return false
}
