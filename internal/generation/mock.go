package generation

import (
	"context"
	"sync"
)

// MockGenerator is a test double for the Generator interface. It records
// prompts and returns canned responses or errors in order.
type MockGenerator struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Prompts   []string
	calls     int
}

var _ Generator = (*MockGenerator)(nil)

// Generate implements Generator. Responses and errors are consumed in
// call order; the last configured value repeats once exhausted.
func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	idx := m.calls
	m.calls++

	if len(m.Errs) > 0 {
		e := m.Errs[min(idx, len(m.Errs)-1)]
		if e != nil {
			return "", e
		}
	}
	if len(m.Responses) == 0 {
		return "", ErrInvalidResponse
	}
	return m.Responses[min(idx, len(m.Responses)-1)], nil
}

// Calls returns how many times Generate was invoked.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
