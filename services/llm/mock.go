package llm

import (
	"context"
	"sync"
	"time"
)

// MockClient is a scripted LLMClient for tests.
//
// Thread Safety: Safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// replies are returned in order; when exhausted, defaultReply is used.
	replies      []string
	defaultReply string

	// replyFunc, when set, takes precedence over queued replies.
	replyFunc func(prompt string, params GenerationParams) (string, error)

	// err, when set, is returned by every Generate call.
	err error

	// delay adds artificial latency per call.
	delay time.Duration

	// calls records every Generate invocation.
	calls []GenerateCall
}

// GenerateCall records one call to Generate.
type GenerateCall struct {
	Prompt string
	Params GenerationParams
}

// NewMockClient creates a mock that answers with defaultReply.
func NewMockClient(defaultReply string) *MockClient {
	return &MockClient{defaultReply: defaultReply}
}

// QueueReplies appends scripted replies consumed one per call.
func (m *MockClient) QueueReplies(replies ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
	return m
}

// FailWith makes every Generate call return err.
func (m *MockClient) FailWith(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// RespondWith installs a dynamic reply function.
func (m *MockClient) RespondWith(fn func(prompt string, params GenerationParams) (string, error)) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replyFunc = fn
	return m
}

// WithDelay adds artificial latency to every call.
func (m *MockClient) WithDelay(d time.Duration) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Generate implements the LLMClient interface
func (m *MockClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{Prompt: prompt, Params: params})
	err := m.err
	fn := m.replyFunc
	delay := m.delay
	reply := m.defaultReply
	if len(m.replies) > 0 {
		reply = m.replies[0]
		m.replies = m.replies[1:]
	}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return "", err
	}
	if fn != nil {
		return fn(prompt, params)
	}
	return reply, nil
}

var _ LLMClient = (*MockClient)(nil)
