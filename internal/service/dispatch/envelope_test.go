package dispatch

import (
	"context"
	"sync"

	"github.com/sandevgo/huskbot/internal/core"
)

// fakeEnvelope records outbound sends for assertions.
type fakeEnvelope struct {
	text   string
	kind   core.Scope
	sender string

	mu   sync.Mutex
	sent []string
}

func newFakeEnvelope(text string, kind core.Scope) *fakeEnvelope {
	return &fakeEnvelope{text: text, kind: kind, sender: "user-1"}
}

func (e *fakeEnvelope) Text() string           { return e.text }
func (e *fakeEnvelope) Kind() core.Scope       { return e.kind }
func (e *fakeEnvelope) SenderID() string       { return e.sender }
func (e *fakeEnvelope) ConversationID() string { return "" }

func (e *fakeEnvelope) Send(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, text)
	return nil
}

func (e *fakeEnvelope) sentMessages() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.sent))
	copy(out, e.sent)
	return out
}

// recordingHandler counts invocations and captures params.
type recordingHandler struct {
	mu     sync.Mutex
	calls  int
	params [][]string
	err    error
}

func (h *recordingHandler) Handle(ctx context.Context, env core.Envelope, params []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	h.params = append(h.params, params)
	return h.err
}

func (h *recordingHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func (h *recordingHandler) lastParams() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.params) == 0 {
		return nil
	}
	return h.params[len(h.params)-1]
}
