package assistant

import "sync"

// Memory is a bounded conversation transcript. When full, the oldest
// exchange is dropped so each model pass sees at most size turns.
type Memory struct {
	mu    sync.Mutex
	turns []Turn
	size  int
}

// NewMemory returns a Memory holding at most size turns. A size of
// zero or less disables the bound.
func NewMemory(size int) *Memory {
	return &Memory{size: size}
}

// Record appends a user prompt and the model's reply.
func (m *Memory) Record(prompt, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, Turn{Role: "user", Text: prompt}, Turn{Role: "model", Text: reply})
	if m.size > 0 && len(m.turns) > m.size {
		m.turns = m.turns[len(m.turns)-m.size:]
	}
}

// Transcript returns a copy of the current turns, oldest first.
func (m *Memory) Transcript() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Reset discards all recorded turns.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}
