package assistant

import "context"

// MockGenerator is a scripted Generator for tests. Replies are
// returned in order; the last reply repeats once the script runs out.
type MockGenerator struct {
	Replies []string
	Err     error

	// Calls records every Generate invocation.
	Calls []MockCall
}

// MockCall captures the arguments of one Generate call.
type MockCall struct {
	Instruction string
	Transcript  []Turn
	Prompt      string
}

func (m *MockGenerator) Name() string                       { return "mock" }
func (m *MockGenerator) IsAvailable(_ context.Context) bool { return m.Err == nil }

func (m *MockGenerator) Generate(_ context.Context, instruction string, transcript []Turn, prompt string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Instruction: instruction, Transcript: transcript, Prompt: prompt})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", nil
	}
	i := len(m.Calls) - 1
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	return m.Replies[i], nil
}
