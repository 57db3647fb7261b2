package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubChannel struct {
	name       string
	configured bool
	err        error
	sent       []Event
}

func (s *stubChannel) Name() string       { return s.name }
func (s *stubChannel) IsConfigured() bool { return s.configured }

func (s *stubChannel) Send(ctx context.Context, evt Event) error {
	s.sent = append(s.sent, evt)
	return s.err
}

func TestDispatcherSkipsUnconfiguredChannels(t *testing.T) {
	active := &stubChannel{name: "active", configured: true}
	inactive := &stubChannel{name: "inactive"}

	d := NewDispatcherWith(active, inactive)
	require.True(t, d.IsAnyConfigured())

	d.Notify(context.Background(), Event{Text: "hello"})
	require.Len(t, active.sent, 1)
	require.Empty(t, inactive.sent)
}

func TestDispatcherContinuesPastFailedChannel(t *testing.T) {
	failing := &stubChannel{name: "failing", configured: true, err: errors.New("boom")}
	healthy := &stubChannel{name: "healthy", configured: true}

	d := NewDispatcherWith(failing, healthy)
	d.Notify(context.Background(), Event{Text: "hello"})

	require.Len(t, failing.sent, 1)
	require.Len(t, healthy.sent, 1)
}

func TestDispatcherNothingConfigured(t *testing.T) {
	d := NewDispatcherWith(&stubChannel{name: "idle"})
	require.False(t, d.IsAnyConfigured())
}
