package watcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/internal/notify"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/models"
)

const testTable = `
c:
  honeypot: {birdeye: -0.5, goplus: -0.3}
`

type stubSource struct {
	pairs []models.PairData
	err   error
}

func (s *stubSource) NewPairs(ctx context.Context) ([]models.PairData, error) {
	return s.pairs, s.err
}

type stubSecurity struct {
	findings map[string]models.RawSecurityFindings
}

func (s *stubSecurity) Collect(ctx context.Context, address string) models.RawSecurityFindings {
	return s.findings[address]
}

type stubRecorder struct {
	saved []models.PairData
	err   error
}

func (s *stubRecorder) SavePair(ctx context.Context, pair models.PairData) error {
	s.saved = append(s.saved, pair)
	return s.err
}

type stubAppender struct {
	appended []models.PairData
}

func (s *stubAppender) Append(pairs []models.PairData) error {
	s.appended = append(s.appended, pairs...)
	return nil
}

type stubPublisher struct {
	events []notify.Event
}

func (s *stubPublisher) Notify(ctx context.Context, evt notify.Event) {
	s.events = append(s.events, evt)
}

func mustTable(t *testing.T) *risk.Table {
	t.Helper()
	table, err := risk.ParseTable([]byte(testTable))
	require.NoError(t, err)
	return table
}

func strptr(s string) *string { return &s }

func cleanFindings() models.RawSecurityFindings {
	return models.RawSecurityFindings{}
}

func honeypotFindings() models.RawSecurityFindings {
	return models.RawSecurityFindings{Sections: []models.RawSection{
		{Level: "c", Items: []models.RawItem{{Title: "honeypot", Birdeye: strptr("true"), GoPlus: strptr("true")}}},
	}}
}

func TestRunCycleSavesAndPublishes(t *testing.T) {
	source := &stubSource{pairs: []models.PairData{
		{Token: "CLEAN/SOL", Address: "addr-clean"},
		{Token: "TRAP/SOL", Address: "addr-trap"},
	}}
	security := &stubSecurity{findings: map[string]models.RawSecurityFindings{
		"addr-clean": cleanFindings(),
		"addr-trap":  honeypotFindings(),
	}}
	recorder := &stubRecorder{}
	appender := &stubAppender{}
	publisher := &stubPublisher{}

	w := New(source, security, mustTable(t), recorder, appender, publisher, 98.0)
	stats, err := w.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, stats.Fetched)
	require.Equal(t, 2, stats.Evaluated)
	require.Equal(t, 1, stats.Published)
	require.Equal(t, 0, stats.Failed)

	// The clean pair scores 100 and is published; the honeypot, flagged
	// by both providers, drops to half the ceiling.
	require.Len(t, publisher.events, 1)
	require.Equal(t, "CLEAN/SOL", publisher.events[0].Pair.Token)

	require.Len(t, recorder.saved, 2)
	require.NotNil(t, recorder.saved[0].SecurityScore())
	require.InDelta(t, 100.0, *recorder.saved[0].SecurityScore(), 1e-9)
	require.InDelta(t, 50.0, *recorder.saved[1].SecurityScore(), 1e-9)

	require.Len(t, appender.appended, 2)
}

func TestRunCycleFailedCheckNeverPublishes(t *testing.T) {
	source := &stubSource{pairs: []models.PairData{{Token: "ERR/SOL", Address: "addr-err"}}}
	security := &stubSecurity{findings: map[string]models.RawSecurityFindings{
		"addr-err": {Err: "provider timeout"},
	}}
	recorder := &stubRecorder{}
	publisher := &stubPublisher{}

	w := New(source, security, mustTable(t), recorder, nil, publisher, 98.0)
	stats, err := w.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 0, stats.Published)
	require.Empty(t, publisher.events)

	// Persisted with an unknown score, not a safe one.
	require.Len(t, recorder.saved, 1)
	require.Nil(t, recorder.saved[0].SecurityScore())
	require.True(t, recorder.saved[0].Security.Failed())
}

func TestRunCycleSourceFailureAborts(t *testing.T) {
	source := &stubSource{err: errors.New("listing unavailable")}
	w := New(source, nil, nil, nil, nil, nil, 98.0)

	_, err := w.RunCycle(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetching pairs")
}

func TestRunCycleStoreFailureIsolated(t *testing.T) {
	source := &stubSource{pairs: []models.PairData{
		{Token: "A/SOL", Address: "a"},
		{Token: "B/SOL", Address: "b"},
	}}
	security := &stubSecurity{findings: map[string]models.RawSecurityFindings{
		"a": cleanFindings(), "b": cleanFindings(),
	}}
	recorder := &stubRecorder{err: errors.New("disk full")}
	publisher := &stubPublisher{}

	w := New(source, security, mustTable(t), recorder, nil, publisher, 98.0)
	stats, err := w.RunCycle(context.Background())
	require.NoError(t, err)

	// Both pairs still evaluated and published despite save failures.
	require.Equal(t, 2, stats.Evaluated)
	require.Equal(t, 2, stats.Published)
}

func TestRunCycleThresholdIsStrict(t *testing.T) {
	source := &stubSource{pairs: []models.PairData{{Token: "EDGE/SOL", Address: "e"}}}
	security := &stubSecurity{findings: map[string]models.RawSecurityFindings{"e": cleanFindings()}}
	publisher := &stubPublisher{}

	// A perfect 100 does not pass a threshold of 100.
	w := New(source, security, mustTable(t), nil, nil, publisher, 100.0)
	stats, err := w.RunCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Published)
	require.Equal(t, 1, stats.Evaluated)
}
