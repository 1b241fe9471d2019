package handlers

import (
	"bytes"
	"context"
	"io"
	"iter"
	"slices"

	"gvtools/internal/models"
	"gvtools/internal/service"
)

// ---- Service Mocks ----

type mockDevices struct {
	resp []service.Candidate
	err  error

	lastPeriod models.YearMonth
	lastQuery  string
}

func (m *mockDevices) Find(ctx context.Context, period models.YearMonth, query string) ([]service.Candidate, error) {
	m.lastPeriod = period
	m.lastQuery = query
	return m.resp, m.err
}

type mockViewer struct {
	lines []string
	err   error

	lastCandidate service.Candidate
	lastParams    service.ViewParams
}

func (m *mockViewer) Lines(ctx context.Context, c service.Candidate, p service.ViewParams) (iter.Seq[string], func() error) {
	m.lastCandidate = c
	m.lastParams = p
	return slices.Values(m.lines), func() error { return m.err }
}

type mockNotifier struct {
	checks []service.DeviceCheck
	msg    string
	err    error

	lastParams service.CheckParams
}

func (m *mockNotifier) Check(ctx context.Context, p service.CheckParams) ([]service.DeviceCheck, error) {
	m.lastParams = p
	return m.checks, m.err
}

func (m *mockNotifier) Message(checks []service.DeviceCheck) string { return m.msg }

// ---- Collaborator Mocks ----

type mockPrompt struct {
	index int
	ok    bool
	err   error

	calls       int
	lastChoices []string
}

func (m *mockPrompt) Choose(preamble string, choices []string) (int, bool, error) {
	m.calls++
	m.lastChoices = choices
	return m.index, m.ok, m.err
}

type mockPager struct {
	buf      bytes.Buffer
	terminal bool
	writeErr error
	closed   bool
}

func (m *mockPager) Open() (io.WriteCloser, error) { return m, nil }
func (m *mockPager) IsTerminal() bool              { return m.terminal }
func (m *mockPager) Close() error                  { m.closed = true; return nil }

func (m *mockPager) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.buf.Write(p)
}

type mockDispatcher struct {
	err      error
	messages []string
}

func (m *mockDispatcher) Dispatch(ctx context.Context, message string) error {
	m.messages = append(m.messages, message)
	return m.err
}

func newTestHandler(s *service.Service) (*Handler, *mockPrompt, *mockPager, *mockDispatcher) {
	h := NewHandler(s, nil)
	p, pg, d := &mockPrompt{}, &mockPager{}, &mockDispatcher{}
	h.Prompt, h.Pager, h.Dispatch = p, pg, d
	return h, p, pg, d
}
