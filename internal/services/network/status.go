package network

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Pinger reaches the backend health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusChecker pings the backend on behalf of the dashboard
type StatusChecker struct {
	pinger  Pinger
	timeout time.Duration
}

// StatusMsg is sent after every health check. Err is set when the
// backend did not answer.
type StatusMsg struct {
	Online bool
	Err    error
}

// NewStatusChecker creates a checker that pings with the given timeout
func NewStatusChecker(pinger Pinger, timeout time.Duration) *StatusChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &StatusChecker{pinger: pinger, timeout: timeout}
}

// Check pings the backend once, bounded by the checker's timeout
func (s *StatusChecker) Check(ctx context.Context) StatusMsg {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		return StatusMsg{Err: err}
	}
	return StatusMsg{Online: true}
}

// CheckCmd returns a tea.Cmd that performs a one-time health check
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		return s.Check(context.Background())
	}
}
