package practice

import (
	"time"

	sess "github.com/bernhaaard/mental-math-trainer-sub002/internal/session"
)

// sessionStartedMsg is sent when the session has served its first problem.
type sessionStartedMsg struct {
	State *sess.State
	Err   error
}

// advancedMsg is sent after moving to the next problem.
type advancedMsg struct {
	Err error
}

// tickMsg drives the clock and walkthrough polling.
type tickMsg time.Time

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
