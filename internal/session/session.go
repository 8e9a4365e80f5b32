// Package session identifies a single configuration-and-run cycle of the
// engine, so every log line of one endpoint instance can be correlated.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session carries the identity and timing of one engine run.
type Session struct {
	id        string
	startedAt time.Time
}

// New creates a session with a fresh unique identifier.
func New() *Session {
	return &Session{
		id:        uuid.NewString(),
		startedAt: time.Now(),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Uptime returns the time elapsed since the session was created.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.startedAt)
}
