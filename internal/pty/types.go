package pty

import "time"

// EventType distinguishes the kind of event produced by a session's
// output pump.
type EventType int

const (
	// EventOutput indicates that new data was read from the PTY.
	EventOutput EventType = iota
	// EventExit indicates that the pump observed EOF or a read error and
	// will emit nothing further for this session.
	EventExit
)

// Event is a single notification emitted by a session's output pump onto
// the manager's shared event channel.
type Event struct {
	Type      EventType
	SessionID string
	Data      string
}

// SessionInfo is a read-only snapshot of session metadata returned by
// Manager.List.
type SessionInfo struct {
	ID        string
	Cwd       string
	Rows      uint16
	Cols      uint16
	Active    bool
	CreatedAt time.Time
}
