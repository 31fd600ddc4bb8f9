package pty

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when an operation references a session
// id that was never issued or has already been destroyed.
var ErrSessionNotFound = errors.New("pty: session not found")

// ErrSessionClosed is returned when the session is still registered but
// its child process has already exited.
var ErrSessionClosed = errors.New("pty: session is closed")

const eventBuffer = 1024

// ShellResolver supplies the argv used to start new sessions.
type ShellResolver func() []string

// Manager owns the mapping from session id to live PTY session, plus the
// shared event channel every output pump feeds. A single dispatcher is
// expected to drain Events; pumps block when it falls behind.
type Manager struct {
	shell  ShellResolver
	events chan Event

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager that resolves new-session shells
// through shell.
func NewManager(shell ShellResolver) *Manager {
	return &Manager{
		shell:    shell,
		events:   make(chan Event, eventBuffer),
		sessions: make(map[string]*Session),
	}
}

// Events returns the channel all session pumps emit on. It is never
// closed; it outlives individual sessions.
func (m *Manager) Events() <-chan Event { return m.events }

// Create spawns the configured shell in cwd with the given terminal size,
// registers the session under a fresh id, and starts its output pump.
// The shell keeps running independently after Create returns.
func (m *Manager) Create(cwd string, rows, cols uint16) (string, error) {
	argv := m.shell()
	if len(argv) == 0 {
		return "", errors.New("pty: no shell configured")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	sess, err := newSession(id, argv, cwd, rows, cols)
	if err != nil {
		return "", fmt.Errorf("pty: spawn %q: %w", argv[0], err)
	}
	m.sessions[id] = sess

	go sess.readPump(m.events)

	return id, nil
}

// Write sends raw bytes to the session's input side.
func (m *Manager) Write(id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	_, err := sess.Write(data)
	return err
}

// Resize changes the session's PTY dimensions.
func (m *Manager) Resize(id string, rows, cols uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return sess.Resize(rows, cols)
}

// Destroy removes the session from the registry and closes its PTY,
// which unblocks the output pump; the pump still emits its final
// EventExit. Destroying an unknown id is a no-op.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		_ = sess.Close()
	}
}

// List returns metadata for every registered session.
func (m *Manager) List() []SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sess.mu.Lock()
		info := SessionInfo{
			ID:        sess.id,
			Cwd:       sess.cwd,
			Rows:      sess.rows,
			Cols:      sess.cols,
			Active:    !sess.closed,
			CreatedAt: sess.createdAt,
		}
		sess.mu.Unlock()
		infos = append(infos, info)
	}
	return infos
}

// Close terminates and removes all sessions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		_ = sess.Close()
		delete(m.sessions, id)
	}
}
