package pty

import (
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	creackpty "github.com/creack/pty"
)

// Session wraps one shell process running inside a PTY. It is owned by a
// Manager once created; all mutation goes through the manager.
type Session struct {
	id        string
	cwd       string
	createdAt time.Time

	cmd  *exec.Cmd
	ptmx *os.File

	mu        sync.Mutex
	rows      uint16
	cols      uint16
	closed    bool
	closeOnce sync.Once
}

// newSession spawns argv inside a fresh PTY sized rows x cols with the
// given working directory.
func newSession(id string, argv []string, cwd string, rows, cols uint16) (*Session, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := creackpty.StartWithSize(cmd, &creackpty.Winsize{
		Rows: rows,
		Cols: cols,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		id:        id,
		cwd:       cwd,
		createdAt: time.Now(),
		cmd:       cmd,
		ptmx:      ptmx,
		rows:      rows,
		cols:      cols,
	}, nil
}

// readPump relays PTY output onto events until EOF or a read error, then
// reaps the child and emits a single EventExit. The core transports raw
// bytes; escape-sequence interpretation belongs to the consumer.
func (s *Session) readPump(events chan<- Event) {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			events <- Event{
				Type:      EventOutput,
				SessionID: s.id,
				Data:      string(buf[:n]),
			}
		}
		if err != nil {
			break
		}
	}

	_ = s.cmd.Wait()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	events <- Event{Type: EventExit, SessionID: s.id}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Write sends data to the PTY's input side. The OS pipe provides the only
// buffering; there is no queue in front of it.
func (s *Session) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}
	return s.ptmx.Write(data)
}

// Resize changes the PTY window size. The shell reacts to the resulting
// SIGWINCH on its own; the process is not restarted.
func (s *Session) Resize(rows, cols uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	if err := creackpty.Setsize(s.ptmx, &creackpty.Winsize{
		Rows: rows,
		Cols: cols,
	}); err != nil {
		return err
	}

	s.rows = rows
	s.cols = cols
	return nil
}

// Close terminates the child process (SIGTERM) and closes the PTY fd.
// Closing the fd unblocks the output pump, which then emits its final
// EventExit. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		if s.cmd.Process != nil {
			_ = s.cmd.Process.Signal(syscall.SIGTERM)
		}

		err = s.ptmx.Close()
	})
	return err
}
