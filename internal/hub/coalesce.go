package hub

import (
	"strings"
	"sync"
	"time"
)

// outputLimiter coalesces bursts of terminal output per session so the
// socket carries a few larger frames instead of one frame per read. It
// changes transport framing only; byte order within a session is kept.
type outputLimiter struct {
	mu       sync.Mutex
	pending  map[string]*pendingOutput
	interval time.Duration
	onFlush  func(sessionID, data string)
}

type pendingOutput struct {
	chunks []string
	timer  *time.Timer
}

func newOutputLimiter(interval time.Duration, onFlush func(string, string)) *outputLimiter {
	return &outputLimiter{
		pending:  make(map[string]*pendingOutput),
		interval: interval,
		onFlush:  onFlush,
	}
}

// Add queues data for sessionID and arms the flush timer if idle.
func (l *outputLimiter) Add(sessionID, data string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pending[sessionID]
	if !ok {
		p = &pendingOutput{}
		l.pending[sessionID] = p
	}
	p.chunks = append(p.chunks, data)

	if p.timer == nil {
		p.timer = time.AfterFunc(l.interval, func() {
			l.Flush(sessionID)
		})
	}
}

// Flush delivers any pending output for sessionID immediately.
func (l *outputLimiter) Flush(sessionID string) {
	l.mu.Lock()
	p, ok := l.pending[sessionID]
	if ok {
		delete(l.pending, sessionID)
		if p.timer != nil {
			p.timer.Stop()
		}
	}
	l.mu.Unlock()

	if ok && len(p.chunks) > 0 {
		l.onFlush(sessionID, strings.Join(p.chunks, ""))
	}
}

// FlushAll delivers pending output for every session.
func (l *outputLimiter) FlushAll() {
	l.mu.Lock()
	ids := make([]string, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	for _, id := range ids {
		l.Flush(id)
	}
}
