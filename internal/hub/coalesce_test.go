package hub

import (
	"sync"
	"testing"
	"time"
)

type flushRecord struct {
	sessionID string
	data      string
}

func collectFlushes() (*outputLimiter, func() []flushRecord) {
	var mu sync.Mutex
	var flushes []flushRecord
	l := newOutputLimiter(20*time.Millisecond, func(sessionID, data string) {
		mu.Lock()
		defer mu.Unlock()
		flushes = append(flushes, flushRecord{sessionID, data})
	})
	return l, func() []flushRecord {
		mu.Lock()
		defer mu.Unlock()
		return append([]flushRecord(nil), flushes...)
	}
}

func TestLimiterCoalescesBurst(t *testing.T) {
	l, snapshot := collectFlushes()

	l.Add("s1", "foo")
	l.Add("s1", "bar")
	l.Add("s1", "baz")

	deadline := time.After(2 * time.Second)
	for len(snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("timer flush never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}

	flushes := snapshot()
	if len(flushes) != 1 {
		t.Fatalf("got %d flushes, want 1", len(flushes))
	}
	if flushes[0].sessionID != "s1" || flushes[0].data != "foobarbaz" {
		t.Errorf("flush = %+v, want joined burst for s1", flushes[0])
	}
}

func TestLimiterFlushIsImmediateAndOrdered(t *testing.T) {
	l, snapshot := collectFlushes()

	l.Add("s1", "last ")
	l.Add("s1", "words")
	l.Flush("s1")

	flushes := snapshot()
	if len(flushes) != 1 || flushes[0].data != "last words" {
		t.Fatalf("flushes = %+v, want one joined message", flushes)
	}

	// Nothing left pending: the timer must not fire a duplicate.
	time.Sleep(50 * time.Millisecond)
	if got := snapshot(); len(got) != 1 {
		t.Errorf("got %d flushes after timer window, want 1", len(got))
	}
}

func TestLimiterFlushAll(t *testing.T) {
	l, snapshot := collectFlushes()

	l.Add("s1", "a")
	l.Add("s2", "b")
	l.FlushAll()

	flushes := snapshot()
	if len(flushes) != 2 {
		t.Fatalf("got %d flushes, want 2", len(flushes))
	}
	seen := map[string]string{}
	for _, f := range flushes {
		seen[f.sessionID] = f.data
	}
	if seen["s1"] != "a" || seen["s2"] != "b" {
		t.Errorf("flushes = %v", seen)
	}
}

func TestLimiterFlushUnknownSessionIsNoop(t *testing.T) {
	l, snapshot := collectFlushes()
	l.Flush("never-added")
	if got := snapshot(); len(got) != 0 {
		t.Errorf("got %d flushes, want 0", len(got))
	}
}
