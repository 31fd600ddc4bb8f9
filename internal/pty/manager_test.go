package pty

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func shShell() []string { return []string{"/bin/sh"} }

// waitFor drains the manager's event channel until pred returns true.
func waitFor(t *testing.T, m *Manager, pred func(Event) bool) {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-m.Events():
			if pred(ev) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestManagerCreateWriteObserveDestroy(t *testing.T) {
	m := NewManager(shShell)
	defer m.Close()

	id, err := m.Create(t.TempDir(), 24, 80)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	if err := m.Write(id, []byte("echo hi\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	waitFor(t, m, func(ev Event) bool {
		return ev.SessionID == id && ev.Type == EventOutput && strings.Contains(ev.Data, "hi")
	})

	m.Destroy(id)

	if err := m.Write(id, []byte("x")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Write after destroy = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerUnknownID(t *testing.T) {
	m := NewManager(shShell)
	defer m.Close()

	if err := m.Write("nope", []byte("x")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Write = %v, want ErrSessionNotFound", err)
	}
	if err := m.Resize("nope", 24, 80); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Resize = %v, want ErrSessionNotFound", err)
	}
	// Destroying an unknown id is a no-op, never an error.
	m.Destroy("nope")
}

func TestManagerDestroyEmitsExit(t *testing.T) {
	m := NewManager(shShell)
	defer m.Close()

	id, err := m.Create(t.TempDir(), 24, 80)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	m.Destroy(id)

	waitFor(t, m, func(ev Event) bool {
		return ev.SessionID == id && ev.Type == EventExit
	})
}

func TestManagerFreshIDs(t *testing.T) {
	m := NewManager(shShell)
	defer m.Close()

	a, err := m.Create(t.TempDir(), 24, 80)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := m.Create(t.TempDir(), 24, 80)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct session ids, got %q twice", a)
	}

	infos := m.List()
	if len(infos) != 2 {
		t.Fatalf("List() = %d sessions, want 2", len(infos))
	}
	for _, info := range infos {
		if info.Rows != 24 || info.Cols != 80 {
			t.Errorf("session %s size = %dx%d, want 24x80", info.ID, info.Rows, info.Cols)
		}
		if !info.Active {
			t.Errorf("session %s not active", info.ID)
		}
	}
}

func TestManagerCreateSpawnFailure(t *testing.T) {
	m := NewManager(func() []string { return []string{"/nonexistent/shell-binary"} })
	defer m.Close()

	if _, err := m.Create(t.TempDir(), 24, 80); err == nil {
		t.Fatal("expected spawn failure")
	}

	if len(m.List()) != 0 {
		t.Error("failed spawn must not register a session")
	}
}
