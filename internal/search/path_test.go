package search

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanPathStripsExtendedPrefix(t *testing.T) {
	got := cleanPath(`\\?\D:`)
	if got == `\\?\D:` {
		t.Errorf("extended-length prefix not stripped: %q", got)
	}
	if cleanPath("/home/user/file.txt") != "/home/user/file.txt" {
		t.Error("plain forward-slash paths must pass through unchanged")
	}
}

func TestCanonicalizeResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatal(err)
	}
	if got := canonicalize(link); got != resolvedTarget {
		t.Errorf("canonicalize(%q) = %q, want %q", link, got, resolvedTarget)
	}
}

func TestCanonicalizeFallsBackOnError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if got := canonicalize(missing); got != missing {
		t.Errorf("canonicalize(%q) = %q, want original path back", missing, got)
	}
}
