package search

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultBatchSize is how many matches are buffered before a flush.
	DefaultBatchSize = 20
	// DefaultMaxResults caps how many Result events one search delivers.
	// Matches past the cap are still counted toward the total.
	DefaultMaxResults = 100
)

// Engine performs case-insensitive name-substring searches over a
// directory tree. One Engine may serve any number of concurrent Run
// calls; it holds no per-search state.
type Engine struct {
	BatchSize  int
	MaxResults int
}

// NewEngine returns an Engine with the default batch size and result cap.
func NewEngine() *Engine {
	return &Engine{
		BatchSize:  DefaultBatchSize,
		MaxResults: DefaultMaxResults,
	}
}

// run carries the state of a single search invocation.
type run struct {
	engine   *Engine
	sink     Sink
	searchID uint32
	query    string // lowercased

	total   int
	sent    int
	pending []Match

	shallow map[string]struct{} // paths already reported by the shallow pass
	visited map[string]struct{} // resolved dir paths, guards symlink cycles
}

// Run walks root and every reachable subdirectory (symlinks followed),
// reporting entries whose name contains query, ignoring case. It emits
// Started, then Results in traversal order, then exactly one Finished,
// and blocks until done. Unreadable entries are skipped silently. Cancel
// via ctx to abandon the traversal early; Finished is still emitted so
// the stream always terminates.
func (e *Engine) Run(ctx context.Context, root, query string, searchID uint32, sink Sink) error {
	_ = sink.Send(Event{Kind: KindStarted, SearchID: searchID, Query: query})

	r := &run{
		engine:   e,
		sink:     sink,
		searchID: searchID,
		query:    strings.ToLower(query),
		shallow:  make(map[string]struct{}),
		visited:  make(map[string]struct{}),
	}

	// The root itself is an entry, same as the recursive walk would see.
	if r.matches(filepath.Base(root)) {
		if _, err := os.Stat(root); err == nil {
			r.report(root)
		}
	}

	// Shallow pass: surface hits among the root's immediate children
	// before the recursive descent gets to them.
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if ctx.Err() != nil {
				break
			}
			if !r.matches(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if r.report(path) {
				r.shallow[path] = struct{}{}
			}
		}
	}

	if ctx.Err() == nil {
		r.markVisited(root)
		r.walk(ctx, root)
	}

	r.flush()
	_ = sink.Send(Event{
		Kind:     KindFinished,
		SearchID: searchID,
		Total:    r.total,
		HasMore:  r.total > r.sent,
	})

	return ctx.Err()
}

// walk descends depth-first from dir. Directories that cannot be read
// are skipped, never fatal.
func (r *run) walk(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		path := filepath.Join(dir, entry.Name())
		if r.matches(entry.Name()) {
			if _, dup := r.shallow[path]; !dup {
				r.report(path)
			}
		}
		if r.enterDir(path, entry) {
			r.walk(ctx, path)
		}
	}
}

func (r *run) matches(name string) bool {
	return strings.Contains(strings.ToLower(name), r.query)
}

// report counts one match and queues it for delivery, flushing whenever a
// full batch has accumulated. Entries that vanish between listing and
// stat are skipped and do not count. Returns whether the match counted.
func (r *run) report(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	r.total++
	if r.sent+len(r.pending) >= r.engine.MaxResults {
		// Counted but not delivered; Finished reports the overflow.
		return true
	}

	r.pending = append(r.pending, Match{
		Path:     cleanPath(canonicalize(path)),
		Name:     filepath.Base(path),
		IsFile:   !info.IsDir(),
		Size:     info.Size(),
		Modified: info.ModTime().Unix(),
	})
	if len(r.pending) >= r.engine.BatchSize {
		r.flush()
	}
	return true
}

// flush delivers every queued match in arrival order.
func (r *run) flush() {
	for _, m := range r.pending {
		_ = r.sink.Send(Event{Kind: KindResult, SearchID: r.searchID, Match: m})
		r.sent++
	}
	r.pending = r.pending[:0]
}

// enterDir reports whether path should be descended into. Symlinked
// directories are followed; the visited set keeps link cycles from
// recursing forever. Broken links are skipped.
func (r *run) enterDir(path string, entry fs.DirEntry) bool {
	isDir := entry.IsDir()
	if !isDir && entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		isDir = info.IsDir()
	}
	if !isDir {
		return false
	}
	return r.markVisited(path)
}

// markVisited records dir's resolved path, returning false if it was
// already seen during this search.
func (r *run) markVisited(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if _, seen := r.visited[resolved]; seen {
		return false
	}
	r.visited[resolved] = struct{}{}
	return true
}
