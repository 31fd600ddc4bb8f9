package search

// Match describes one directory entry whose name contained the query.
type Match struct {
	// Path is absolute, symlink-resolved when possible, and always uses
	// forward slashes with no extended-length prefix.
	Path     string
	Name     string
	IsFile   bool
	Size     int64
	Modified int64
}

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	// KindStarted opens a search's event stream.
	KindStarted EventKind = iota
	// KindResult carries one match.
	KindResult
	// KindFinished closes the stream; sent exactly once, after every
	// result for the search.
	KindFinished
)

// Event is one notification pushed to the sink during a search. SearchID
// is set on every variant; the remaining fields depend on Kind.
type Event struct {
	Kind     EventKind
	SearchID uint32
	Query    string // Started
	Match    Match  // Result
	Total    int    // Finished: matches encountered, including undelivered
	HasMore  bool   // Finished: Total exceeded the delivered count
}

// Sink receives events in emission order. A send error is non-fatal: the
// consumer may simply have gone away, and the engine keeps going.
type Sink interface {
	Send(Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event) error

// Send calls f(ev).
func (f SinkFunc) Send(ev Event) error { return f(ev) }
