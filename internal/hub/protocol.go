package hub

// Server → client messages. One flat schema per family, discriminated by
// the type field.

// OutputMessage carries raw terminal bytes for one session.
type OutputMessage struct {
	Type      string `json:"type"` // "output"
	SessionID string `json:"sessionId"`
	Data      string `json:"data"`
}

// ExitMessage tells clients a session's shell has exited.
type ExitMessage struct {
	Type      string `json:"type"` // "exit"
	SessionID string `json:"sessionId"`
}

// SearchStartedMessage opens a search's event stream.
type SearchStartedMessage struct {
	Type     string `json:"type"` // "searchStarted"
	SearchID uint32 `json:"searchId"`
	Query    string `json:"query"`
}

// SearchResultMessage carries one match.
type SearchResultMessage struct {
	Type     string `json:"type"` // "searchResult"
	SearchID uint32 `json:"searchId"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	IsFile   bool   `json:"isFile"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
}

// SearchFinishedMessage closes a search's event stream.
type SearchFinishedMessage struct {
	Type         string `json:"type"` // "searchFinished"
	SearchID     uint32 `json:"searchId"`
	TotalMatches int    `json:"totalMatches"`
	HasMore      bool   `json:"hasMore"`
}

// ErrorMessage reports a per-client protocol error.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// ClientMessage is anything a client may send over the socket. The
// command surface proper lives on the HTTP API; the socket only carries
// the latency-sensitive terminal traffic.
type ClientMessage struct {
	Type      string `json:"type"` // "input" | "resize"
	SessionID string `json:"sessionId"`
	Data      string `json:"data,omitempty"`
	Rows      uint16 `json:"rows,omitempty"`
	Cols      uint16 `json:"cols,omitempty"`
}
