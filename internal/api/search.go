package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
)

// searchRequest mirrors the searchFiles command. SearchID is caller
// supplied and must be unique across the caller's concurrent searches;
// the server does not enforce uniqueness, it only tags events with it.
type searchRequest struct {
	Path     string `json:"path"`
	Query    string `json:"query"`
	SearchID uint32 `json:"searchId"`
}

// searchFiles starts a traversal in the background and returns
// immediately; events stream through the hub. A second request reusing a
// still-running searchId is rejected.
func (h *handler) searchFiles(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if info, err := os.Stat(req.Path); err != nil || !info.IsDir() {
		jsonError(w, http.StatusBadRequest, "path must be an existing directory")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	h.searchMu.Lock()
	if _, running := h.searches[req.SearchID]; running {
		h.searchMu.Unlock()
		cancel()
		jsonError(w, http.StatusConflict, "search id already in use")
		return
	}
	h.searches[req.SearchID] = cancel
	h.searchMu.Unlock()

	go func() {
		defer func() {
			cancel()
			h.searchMu.Lock()
			delete(h.searches, req.SearchID)
			h.searchMu.Unlock()
		}()
		_ = h.engine.Run(ctx, req.Path, req.Query, req.SearchID, h.hub.SearchSink())
	}()

	jsonResponse(w, http.StatusAccepted, map[string]uint32{"searchId": req.SearchID})
}

// cancelSearch aborts a running traversal. Cancelling an unknown or
// already-finished id is a no-op.
func (h *handler) cancelSearch(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid search id")
		return
	}

	h.searchMu.Lock()
	cancel, ok := h.searches[uint32(id64)]
	h.searchMu.Unlock()
	if ok {
		cancel()
	}
	jsonResponse(w, http.StatusNoContent, nil)
}
