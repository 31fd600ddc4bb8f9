package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/user/fileterm/internal/pty"
)

type createSessionRequest struct {
	Cwd  string `json:"cwd"`
	Rows uint16 `json:"rows"`
	Cols uint16 `json:"cols"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type sessionInfoResponse struct {
	ID        string    `json:"id"`
	Cwd       string    `json:"cwd"`
	Rows      uint16    `json:"rows"`
	Cols      uint16    `json:"cols"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type writeSessionRequest struct {
	Data string `json:"data"`
}

type resizeSessionRequest struct {
	Rows uint16 `json:"rows"`
	Cols uint16 `json:"cols"`
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rows == 0 || req.Cols == 0 {
		jsonError(w, http.StatusBadRequest, "rows and cols must be positive")
		return
	}

	id, err := h.sessions.Create(req.Cwd, req.Rows, req.Cols)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, createSessionResponse{SessionID: id})
}

func (h *handler) listSessions(w http.ResponseWriter, _ *http.Request) {
	infos := h.sessions.List()
	out := make([]sessionInfoResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, sessionInfoResponse{
			ID:        info.ID,
			Cwd:       info.Cwd,
			Rows:      info.Rows,
			Cols:      info.Cols,
			Active:    info.Active,
			CreatedAt: info.CreatedAt,
		})
	}
	jsonResponse(w, http.StatusOK, out)
}

func (h *handler) writeSession(w http.ResponseWriter, r *http.Request) {
	var req writeSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.Write(r.PathValue("id"), []byte(req.Data)); err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) resizeSession(w http.ResponseWriter, r *http.Request) {
	var req resizeSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rows == 0 || req.Cols == 0 {
		jsonError(w, http.StatusBadRequest, "rows and cols must be positive")
		return
	}

	if err := h.sessions.Resize(r.PathValue("id"), req.Rows, req.Cols); err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// destroySession is idempotent: destroying an unknown id still reports
// success.
func (h *handler) destroySession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.PathValue("id"))
	jsonResponse(w, http.StatusNoContent, nil)
}

func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pty.ErrSessionNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, pty.ErrSessionClosed):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, err.Error())
	}
}
