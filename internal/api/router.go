// Package api exposes the command surface over HTTP: session lifecycle,
// search, and the explorer's filesystem helpers. Streamed events travel
// through the hub's websocket, not through these handlers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/user/fileterm/internal/hub"
	"github.com/user/fileterm/internal/platform"
	"github.com/user/fileterm/internal/pty"
	"github.com/user/fileterm/internal/search"
)

// Deps collects everything the handlers need.
type Deps struct {
	Sessions *pty.Manager
	Engine   *search.Engine
	Hub      *hub.Hub
	Volumes  platform.VolumeLister
	Opener   platform.Opener
	Trasher  platform.Trasher
}

type handler struct {
	sessions *pty.Manager
	engine   *search.Engine
	hub      *hub.Hub
	volumes  platform.VolumeLister
	opener   platform.Opener
	trasher  platform.Trasher

	searchMu sync.Mutex
	searches map[uint32]context.CancelFunc
}

// NewRouter builds the API handler tree with auth, json, and CORS
// middleware applied.
func NewRouter(deps Deps, token string) http.Handler {
	h := &handler{
		sessions: deps.Sessions,
		engine:   deps.Engine,
		hub:      deps.Hub,
		volumes:  deps.Volumes,
		opener:   deps.Opener,
		trasher:  deps.Trasher,
		searches: make(map[uint32]context.CancelFunc),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("GET /api/sessions", h.listSessions)
	mux.HandleFunc("POST /api/sessions/{id}/input", h.writeSession)
	mux.HandleFunc("POST /api/sessions/{id}/resize", h.resizeSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.destroySession)

	mux.HandleFunc("POST /api/search", h.searchFiles)
	mux.HandleFunc("DELETE /api/search/{id}", h.cancelSearch)

	mux.HandleFunc("GET /api/fs", h.listDirectory)
	mux.HandleFunc("GET /api/volumes", h.listVolumes)
	mux.HandleFunc("POST /api/fs/open", h.openPath)
	mux.HandleFunc("POST /api/fs/trash", h.trashPath)

	return authMiddleware(token)(jsonMiddleware(corsMiddleware(mux)))
}

func authMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
				if strings.TrimSpace(authHeader[7:]) == token {
					next.ServeHTTP(w, r)
					return
				}
			}

			if r.URL.Query().Get("token") == token {
				next.ServeHTTP(w, r)
				return
			}

			jsonError(w, http.StatusUnauthorized, "unauthorized")
		})
	}
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return io.ErrUnexpectedEOF
	}
	return nil
}
