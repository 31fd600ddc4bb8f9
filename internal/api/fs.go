package api

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type fsEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	IsFile   bool   `json:"isFile"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
}

type fsDirectoryResponse struct {
	Path    string    `json:"path"`
	Parent  string    `json:"parent,omitempty"`
	Entries []fsEntry `json:"entries"`
}

type pathRequest struct {
	Path string `json:"path"`
}

// listDirectory returns the immediate children of a directory for the
// explorer pane, directories first, case-insensitively by name.
// Entries that cannot be stat'd are omitted.
func (h *handler) listDirectory(w http.ResponseWriter, r *http.Request) {
	targetPath, err := normalizeBrowsePath(r.URL.Query().Get("path"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(targetPath)
	if err != nil || !info.IsDir() {
		jsonError(w, http.StatusBadRequest, "path must be an existing directory")
		return
	}

	dirEntries, err := os.ReadDir(targetPath)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read directory")
		return
	}

	entries := make([]fsEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		entryPath := filepath.Join(targetPath, entry.Name())
		fi, err := os.Stat(entryPath)
		if err != nil {
			continue
		}
		entries = append(entries, fsEntry{
			Name:     entry.Name(),
			Path:     entryPath,
			IsFile:   !fi.IsDir(),
			Size:     fi.Size(),
			Modified: fi.ModTime().Unix(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsFile != entries[j].IsFile {
			return !entries[i].IsFile
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	parent := filepath.Dir(targetPath)
	if parent == targetPath {
		parent = ""
	}

	jsonResponse(w, http.StatusOK, fsDirectoryResponse{
		Path:    targetPath,
		Parent:  parent,
		Entries: entries,
	})
}

func (h *handler) listVolumes(w http.ResponseWriter, _ *http.Request) {
	if h.volumes == nil {
		jsonError(w, http.StatusNotImplemented, "volume listing not available")
		return
	}
	volumes, err := h.volumes.ListVolumes()
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, volumes)
}

func (h *handler) openPath(w http.ResponseWriter, r *http.Request) {
	if h.opener == nil {
		jsonError(w, http.StatusNotImplemented, "open not available")
		return
	}
	var req pathRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		jsonError(w, http.StatusNotFound, "path does not exist")
		return
	}
	if err := h.opener.Open(r.Context(), req.Path); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) trashPath(w http.ResponseWriter, r *http.Request) {
	if h.trasher == nil {
		jsonError(w, http.StatusNotImplemented, "trash not available")
		return
	}
	var req pathRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		jsonError(w, http.StatusNotFound, "path does not exist")
		return
	}
	if err := h.trasher.Trash(r.Context(), req.Path); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

func normalizeBrowsePath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Clean(home), nil
	}

	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~/"))
		}
	}

	if !filepath.IsAbs(trimmed) {
		abs, err := filepath.Abs(trimmed)
		if err != nil {
			return "", err
		}
		trimmed = abs
	}

	return filepath.Clean(trimmed), nil
}
