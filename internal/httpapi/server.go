// Package httpapi exposes the inventory service over REST. It is a
// thin routing adapter: all inventory semantics live in pkg/inventory,
// and this package only decodes requests, maps errors to status codes,
// and serves the browser client's static assets.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/pantry/pkg/inventory"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Server wires HTTP endpoints to the inventory service.
type Server struct {
	inventory *inventory.Service
	staticDir string
	logger    *slog.Logger
}

// New returns a Server. staticDir may be empty to disable asset
// serving; a nil logger falls back to slog.Default.
func New(svc *inventory.Service, staticDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{inventory: svc, staticDir: staticDir, logger: logger}
}

// Handler returns the full middleware-wrapped route set.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/inventory", s.getInventory)
	mux.HandleFunc("POST /api/inventory", s.createItem)
	mux.HandleFunc("POST /api/inventory/{id}", s.adjustItem)
	mux.HandleFunc("DELETE /api/inventory/{id}", s.deleteItem)
	if s.staticDir != "" {
		mux.Handle("/", s.staticHandler())
	}
	return s.withRequestLog(withCORS(mux))
}

// getInventory returns the whole document; a missing file reads as an
// empty inventory without creating anything.
func (s *Server) getInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory.Get()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, inv)
}

// itemPayload carries the optional item fields of create and update
// requests. Pointers distinguish "absent" from "empty".
type itemPayload struct {
	Action   string  `json:"action"`
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Group    *string `json:"group"`
}

func (p itemPayload) fields() inventory.ItemFields {
	return inventory.ItemFields{Name: p.Name, Quantity: p.Quantity, Group: p.Group}
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	item, err := s.inventory.Create(payload.fields())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "item": item})
}

func (s *Server) adjustItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	item, err := s.inventory.Adjust(r.PathValue("id"), payload.Action, payload.fields())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "item": item})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.Delete(r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// staticHandler serves files from staticDir with an index.html fallback
// so client-side routes resolve after a page refresh.
func (s *Server) staticHandler() http.Handler {
	fileServer := http.FileServer(http.Dir(s.staticDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(s.staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
	})
}

// respondJSON writes a JSON body with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// respondError maps service errors to the API taxonomy: missing item or
// document is 404, everything else is a generic 500. The underlying
// detail is logged server-side only.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrItemNotFound) || errors.Is(err, types.ErrDocumentMissing) {
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
