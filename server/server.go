// Package server exposes the translation management HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ZaguanLabs/tmt"
)

// Config holds the server's collaborators.
type Config struct {
	Orchestrator   *tmt.Orchestrator
	Notifier       *tmt.Notifier
	Logger         *slog.Logger
	AllowedOrigins []string  // CORS origins; empty means "*"
	AccessLog      io.Writer // nil disables request logging
}

// Server maps the HTTP surface onto the Orchestrator.
type Server struct {
	orc      *tmt.Orchestrator
	notifier *tmt.Notifier
	logger   *slog.Logger
	router   *mux.Router
	handler  http.Handler
}

// New builds the router and middleware chain.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		orc:      cfg.Orchestrator,
		notifier: cfg.Notifier,
		logger:   logger,
		router:   mux.NewRouter(),
	}

	s.routes()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = s.router
	if cfg.AccessLog != nil {
		h = handlers.LoggingHandler(cfg.AccessLog, h)
	}
	s.handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)

	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/languages", s.handleGetLanguages).Methods(http.MethodGet)
	api.HandleFunc("/languages/standard", s.handleStandardLanguages).Methods(http.MethodGet)
	api.HandleFunc("/languages", s.handleAddLanguage).Methods(http.MethodPost)

	api.HandleFunc("/translations", s.handleListTranslations).Methods(http.MethodGet)
	api.HandleFunc("/translations", s.handleCreateTranslation).Methods(http.MethodPost)
	api.HandleFunc("/translations/{id}", s.handleUpdateTranslation).Methods(http.MethodPut)
	api.HandleFunc("/translations/{id}", s.handleDeleteTranslation).Methods(http.MethodDelete)
	api.HandleFunc("/translations/{id}/regenerate", s.handleRegenerateTranslation).Methods(http.MethodPost)

	api.HandleFunc("/export/json", s.handleExportJSON).Methods(http.MethodGet)

	s.router.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler with the full middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Every failure body
// carries success=false and a human-readable message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var (
		validationErr *tmt.ValidationError
		dupKeyErr     *tmt.DuplicateKeyError
		dupLangErr    *tmt.DuplicateLanguageError
		notFoundErr   *tmt.NotFoundError
		storeErr      *tmt.StoreError
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &dupKeyErr), errors.As(err, &dupLangErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &storeErr):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func (s *Server) handleGetLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := s.orc.Languages(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"languages": langs,
	})
}

func (s *Server) handleStandardLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"languages": tmt.StandardLanguages,
	})
}

func (s *Server) handleAddLanguage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	lang, updated, err := s.orc.AddLanguage(r.Context(), body.Code, body.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":              true,
		"code":                 lang.Code,
		"name":                 lang.Name,
		"translations_updated": updated,
	})
}

func (s *Server) handleListTranslations(w http.ResponseWriter, r *http.Request) {
	q := tmt.ListQuery{
		Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:    tmt.SortField(r.URL.Query().Get("sort")),
		Order:   tmt.SortOrder(r.URL.Query().Get("order")),
		Page:    intParam(r, "page", 1),
		PerPage: intParam(r, "per", 20),
	}

	result, err := s.orc.List(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	items := result.Items
	if items == nil {
		items = []tmt.Translation{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"translations": items,
		"page":         result.Page,
		"per":          result.PerPage,
		"total":        result.Total,
	})
}

func (s *Server) handleCreateTranslation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key       string   `json:"key"`
		Value     string   `json:"value"`
		Languages []string `json:"languages"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	tr, err := s.orc.Create(r.Context(), body.Key, strings.TrimSpace(body.Value), body.Languages)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"translation": tr,
	})
}

func (s *Server) handleUpdateTranslation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Values map[string]string `json:"values"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	tr, err := s.orc.Update(r.Context(), mux.Vars(r)["id"], body.Values)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"translation": tr,
	})
}

func (s *Server) handleDeleteTranslation(w http.ResponseWriter, r *http.Request) {
	if err := s.orc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *Server) handleRegenerateTranslation(w http.ResponseWriter, r *http.Request) {
	tr, err := s.orc.Regenerate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"translation": tr,
	})
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	docs, err := s.orc.Export(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if docs == nil {
		docs = []tmt.Translation{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="translations_export.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(docs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.orc.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// decodeBody parses a JSON request body, answering 400 on malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, &tmt.ValidationError{Field: "body", Message: "invalid JSON"})
		return false
	}
	return true
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
