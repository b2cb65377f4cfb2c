// SPDX-License-Identifier: MIT

// Package server exposes the item parser over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/eveitems"
	"gitlab.com/fisherprime/eveitems/internal/config"
)

type (
	// Server serves the item parser API.
	Server struct {
		cfg    config.Server
		parser *eveitems.Parser
		table  eveitems.Lookup
		logger logrus.FieldLogger

		cache    *cache.Cache
		validate *validator.Validate
		http     *http.Server
	}

	// ParseRequest is the body of a parse request.
	ParseRequest struct {
		Text string `json:"text" validate:"required"`
		IDs  bool   `json:"ids"`
	}

	// ParseResponse is the body of a successful parse request.
	ParseResponse struct {
		Items any `json:"items"`
	}

	// TypeResponse describes an item type.
	TypeResponse struct {
		Name string `json:"name"`
		ID   uint64 `json:"id"`
	}

	// ErrorResponse is the body of a failed request.
	ErrorResponse struct {
		Error string `json:"error"`
	}
)

const cleanupFactor = 2

// New instantiates a Server.
//
// The parser's Config supplies the logger & lookup table.
func New(cfg config.Server, parser *eveitems.Parser) *Server {
	s := &Server{
		cfg:      cfg,
		parser:   parser,
		table:    parser.Config().Table,
		logger:   parser.Config().Logger,
		validate: validator.New(),
	}

	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, cleanupFactor*cfg.CacheTTL)
	}

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Routes builds the API's http.Handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Get("/types", s.handleTypeByName)
		r.Get("/types/{id}", s.handleTypeByID)
	})

	return r
}

// ListenAndServe serves the API until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("listening on %s", s.cfg.Addr)

	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	key := cacheKey(req)
	if s.cache != nil {
		if body, ok := s.cache.Get(key); ok {
			w.Header().Set("X-Cache", "hit")
			writeRaw(w, http.StatusOK, body.([]byte))
			return
		}
	}

	var (
		items any
		err   error
	)
	if req.IDs {
		items, err = s.parser.ParseWithID(r.Context(), req.Text)
	} else {
		items, err = s.parser.Parse(r.Context(), req.Text)
	}
	if err != nil {
		s.logger.WithField("request_id", middleware.GetReqID(r.Context())).Debugf("parse: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	body, err := json.Marshal(ParseResponse{Items: items})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.cache != nil {
		s.cache.SetDefault(key, body)
	}
	writeRaw(w, http.StatusOK, body)
}

func (s *Server) handleTypeByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	name, ok := s.table.Name(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown type id " + strconv.FormatUint(id, 10)})
		return
	}
	writeJSON(w, http.StatusOK, TypeResponse{ID: id, Name: name})
}

func (s *Server) handleTypeByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing name query parameter"})
		return
	}

	id, ok := s.table.ID(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown item name " + strconv.Quote(name)})
		return
	}
	writeJSON(w, http.StatusOK, TypeResponse{ID: id, Name: name})
}

// logRequests logs every request through the configured logrus.FieldLogger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Info("request")
	})
}

// cacheKey hashes the pasted text; the ids flag selects a distinct entry.
func cacheKey(req ParseRequest) string {
	key := strconv.FormatUint(xxhash.Sum64String(req.Text), 16)
	if req.IDs {
		key += ":ids"
	}

	return key
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status, body = http.StatusInternalServerError, []byte(`{"error":"encoding response"}`)
	}
	writeRaw(w, status, body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
