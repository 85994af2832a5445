// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz              liveness probe
//	POST   /v1/layouts           compute, store and return a layout
//	GET    /v1/layouts           list stored layout IDs
//	GET    /v1/layouts/{id}      fetch a stored snapshot
//	DELETE /v1/layouts/{id}      delete a stored snapshot
//
// Errors are JSON objects {"code": ..., "error": ...} carrying the codes of
// package errors.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mosaicflow/pkg/buildinfo"
	"github.com/matzehuels/mosaicflow/pkg/errors"
	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
	"github.com/matzehuels/mosaicflow/pkg/observability"
	"github.com/matzehuels/mosaicflow/pkg/pipeline"
	"github.com/matzehuels/mosaicflow/pkg/store"
)

// maxBodyBytes bounds layout request bodies.
const maxBodyBytes = 8 << 20

// Server serves layouts computed by Runner and persisted in Store.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// Defaults are the engine options manifests and requests override.
	Defaults masonry.Options
}

// New creates a Server.
func New(runner *pipeline.Runner, st store.Store, defaults masonry.Options, logger *log.Logger) *Server {
	return &Server{Runner: runner, Store: st, Logger: logger, Defaults: defaults}
}

// LayoutRequest is the body of POST /v1/layouts. Options override the
// manifest options, which override the server defaults.
type LayoutRequest struct {
	Manifest json.RawMessage `json:"manifest"`
	Options  json.RawMessage `json:"options,omitempty"`
}

// LayoutResponse is returned by POST /v1/layouts.
type LayoutResponse struct {
	ID        string            `json:"id"`
	Snapshot  masonry.Snapshot  `json:"snapshot"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

type health struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, health{Status: "ok", Build: buildinfo.Current()})
	})

	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.createLayout)
		r.Get("/", s.listLayouts)
		r.Get("/{id}", s.getLayout)
		r.Delete("/{id}", s.deleteLayout)
	})

	return r
}

// observe reports requests to the HTTP hooks and logs them.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.Logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", elapsed)
	})
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Manifest) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "manifest is required"))
		return
	}

	m, err := mfio.ReadJSON(bytes.NewReader(req.Manifest))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Layout: m.Options.Apply(s.Defaults)}
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options"))
			return
		}
	}
	opts.Layout.Observers = nil
	opts.Logger = s.Logger

	result, err := s.Runner.Execute(r.Context(), m, req.Manifest, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := result.Snapshot
	id, err := s.Store.Save(r.Context(), &snap)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := LayoutResponse{ID: id, Snapshot: snap, Cached: result.CacheInfo.LayoutHit}
	for format, data := range result.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

// statusOf maps error codes to HTTP status codes.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidID, errors.ErrCodeDuplicateItem, errors.ErrCodeMeasurement,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeItemNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"code":%q,"error":%q}`, errors.ErrCodeInternal, err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
