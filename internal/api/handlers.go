package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/godswood/pkg/buildinfo"
	"github.com/matzehuels/godswood/pkg/cache"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/pipeline"
)

// =============================================================================
// Wire Types
// =============================================================================

// Request is the body of the layout and render endpoints.
type Request struct {
	Trees   []json.RawMessage `json:"trees"`
	Options pipeline.Options  `json:"options"`
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	Scene     graph.Scene `json:"scene"`
	SceneHash string      `json:"scene_hash"`
	Cached    bool        `json:"cached"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// HealthResponse is the body returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Cache   string `json:"cache,omitempty"`
}

// ErrorBody is the error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and a message.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// contentTypes maps artifact formats to their media types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

type pinger interface {
	Ping(ctx context.Context) error
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: buildinfo.Version}
	if p, ok := s.runner.Cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Cache = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Cache = "ok"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(wood.SampleTree)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	sc, cached, err := s.runner.GenerateSceneWithCacheInfo(ctx, opts)
	if err != nil && len(sc.Woods) == 0 {
		s.logger.Debug("layout failed", "error", err)
		writeError(w, err)
		return
	}

	resp := LayoutResponse{Scene: sc, Cached: cached}
	if err != nil {
		resp.Warnings = strings.Split(err.Error(), "\n")
	}
	if data, merr := graph.MarshalScene(sc); merr == nil {
		resp.SceneHash = cache.Hash(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Debug("render failed", "format", format, "error", err)
		writeError(w, err)
		return
	}

	hit := "miss"
	if result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit {
		hit = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Scene-Hash", result.SceneHash)
	w.Header().Set("X-Cache", hit)
	if len(result.Warnings) > 0 {
		w.Header().Set("X-Warnings", strings.Join(result.Warnings, "; "))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// decode reads a Request and turns it into pipeline options.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer body.Close()

	var req Request
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody)
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if len(req.Trees) == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request has no trees")
	}

	opts := req.Options
	opts.Documents = make([][]byte, len(req.Trees))
	for i, t := range req.Trees {
		opts.Documents[i] = t
	}
	opts.Logger = s.logger
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), ErrorBody{Error: ErrorDetail{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
