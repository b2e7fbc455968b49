package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbgnviz/sbgnviz/pkg/buildinfo"
	"github.com/sbgnviz/sbgnviz/pkg/cache"
	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

// renderRequest is the JSON body accepted by POST /render. Raw SBGN-ML
// bodies are also accepted, with the options passed as query parameters.
type renderRequest struct {
	Document     string   `json:"document"`
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	Padding      *float64 `json:"padding,omitempty"`
	CloneMarkers *bool    `json:"clone_markers,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
}

// renderResponse is the JSON envelope returned when more than one format
// is requested. Artifact bytes are base64-encoded by encoding/json.
type renderResponse struct {
	DocHash   string            `json:"doc_hash,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
	Glyphs    int               `json:"glyphs,omitempty"`
	Arcs      int               `json:"arcs,omitempty"`
	Cached    bool              `json:"cached"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}

	opts := req.pipelineOptions()
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}

	if s.serveCached(w, r, "render", req, opts.Formats) {
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.respond(w, r, "render", req, opts.Formats, renderResponse{
		DocHash:   result.DocHash,
		Artifacts: result.Artifacts,
		Glyphs:    result.Stats.GlyphCount,
		Arcs:      result.Stats.ArcCount,
		Cached:    result.CacheInfo.RenderHit,
	})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}

	opts := req.pipelineOptions()
	if err := pipeline.ValidateOverviewFormats(opts.Formats); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}

	if s.serveCached(w, r, "overview", req, opts.Formats) {
		return
	}

	artifacts, cached, err := s.runner.Overview(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.respond(w, r, "overview", req, opts.Formats, renderResponse{
		Artifacts: artifacts,
		Cached:    cached,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// decodeRequest reads a render or overview request. A JSON content type
// selects the envelope form; anything else is treated as a raw SBGN-ML
// document with options in the query string.
func decodeRequest(r *http.Request) (*renderRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req renderRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		if req.Document == "" {
			return nil, fmt.Errorf("missing document")
		}
		return &req, nil
	}

	req := &renderRequest{Document: string(body)}
	q := r.URL.Query()
	if f := q.Get("format"); f != "" {
		req.Formats = strings.Split(f, ",")
	}
	if v := q.Get("scale"); v != "" {
		if req.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid scale: %q", v)
		}
	}
	if v := q.Get("padding"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid padding: %q", v)
		}
		req.Padding = &p
	}
	if v := q.Get("clone_markers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid clone_markers: %q", v)
		}
		req.CloneMarkers = &b
	}
	if v := q.Get("detailed"); v != "" {
		if req.Detailed, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid detailed: %q", v)
		}
	}
	return req, nil
}

// pipelineOptions maps a request onto pipeline options.
func (req *renderRequest) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Data:     []byte(req.Document),
		Formats:  req.Formats,
		Scale:    req.Scale,
		Padding:  req.Padding,
		Detailed: req.Detailed,
	}
	if req.CloneMarkers != nil && !*req.CloneMarkers {
		opts.NoCloneMarkers = true
	}
	opts.SetRenderDefaults()
	return opts
}

// cacheKey derives the response cache key for a request. The key hashes
// the document together with every option that changes the output.
func (req *renderRequest) cacheKey(keyer cache.Keyer, namespace string, formats []string) string {
	canonical := *req
	canonical.Formats = formats
	data, err := json.Marshal(canonical)
	if err != nil {
		return ""
	}
	return keyer.HTTPKey(namespace, cache.Hash(data))
}

// serveCached writes a previously cached response envelope if one exists.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, namespace string, req *renderRequest, formats []string) bool {
	if s.store == nil {
		return false
	}
	key := req.cacheKey(s.keyer, namespace, formats)
	if key == "" {
		return false
	}

	data, hit, err := s.store.Get(r.Context(), key)
	if err != nil || !hit {
		return false
	}

	var resp renderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return false
	}
	resp.Cached = true
	s.writeResponse(w, formats, resp)
	return true
}

// respond writes the response and stores it in the response cache.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, namespace string, req *renderRequest, formats []string, resp renderResponse) {
	if s.store != nil {
		if key := req.cacheKey(s.keyer, namespace, formats); key != "" {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.store.Set(r.Context(), key, data, cache.TTLHTTP); err != nil {
					s.logger.Warn("response cache set failed", "err", err)
				}
			}
		}
	}
	s.writeResponse(w, formats, resp)
}

// writeResponse sends either the raw artifact (single format) or the JSON
// envelope (multiple formats).
func (s *Server) writeResponse(w http.ResponseWriter, formats []string, resp renderResponse) {
	if len(formats) == 1 {
		format := formats[0]
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		w.Write(resp.Artifacts[format])
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// respondError writes a JSON error. Structured errors select their own
// status; fallback covers plain errors.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, fallback int, err error) {
	status := fallback
	code := apperrors.GetCode(err)
	if code != "" {
		status = apperrors.HTTPStatus(code)
	}

	s.logger.Warn("request failed", "path", r.URL.Path, "status", status, "err", err)
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Code:      string(code),
		RequestID: w.Header().Get(requestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}
