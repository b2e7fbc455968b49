package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sbgnviz/sbgnviz/pkg/cache"
	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<sbgn xmlns="http://sbgn.org/libsbgn/0.2">
  <map language="process description">
    <glyph id="g1" class="macromolecule">
      <label text="ERK"/>
      <bbox x="10" y="10" w="108" h="58"/>
    </glyph>
    <glyph id="p1" class="process">
      <bbox x="140" y="30" w="20" h="20"/>
    </glyph>
    <arc id="a1" class="consumption" source="g1" target="p1">
      <start x="118" y="40"/>
      <end x="140" y="40"/>
    </arc>
  </map>
</sbgn>`

func testServer(t *testing.T, store cache.Cache) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{
		Logger: logger,
		Runner: pipeline.NewRunner(store, nil, logger),
		Cache:  store,
	})
}

func doRequest(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t, nil)
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want status ok", rec.Body.String())
	}
}

func TestVersion(t *testing.T) {
	s := testServer(t, nil)
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Errorf("body missing version field: %v", body)
	}
}

func TestRenderRawSVG(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/render?format=svg", strings.NewReader(sampleDoc))
	rec := doRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("body does not look like SVG")
	}
}

func TestRenderJSONEnvelope(t *testing.T) {
	s := testServer(t, nil)
	payload, _ := json.Marshal(renderRequest{
		Document: sampleDoc,
		Formats:  []string{"svg", "png"},
	})
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(resp.Artifacts))
	}
	if !bytes.Contains(resp.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact does not look like SVG")
	}
	if !bytes.HasPrefix(resp.Artifacts["png"], []byte("\x89PNG")) {
		t.Errorf("png artifact does not look like PNG")
	}
	if resp.Glyphs != 2 || resp.Arcs != 1 {
		t.Errorf("stats = %d glyphs, %d arcs, want 2 and 1", resp.Glyphs, resp.Arcs)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/render?format=gif", strings.NewReader(sampleDoc))
	rec := doRequest(t, s, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRenderEmptyBody(t *testing.T) {
	s := testServer(t, nil)
	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/render", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRenderMalformedDocument(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("not xml at all"))
	rec := doRequest(t, s, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Errorf("error response has empty message")
	}
	if resp.Code != "PARSE_FAILED" {
		t.Errorf("error code = %q, want PARSE_FAILED", resp.Code)
	}
}

func TestOverviewDOT(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/overview?format=dot", strings.NewReader(sampleDoc))
	rec := doRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "digraph") {
		t.Errorf("body is not DOT output: %q", rec.Body.String())
	}
}

func TestResponseCache(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := testServer(t, store)

	payload, _ := json.Marshal(renderRequest{
		Document: sampleDoc,
		Formats:  []string{"svg", "png"},
	})

	send := func() renderResponse {
		req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := doRequest(t, s, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp renderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}

	first := send()
	if first.Cached {
		t.Errorf("first response reported cached")
	}
	second := send()
	if !second.Cached {
		t.Errorf("second response not served from cache")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Errorf("cached artifact differs from computed artifact")
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := testServer(t, nil)
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec = doRequest(t, s, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("request id = %q, want upstream-id", got)
	}
}
