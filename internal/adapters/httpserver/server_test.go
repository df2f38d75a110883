package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vibary/internal/adapters/htmlexport"
	"vibary/internal/domain"
)

const documentJSON = `{"meta":{"title":"Dune","author":"Frank Herbert","essence":"Spice"},"screenplay":[{"id":"1","chapterTitle":"Arrakis","paragraphs":["The *spice* must flow."],"highlightPhrase":"spice","visual":{"layout":"typographic_storm","backgroundPattern":"dots","palette":{"primary":"#f4a460","secondary":"#8b4513","accent":"#ffd700","background":"#1a0f00","text":"#fff8dc"},"visualParams":{"shape":"spiky","motion":"explode","complexity":3,"speed":1}}}]}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doc, err := domain.DecodeDocument([]byte(documentJSON))
	if err != nil {
		t.Fatal(err)
	}
	exporter, err := htmlexport.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(doc, exporter, nil).Router()
}

func get(router http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"healthcheck", "/healthcheck", http.StatusOK, "text/plain", "ok"},
		{"page", "/", http.StatusOK, "text/html", "End of Volume"},
		{"document", "/api/document", http.StatusOK, "application/json", `"title":"Dune"`},
		{"scene", "/api/scenes/0?progress=0.5", http.StatusOK, "application/json", `"layout":"typographic_storm"`},
		{"scene default progress", "/api/scenes/0", http.StatusOK, "application/json", `"progress":0.5`},
		{"scene out of range", "/api/scenes/4", http.StatusNotFound, "application/json", `"code":"validation"`},
		{"scene bad index", "/api/scenes/first", http.StatusBadRequest, "application/json", `"code":"invalid_index"`},
		{"scene bad progress", "/api/scenes/0?progress=lots", http.StatusBadRequest, "application/json", `"code":"invalid_progress"`},
		{"scene progress out of range", "/api/scenes/0?progress=2", http.StatusBadRequest, "application/json", `"code":"validation"`},
		{"entity svg", "/api/scenes/0/entity.svg?size=64", http.StatusOK, "image/svg+xml", `width="64"`},
		{"entity png", "/api/scenes/0/entity.svg?size=16&format=png", http.StatusOK, "image/png", "PNG"},
		{"entity bad size", "/api/scenes/0/entity.svg?size=-1", http.StatusBadRequest, "application/json", `"code":"invalid_size"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want prefix %q", ct, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q: %.200s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestSceneTree(t *testing.T) {
	rec := get(newTestRouter(t), "/api/scenes/0?progress=0.5", nil)

	var resp sceneResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Active {
		t.Error("scene at 0.5 should be active")
	}
	if resp.Tree == nil {
		t.Fatal("tree missing")
	}
	if !strings.Contains(resp.Tree.PlainText(), "spice") {
		t.Errorf("tree text = %q", resp.Tree.PlainText())
	}
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := get(router, "/healthcheck", map[string]string{requestIDHeader: "abc-123"})
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want echo of abc-123", got)
	}

	rec = get(router, "/healthcheck", nil)
	if got := rec.Header().Get(requestIDHeader); len(got) != 36 {
		t.Errorf("generated request id = %q", got)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"local dev origin", "http://localhost:5173", true},
		{"loopback origin", "http://127.0.0.1:3000", true},
		{"foreign origin", "https://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, "/healthcheck", map[string]string{"Origin": tt.origin})
			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && got != tt.origin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.origin)
			}
			if !tt.allowed && got != "" {
				t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
			}
		})
	}
}
