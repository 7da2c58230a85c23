package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/froggen/ascii-frog/internal/config"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/renderer"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lib := storage.MustBuiltinLibrary(storage.WithRandom(func(n int) int { return n - 1 }))
	svc := service.NewService(lib, renderer.NewRenderer(lib), service.Options{
		Version:  "1.2.3",
		Terminal: models.DefaultTerminalConfig(),
		Logger:   zerolog.Nop(),
	})
	return NewServer(svc, config.DefaultConfig().Server, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestListTemplates(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/templates", "/api/frogs"} {
		rec, env := do(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, env.Success)

		var templates []models.TemplateSummary
		require.NoError(t, json.Unmarshal(env.Data, &templates))
		require.Len(t, templates, 7)
		require.Equal(t, "tiny", templates[0].ID)
	}
}

func TestListColorSchemes(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/color-schemes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var schemes []models.SchemeSummary
	require.NoError(t, json.Unmarshal(env.Data, &schemes))
	require.Len(t, schemes, 7)
	require.Equal(t, "tropical", schemes[1].ID)
}

func TestRenderTemplateByPath(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/templates/classic?colorScheme=tropical&format=html", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out models.RenderedOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, "classic", out.TemplateID)
	require.Equal(t, "tropical", out.ColorSchemeID)
	require.Equal(t, models.FormatHTML, out.Format)
	require.Contains(t, out.Text, `class="frog-eyes"`)
}

func TestRenderTemplateNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/templates/nonexistent-id", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, env.Success)
	require.Equal(t, "NOT_FOUND", env.Error.Code)
	require.Contains(t, env.Error.Message, "nonexistent-id")

	rec, env = do(t, s, http.MethodGet, "/api/templates/classic?colorScheme=does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, env.Error.Message, "does-not-exist")
	require.Nil(t, env.Data)
}

func TestGenerateFrog(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		template string
		scheme   string
	}{
		{"defaults to classic", `{}`, "classic", ""},
		{"template field", `{"template":"happy","colorScheme":"fire"}`, "happy", "fire"},
		{"frog alias", `{"frog":"sitting"}`, "sitting", ""},
		{"template wins over alias", `{"template":"tiny","frog":"large"}`, "tiny", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, s, http.MethodPost, "/api/generate-frog", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var out models.RenderedOutput
			require.NoError(t, json.Unmarshal(env.Data, &out))
			require.Equal(t, tt.template, out.TemplateID)
			require.Equal(t, tt.scheme, out.ColorSchemeID)
		})
	}
}

func TestGenerateFrogRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodPost, "/api/generate-frog", `{"format":"sixel"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, env = do(t, s, http.MethodPost, "/api/generate-frog", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-frog", strings.NewReader("template=classic"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	raw := httptest.NewRecorder()
	s.Handler().ServeHTTP(raw, req)
	require.Equal(t, http.StatusBadRequest, raw.Code)
	require.Contains(t, raw.Body.String(), "INVALID_FORMAT")
}

func TestRandomFrog(t *testing.T) {
	s := newTestServer(t)

	_, env := do(t, s, http.MethodGet, "/api/random-frog", "")
	var out models.RenderedOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, "wonder", out.TemplateID)
	require.Equal(t, "galaxy", out.ColorSchemeID)

	_, env = do(t, s, http.MethodGet, "/api/random-frog?colorScheme=neon", "")
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, "neon", out.ColorSchemeID)

	_, env = do(t, s, http.MethodGet, "/api/random-frog?randomScheme=false", "")
	out = models.RenderedOutput{}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Empty(t, out.ColorSchemeID)

	rec, env := do(t, s, http.MethodGet, "/api/random-frog?colorScheme=does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/search?q=sit&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.SearchResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	require.Equal(t, "sitting", results[0].ID)

	rec, _ = do(t, s, http.MethodGet, "/api/search?q=sit&limit=1000", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTerminalConfigAndClipboard(t *testing.T) {
	s := newTestServer(t)

	_, env := do(t, s, http.MethodGet, "/api/terminal-config", "")
	var cfg models.TerminalConfig
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	require.Equal(t, models.DefaultTerminalConfig(), cfg)

	body := `{"ascii":"<span class=\"frog-eyes\" style=\"color:magenta\">o</span>&lt;\n","frogName":"Classic Frog","format":"html"}`
	rec, env := do(t, s, http.MethodPost, "/api/format-clipboard", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var text struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &text))
	require.Equal(t, "o<\n\n🐸 Classic Frog", text.Text)

	rec, env = do(t, s, http.MethodPost, "/api/format-clipboard", `{"ascii":"_&lt;   &gt;_\n","frogName":"Classic Frog","format":"html"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &text))
	require.Equal(t, "_<   >_\n\n🐸 Classic Frog", text.Text)

	rec, env = do(t, s, http.MethodPost, "/api/format-clipboard", `{"frogName":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health models.HealthStatus
	require.NoError(t, json.Unmarshal(env.Data, &health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, "1.2.3", health.Version)

	rec, _ = do(t, s, http.MethodGet, "/health", "")
	var bare models.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bare))
	require.Equal(t, "healthy", bare.Status)
	require.Equal(t, service.ServiceName, bare.Service)
	require.Equal(t, 7, bare.Templates)
}

func TestRoutingErrors(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)

	rec, env = do(t, s, http.MethodDelete, "/api/templates", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
	require.Equal(t, http.MethodGet, rec.Header().Get("Allow"))

	rec, _ = do(t, s, http.MethodGet, "/api/generate-frog", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIndexAndOpenAPI(t *testing.T) {
	s := newTestServer(t)

	rec, _ := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "/api/generate-frog")

	rec, _ = do(t, s, http.MethodGet, "/api/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "3.0.3", doc["openapi"])
	paths := doc["paths"].(map[string]interface{})
	for _, p := range []string{"/api/templates", "/api/generate-frog", "/api/random-frog", "/health"} {
		require.Contains(t, paths, p)
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	s := newTestServer(t)

	rec, _ := do(t, s, http.MethodGet, "/api/templates", "")
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Empty(t, rec.Header().Get("Content-Security-Policy"))

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	echoed := httptest.NewRecorder()
	s.Handler().ServeHTTP(echoed, req)
	require.Equal(t, "abc-123", echoed.Header().Get(RequestIDHeader))

	preflight := httptest.NewRecorder()
	s.Handler().ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/api/generate-frog", nil))
	require.Equal(t, http.StatusNoContent, preflight.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t)
	h := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
}

func TestPanicIsLoggedAsServerError(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t)
	s.logger = zerolog.New(&logs)

	h := s.withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var access map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "request" {
			access = entry
		}
	}
	require.NotNil(t, access, "access log line missing: %s", logs.String())
	require.Equal(t, float64(http.StatusInternalServerError), access["status"])
	require.Equal(t, "error", access["level"])
	require.Equal(t, "req-1", access["request_id"])
}

func TestPanicAfterWriteKeepsResponse(t *testing.T) {
	s := newTestServer(t)
	h := s.withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "partial", rec.Body.String())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
