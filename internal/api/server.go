// Package api provides the RESTful HTTP API server for ascii-frog.
//
// SYSTEM ARCHITECTURE ROLE:
// This module implements the HTTP interface layer of the system. Every endpoint converts
// its request into a parameter map and runs it through the same CommandExecutor the CLI
// uses, so validation and error codes are identical across interfaces.
//
// KEY RESPONSIBILITIES:
// - Expose rendering, listing and search via JSON endpoints
// - Apply the middleware stack (request id, access log, CORS, security headers, recovery)
// - Standardize responses with the APIResponse envelope
// - Serve the embedded terminal widget page and the OpenAPI document
//
// INTEGRATION POINTS:
// - internal/commands/types.go: Server.executor executes all operations through CommandExecutor
// - internal/errors/handlers.go: Server.errorHandler (HTTPErrorHandler) formats error responses
// - internal/validation/middleware.go: RequestValidator collects query, path and body parameters
// - internal/config/config.go: ServerConfig supplies address, timeouts and CORS origin
// - internal/api/openapi.go: machine-readable description at /api/openapi.json
// - internal/api/web/index.html: browser terminal widget served at /
//
// MIDDLEWARE STACK (outermost first):
// - Recovery: panics become 500 INTERNAL_ERROR envelopes
// - Request ID: X-Request-ID is echoed or generated with google/uuid
// - Access log: one zerolog event per request with status and duration
// - Security headers: helmet-style defaults without a content security policy
// - CORS: configurable origin, preflight answered with 204
//
// ENDPOINT STRUCTURE:
// - /api/templates, /api/frogs: template listing
// - /api/templates/{id}: render one template
// - /api/color-schemes: scheme listing
// - /api/generate-frog: render from a JSON body
// - /api/random-frog: random template with explicit, random or no scheme
// - /api/search: fuzzy template search
// - /api/terminal-config, /api/format-clipboard: terminal widget support
// - /health, /api/health: liveness
//
// USAGE PATTERNS:
// - Start server: Run(ctx) listens on the configured address until ctx is canceled
// - Tests: Handler() returns the full middleware-wrapped mux for httptest
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/froggen/ascii-frog/internal/commands"
	"github.com/froggen/ascii-frog/internal/config"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/validation"
	"github.com/rs/zerolog"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests
const ShutdownTimeout = 5 * time.Second

//go:embed web/index.html
var indexHTML []byte

// Server provides the HTTP API with middleware support
type Server struct {
	service      *service.Service
	executor     *commands.CommandExecutor
	requests     *validation.RequestValidator
	errorHandler *errors.HTTPErrorHandler
	logger       zerolog.Logger
	cfg          config.ServerConfig
	handler      http.Handler
}

// NewServer creates a new API server instance
func NewServer(svc *service.Service, cfg config.ServerConfig, logger zerolog.Logger) *Server {
	s := &Server{
		service:      svc,
		executor:     commands.NewCommandExecutor(svc),
		requests:     validation.NewRequestValidator(logger),
		errorHandler: errors.NewHTTPErrorHandler(true, logger),
		logger:       logger,
		cfg:          cfg,
	}
	s.handler = s.withMiddleware(s.routes())
	return s
}

// Handler returns the routed, middleware-wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/templates", s.only(http.MethodGet, s.handleListTemplates))
	mux.HandleFunc("/api/frogs", s.only(http.MethodGet, s.handleListTemplates))
	mux.HandleFunc("/api/templates/{id}", s.only(http.MethodGet, s.handleRenderTemplate))
	mux.HandleFunc("/api/color-schemes", s.only(http.MethodGet, s.handleListSchemes))
	mux.HandleFunc("/api/generate-frog", s.only(http.MethodPost, s.handleGenerateFrog))
	mux.HandleFunc("/api/random-frog", s.only(http.MethodGet, s.handleRandomFrog))
	mux.HandleFunc("/api/search", s.only(http.MethodGet, s.handleSearch))
	mux.HandleFunc("/api/terminal-config", s.only(http.MethodGet, s.handleTerminalConfig))
	mux.HandleFunc("/api/format-clipboard", s.only(http.MethodPost, s.handleFormatClipboard))
	mux.HandleFunc("/api/health", s.only(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/health", s.only(http.MethodGet, s.handleLiveness))

	mux.HandleFunc("/api/openapi.json", s.only(http.MethodGet, s.handleOpenAPISpec))
	mux.HandleFunc("/api/docs", s.only(http.MethodGet, s.handleOpenAPI))

	mux.HandleFunc("/{$}", s.only(http.MethodGet, s.handleIndex))
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// Run serves on the configured address until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "Failed to listen on "+s.cfg.Addr())
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("API server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("API server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *Server) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	s.writeJSON(w, APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, statusCode)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, statusCode int) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.writeError(w, errors.Wrap(err, errors.ErrCodeInternalError, "Failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// writeError writes an error response using the error handler
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

// execute runs a command and writes its result
func (s *Server) execute(w http.ResponseWriter, r *http.Request, command string, params map[string]interface{}) {
	result, err := s.executor.Execute(r.Context(), command, params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !result.Success {
		s.writeError(w, result.Err)
		return
	}

	s.writeResponse(w, result.Data, result.Message, http.StatusOK)
}

// params collects request parameters, writing the error response on failure
func (s *Server) params(w http.ResponseWriter, r *http.Request, pathKeys ...string) (map[string]interface{}, bool) {
	data, err := s.requests.ExtractRequestData(r, pathKeys...)
	if err != nil {
		s.requests.WriteError(w, err)
		return nil, false
	}
	return data, true
}

// handleListTemplates handles GET /api/templates and /api/frogs
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, commands.CmdListTemplates, nil)
}

// handleListSchemes handles GET /api/color-schemes
func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, commands.CmdListSchemes, nil)
}

// handleRenderTemplate handles GET /api/templates/{id}
func (s *Server) handleRenderTemplate(w http.ResponseWriter, r *http.Request) {
	params, ok := s.params(w, r, "id")
	if !ok {
		return
	}
	params["template"] = params["id"]
	delete(params, "id")

	s.execute(w, r, commands.CmdRender, params)
}

// handleGenerateFrog handles POST /api/generate-frog
func (s *Server) handleGenerateFrog(w http.ResponseWriter, r *http.Request) {
	params, ok := s.params(w, r)
	if !ok {
		return
	}
	if _, has := params["template"]; !has {
		if frog, has := params["frog"]; has {
			params["template"] = frog
		}
	}

	s.execute(w, r, commands.CmdRender, params)
}

// handleRandomFrog handles GET /api/random-frog. Without colorScheme or
// randomScheme the scheme is random as well.
func (s *Server) handleRandomFrog(w http.ResponseWriter, r *http.Request) {
	params, ok := s.params(w, r)
	if !ok {
		return
	}
	_, hasScheme := params["colorScheme"]
	_, hasRandom := params["randomScheme"]
	if !hasScheme && !hasRandom {
		params["randomScheme"] = true
	}

	s.execute(w, r, commands.CmdRandom, params)
}

// handleSearch handles GET /api/search?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, ok := s.params(w, r)
	if !ok {
		return
	}
	if q, has := params["q"]; has {
		params["query"] = q
	}

	s.execute(w, r, commands.CmdSearch, params)
}

// handleTerminalConfig handles GET /api/terminal-config
func (s *Server) handleTerminalConfig(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, commands.CmdTerminalConfig, nil)
}

// handleFormatClipboard handles POST /api/format-clipboard
func (s *Server) handleFormatClipboard(w http.ResponseWriter, r *http.Request) {
	params, ok := s.params(w, r)
	if !ok {
		return
	}
	s.execute(w, r, commands.CmdFormatClipboard, params)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, commands.CmdHealth, nil)
}

// handleLiveness handles GET /health with the bare status object probes expect
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.service.Health(), http.StatusOK)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, errors.RouteNotFoundError(r.URL.Path))
}
