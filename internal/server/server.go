// Package server wires the chi HTTP surface: health and version beside
// the streamable MCP endpoint, with rate limiting applied to /mcp only.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/multilead/multilead-mcp/internal/config"
	apperrors "github.com/multilead/multilead-mcp/internal/errors"
	"github.com/multilead/multilead-mcp/internal/observability"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/server/handlers"
	servermw "github.com/multilead/multilead-mcp/internal/server/middleware"
	"github.com/multilead/multilead-mcp/internal/tools"
)

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    *config.Config
}

// New creates a new HTTP server instance. The registry supplies the MCP
// surface; the governor gates /mcp requests per client address.
func New(cfg *config.Config, registry *tools.Registry, governor *ratelimit.Governor, health *handlers.HealthManager) *Server {
	r := chi.NewRouter()

	// Standard chi middleware
	r.Use(middleware.RealIP)

	// Our custom middleware in correct order (RequestID → Logging → Recovery)
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestLogger)
	r.Use(servermw.Recovery)

	// Standardized error responses using centralized HandleError
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	s := &Server{
		router: r,
		cfg:    cfg,
	}

	s.registerRoutes(registry, governor, health)

	return s
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(registry *tools.Registry, governor *ratelimit.Governor, health *handlers.HealthManager) {
	s.router.Get("/health", health.HealthHandler)
	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	// The MCP endpoint carries every tool call; it alone is rate limited.
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return newMCPServer(registry)
	}, nil)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(identityMiddleware)
		r.Use(ratelimit.Middleware(governor))
		r.Handle("/", mcpHandler)
		r.Handle("/*", mcpHandler)
	})
}

// newMCPServer builds a per-connection MCP server with the full catalog.
func newMCPServer(registry *tools.Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    handlers.AppName,
		Version: handlers.AppVersion,
	}, nil)
	registry.Attach(server)
	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  timeoutOrDefault(s.cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: timeoutOrDefault(s.cfg.Server.WriteTimeout, 60*time.Second),
		IdleTimeout:  timeoutOrDefault(s.cfg.Server.IdleTimeout, 120*time.Second),
	}

	observability.ServerLogger.Info("Starting HTTP server",
		zap.String("host", s.cfg.Server.Host),
		zap.Int("port", s.cfg.Server.Port),
		zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	observability.ServerLogger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

func timeoutOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
