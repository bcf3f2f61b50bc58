package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/multilead/multilead-mcp/internal/config"
	errwrap "github.com/multilead/multilead-mcp/internal/errors"
	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/metrics"
	"github.com/multilead/multilead-mcp/internal/observability"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/server"
	"github.com/multilead/multilead-mcp/internal/server/handlers"
	"github.com/multilead/multilead-mcp/internal/tools"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

var (
	serverPort int
	serverHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP transport",
	Long: `Start the streamable HTTP transport with graceful shutdown support.

The MCP endpoint is served at /mcp beside /health, /version, and /metrics.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serverHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		observability.InitServerLogger(handlers.AppName, cfg.Logging.Level, cfg.Logging.Format)

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(handlers.AppName, cfg.Metrics.Port); err != nil {
				observability.ServerLogger.Error("Failed to initialize metrics", zap.Error(err))
				return errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed")
			}
		} else {
			observability.DisableMetrics()
		}
		metrics.SetServerStartTime(time.Now().Unix())

		observability.ServerLogger.Info("Initializing server",
			zap.String("service", handlers.AppName),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("base_url", cfg.BaseURL),
			zap.Bool("api_configured", cfg.Configured()))

		if !cfg.Configured() {
			observability.ServerLogger.Warn("Multilead API key not configured; tool calls will fail until MULTILEAD_API_KEY is set")
		}

		client := upstream.NewClient(cfg.BaseURL, cfg.APIKey)
		client.Timeout = cfg.Timeout()

		// The HTTP transport enforces quotas at the /mcp middleware, so the
		// invocation chain carries classification and logging only. Both
		// quota windows are consumed exactly once per request.
		governor := ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitPerHour)
		governor.StartPruning(cmd.Context(), time.Minute, 2*time.Hour)

		registry := tools.NewRegistry(client,
			invoke.WithClassification(),
			invoke.WithLogging(observability.ServerLogger),
		)

		health := handlers.NewHealthManager(handlers.AppName, versionInfo.Version, "http", cfg)
		srv := server.New(cfg, registry, governor, health)

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Shutdown handlers run LIFO: HTTP server first, logger flush last.
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Flushing logger...")
			if err := observability.ServerLogger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
					zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.WrapInternal(ctx, err, "server shutdown failed")
			}

			observability.ServerLogger.Info("HTTP server stopped gracefully")
			return nil
		})

		signals.OnReload(func(ctx context.Context) error {
			observability.ServerLogger.Info("Received SIGHUP: reloading configuration")

			reloaded, err := config.Load(cfgFile)
			if err != nil {
				observability.ServerLogger.Error("Failed to reload configuration", zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			// Credential and quota changes apply on the next request; server
			// binding changes require a restart.
			client.APIKey = reloaded.APIKey
			client.Timeout = reloaded.Timeout()

			observability.ServerLogger.Info("Configuration reloaded",
				zap.Bool("api_configured", reloaded.Configured()))
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			observability.ServerLogger.Warn("Failed to enable double-tap force quit",
				zap.Error(err))
		}

		g, ctx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			observability.ServerLogger.Info("Starting HTTP server...",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port))
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		g.Go(func() error {
			return signals.Listen(ctx)
		})

		if err := g.Wait(); err != nil {
			return errwrap.WrapInternal(cmd.Context(), err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")
}
