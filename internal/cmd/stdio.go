package cmd

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/multilead/multilead-mcp/internal/config"
	errwrap "github.com/multilead/multilead-mcp/internal/errors"
	"github.com/multilead/multilead-mcp/internal/invoke"
	"github.com/multilead/multilead-mcp/internal/observability"
	"github.com/multilead/multilead-mcp/internal/ratelimit"
	"github.com/multilead/multilead-mcp/internal/server/handlers"
	"github.com/multilead/multilead-mcp/internal/tools"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout",
	Long: `Serve the MCP protocol over stdin/stdout for local clients such as
Claude Desktop. Logs go to stderr so stdout carries only MCP framing;
metrics are disabled on this transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()

		observability.InitServerLogger(handlers.AppName, cfg.Logging.Level, cfg.Logging.Format)
		observability.DisableMetrics()

		if !cfg.Configured() {
			observability.ServerLogger.Warn("Multilead API key not configured; tool calls will fail until MULTILEAD_API_KEY is set")
		}

		client := upstream.NewClient(cfg.BaseURL, cfg.APIKey)
		client.Timeout = cfg.Timeout()

		// No HTTP middleware on this transport, so the quota check lives in
		// the invocation chain. Every call keys to the local identity.
		// Logging sits outside the rate limit so throttled calls still
		// leave a record.
		governor := ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitPerHour)
		governor.StartPruning(cmd.Context(), time.Minute, 2*time.Hour)

		registry := tools.NewRegistry(client,
			invoke.WithClassification(),
			invoke.WithLogging(observability.ServerLogger),
			invoke.WithRateLimit(governor, "stdio"),
		)

		mcpServer := mcp.NewServer(&mcp.Implementation{
			Name:    handlers.AppName,
			Version: versionInfo.Version,
		}, nil)
		registry.Attach(mcpServer)

		observability.ServerLogger.Info("Starting stdio transport",
			zap.String("service", handlers.AppName),
			zap.String("version", versionInfo.Version),
			zap.Int("tools", registry.Len()),
			zap.Bool("api_configured", cfg.Configured()))

		if err := mcpServer.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
			return errwrap.WrapInternal(cmd.Context(), err, "stdio transport error")
		}

		observability.ServerLogger.Info("Stdio transport stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
