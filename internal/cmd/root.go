// Package cmd wires the cobra command tree: serve (HTTP transport),
// stdio (MCP over stdin/stdout), tools, and version.
package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/spf13/cobra"

	"github.com/multilead/multilead-mcp/internal/config"
	"github.com/multilead/multilead-mcp/internal/observability"
	"github.com/multilead/multilead-mcp/internal/server/handlers"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
	handlers.SetVersionInfo(version, commit, buildDate)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   handlers.AppName,
	Short: "MCP server for the Multilead lead management API",
	Long: `An MCP (Model Context Protocol) server exposing the Multilead
lead and campaign management API as AI-callable tools.

Use "serve" for the HTTP transport or "stdio" for local MCP clients.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Disable global telemetry early so config loading never emits metrics
	// to stdout. Serve mode initializes proper telemetry later; the stdio
	// transport keeps it disabled because stdout carries MCP framing.
	disabledConfig := &telemetry.Config{Enabled: false}
	if sys, err := telemetry.NewSystem(disabledConfig); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; MULTILEAD_* env vars take precedence)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// initConfig loads configuration from defaults, the optional config file,
// and MULTILEAD_* environment variables.
func initConfig() {
	observability.InitCLILogger(handlers.AppName, verbose)

	if _, err := config.Load(cfgFile); err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to load configuration", err)
	}
}
