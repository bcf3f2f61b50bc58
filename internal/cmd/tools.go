package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/multilead/multilead-mcp/internal/config"
	"github.com/multilead/multilead-mcp/internal/tools"
	"github.com/multilead/multilead-mcp/internal/upstream"
)

var toolsOutputFormat string

type toolListing struct {
	Name        string `json:"name"`
	Access      string `json:"access"`
	Description string `json:"description"`
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool catalog",
	Long:  "List every MCP tool this server exposes, with its access mode.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		client := upstream.NewClient(cfg.BaseURL, cfg.APIKey)
		registry := tools.NewRegistry(client)

		listings := make([]toolListing, 0, registry.Len())
		for _, t := range registry.Tools() {
			access := "read-write"
			if t.ReadOnly {
				access = "read-only"
			}
			listings = append(listings, toolListing{
				Name:        t.Name,
				Access:      access,
				Description: t.Description,
			})
		}

		switch toolsOutputFormat {
		case "json":
			payload, err := json.MarshalIndent(listings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			return nil
		case "table":
			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Tool", "Access", "Description"})
			for _, l := range listings {
				tw.AppendRow(table.Row{l.Name, l.Access, truncate(l.Description, 72)})
			}
			tw.AppendFooter(table.Row{fmt.Sprintf("%d tools", len(listings)), "", ""})
			fmt.Println(tw.Render())
			return nil
		default:
			return fmt.Errorf("unsupported output format: %s", toolsOutputFormat)
		}
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().StringVar(&toolsOutputFormat, "output-format", "table", "Output format: table|json")
}
