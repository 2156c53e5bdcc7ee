package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/spacecanva/spacecanva/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the space
expert, catalog listing, scene placement and semantic search as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, closeCache, err := openCache(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		deps := mcpserver.Deps{
			Catalog: newCatalogClient(cfg, store),
			Scene:   cfg.Scene,
			Logger:  logger.Named("mcp"),
		}

		// The expert tool needs an API key; the others work without one.
		if service, err := newLaboratoryService(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ask_space_expert disabled: %v\n", err)
		} else {
			deps.Expert = service
		}

		idx, err := loadSearchIndex(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: search_exoplanets disabled: %v\n", err)
		} else {
			deps.Searcher = idx
			if idx.Count() == 0 {
				fmt.Fprintf(os.Stderr, "Search index is empty. Run `spacecanva index` first.\n")
			}
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		return mcpserver.NewServer(deps).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
