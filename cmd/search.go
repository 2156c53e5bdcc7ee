package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the indexed exoplanets",
	Long:  `Searches the exoplanet index using a natural language query, e.g. "temperate super-earths near the sun".`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().String("bucket", "", "filter by temperature bucket: cold, temperate, warm, hot")
	searchCmd.Flags().String("method", "", "filter by discovery method, e.g. Transit")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	limit, _ := cmd.Flags().GetInt("limit")
	bucket, _ := cmd.Flags().GetString("bucket")
	method, _ := cmd.Flags().GetString("method")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, err := loadSearchIndex(cfg)
	if err != nil {
		return err
	}
	if idx.Count() == 0 {
		fmt.Println("Search index is empty. Run `spacecanva index` first.")
		return nil
	}

	hits, err := idx.Search(ctx, strings.Join(args, " "), limit, &search.Filter{Bucket: bucket, Method: method})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printJSON(hits)
	}
	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(hits))
	for i, h := range hits {
		fmt.Printf("  %d. [%.1f%%] %s (%s)\n", i+1, h.Similarity*100, h.Name, h.Host)
		fmt.Printf("     %s\n\n", truncate(h.Content, 160))
	}
	return nil
}
