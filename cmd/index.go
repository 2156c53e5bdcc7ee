package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/progress"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index of confirmed exoplanets",
	Long: `Fetches the confirmed exoplanets, embeds a description of each with the
configured embedder and persists the index under <data_dir>/vectordb.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("rebuild", false, "discard the persisted index before indexing")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if rebuild, _ := cmd.Flags().GetBool("rebuild"); rebuild {
		if err := os.RemoveAll(cfg.IndexDir()); err != nil {
			return fmt.Errorf("removing index: %w", err)
		}
	}

	idx, err := loadSearchIndex(cfg)
	if err != nil {
		return err
	}

	store, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	planets, err := newCatalogClient(cfg, store).FetchConfirmed(ctx)
	if err != nil {
		return err
	}

	added, err := idx.Index(ctx, planets, progress.NewReporter("Indexing exoplanets"))
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	if err := idx.Persist(cfg.IndexDir()); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	fmt.Printf("Indexed %d planet(s) (%d total) in %s\n", added, idx.Count(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Index saved to %s\n", cfg.IndexDir())
	return nil
}
