package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the exoplanet archive",
}

var catalogListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List exoplanets, optionally filtered by name, host or method",
	Long: `Fetches the exoplanet table through the archive proxy (cached for the
configured TTL) and lists the planets matching the query. Queries with
glob metacharacters such as 'Kepler-*' are matched as patterns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogList,
}

var catalogClearCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop every cached catalog snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeCache, err := openCache(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		if err := newCatalogClient(cfg, store).ClearCache(ctx); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("Catalog cache cleared.")
		return nil
	},
}

func init() {
	catalogListCmd.Flags().Bool("all", false, "include candidate and false-positive planets")
	catalogListCmd.Flags().Int("limit", 50, "maximum number of planets to print (0 for all)")
	catalogListCmd.Flags().String("table", "", "archive table (overrides config)")
	catalogListCmd.Flags().Bool("json", false, "output planets as JSON")
	catalogCmd.AddCommand(catalogListCmd, catalogClearCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if table, _ := cmd.Flags().GetString("table"); table != "" {
		cfg.Catalog.Table = table
	}

	store, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	client := newCatalogClient(cfg, store)

	var planets []catalog.Exoplanet
	if all, _ := cmd.Flags().GetBool("all"); all {
		planets, err = client.FetchExoplanets(ctx, "", catalog.DefaultFormat)
	} else {
		planets, err = client.FetchConfirmed(ctx)
	}
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	matched := catalog.Filter(planets, query)
	limit, _ := cmd.Flags().GetInt("limit")
	shown := catalog.Limit(matched, limit)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(shown)
	}

	if len(shown) == 0 {
		fmt.Println("No exoplanets found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tHOST\tMETHOD\tYEAR\tDIST (pc)\tTEMP (K)\tRADIUS (R⊕)")
	for _, p := range shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Host, truncate(p.DiscMethod, 24),
			formatInt(p.DiscYear), formatFloat(p.Distance(), 1), formatFloat(p.EqTemperature, 0), formatFloat(p.RadiusEarth, 2))
	}
	tw.Flush()

	if len(shown) < len(matched) {
		fmt.Printf("\n%d of %d shown; use --limit 0 to list all.\n", len(shown), len(matched))
	}
	return nil
}

func formatFloat(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strings.TrimSpace(fmt.Sprintf("%.*f", prec, *v))
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
