package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/scene"
)

var sceneCmd = &cobra.Command{
	Use:   "scene [query]",
	Short: "Place confirmed exoplanets in 3D scene coordinates",
	Long: `Projects each confirmed planet's right ascension, declination and
distance into scene coordinates and prints its marker color, size and
orbit ring. Planets without coordinates or beyond --max-distance are
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScene,
}

func init() {
	sceneCmd.Flags().Float64("max-distance", 0, "maximum distance in parsecs (overrides config)")
	sceneCmd.Flags().Float64("distance-scale", 0, "scene units per parsec (overrides config)")
	sceneCmd.Flags().Int("limit", -1, "catalog entries considered before placement (overrides config)")
	sceneCmd.Flags().String("selected", "", "planet to highlight")
	sceneCmd.Flags().Bool("no-temperature-color", false, "use the default marker color for every planet")
	sceneCmd.Flags().Bool("json", false, "output markers as JSON")
	rootCmd.AddCommand(sceneCmd)
}

func runScene(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc := cfg.Scene
	if v, _ := cmd.Flags().GetFloat64("max-distance"); v > 0 {
		sc.MaxDistance = v
	}
	if v, _ := cmd.Flags().GetFloat64("distance-scale"); v > 0 {
		sc.DistanceScale = v
	}
	if v, _ := cmd.Flags().GetInt("limit"); v >= 0 {
		sc.Limit = v
	}
	if v, _ := cmd.Flags().GetBool("no-temperature-color"); v {
		sc.TemperatureColor = false
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
	if len(args) > 0 {
		planets = catalog.Filter(planets, args[0])
	}

	selected, _ := cmd.Flags().GetString("selected")
	markers := scene.Place(planets, sc, selected)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(markers)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tX\tY\tZ\tCOLOR\tSIZE\tBUCKET\tORBIT")
	for _, m := range markers {
		name := m.Name
		if m.Selected {
			name = "* " + name
		}
		orbit := "-"
		if m.Orbit != nil {
			orbit = fmt.Sprintf("%.3f-%.3f", m.Orbit.Inner, m.Orbit.Outer)
		}
		bucket := string(m.Bucket)
		if bucket == "" {
			bucket = "-"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%s\t%.2f\t%s\t%s\n",
			name, m.Position.X, m.Position.Y, m.Position.Z, m.Color, m.Size, bucket, orbit)
	}
	tw.Flush()

	fmt.Printf("\n%d of %d confirmed planet(s) placed within %.0f pc.\n", len(markers), len(planets), sc.MaxDistance)
	return nil
}
