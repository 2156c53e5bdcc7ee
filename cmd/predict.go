package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/backend"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify a transit candidate with the workspace model",
	Long: `Sends the transit observation parameters of a candidate to the backend
model and prints its classification, class probabilities and the
features that weighed most.`,
	RunE: runPredict,
}

var predictInput backend.PredictionInput

func init() {
	f := predictCmd.Flags()
	f.StringVar(&userID, "user", "", "backend user id (overrides config)")
	f.Int64Var(&predictInput.WorkspaceID, "workspace", 0, "workspace id")
	f.Float64Var(&predictInput.OrbitalPeriod, "period", 0, "orbital period (days)")
	f.Float64Var(&predictInput.TransitDuration, "duration", 0, "transit duration (hours)")
	f.Float64Var(&predictInput.TransitDepth, "depth", 0, "transit depth (ppm)")
	f.Float64Var(&predictInput.ImpactParameter, "impact", 0, "impact parameter")
	f.Float64Var(&predictInput.SNR, "snr", 0, "signal-to-noise ratio")
	f.Float64Var(&predictInput.StellarTemp, "stellar-temp", 0, "stellar effective temperature (K)")
	f.Float64Var(&predictInput.StellarRadius, "stellar-radius", 0, "stellar radius (solar radii)")
	f.Float64Var(&predictInput.StellarLogG, "stellar-logg", 0, "stellar surface gravity (log g)")
	f.Float64Var(&predictInput.Magnitude, "magnitude", 0, "apparent magnitude")
	f.Bool("json", false, "output the prediction as JSON")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	if err := predictInput.Validate(); err != nil {
		return err
	}

	client, _, err := backendClient()
	if err != nil {
		return err
	}

	res, err := client.Predict(context.Background(), predictInput)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	fmt.Printf("Classification: %s (%.1f%% confidence)\n", res.Classification, res.Confidence*100)
	if res.Model.Name != "" {
		fmt.Printf("Model: %s %s", res.Model.Name, res.Model.Version)
		if res.Model.Accuracy > 0 {
			fmt.Printf(" (accuracy %.1f%%)", res.Model.Accuracy*100)
		}
		fmt.Println()
	}

	printRanked("\nProbabilities:", "CLASS\tPROBABILITY", res.Probabilities)
	printRanked("\nFeature importance:", "FEATURE\tWEIGHT", res.Model.FeatureImportance)
	return nil
}

// printRanked prints m sorted by descending value.
func printRanked(title, header string, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })

	fmt.Println(title)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%.3f\n", k, m[k])
	}
	tw.Flush()
}
