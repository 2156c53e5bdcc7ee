package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/backend"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage workspace datasets",
}

var datasetUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload an observation file to a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID, _ := cmd.Flags().GetInt64("workspace")
		client, _, err := backendClient()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening dataset: %w", err)
		}
		defer f.Close()

		ds, err := client.UploadDataset(context.Background(), workspaceID, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s as dataset %d", ds.Filename, ds.ID)
		if ds.Rows > 0 {
			fmt.Printf(" (%d rows)", ds.Rows)
		}
		fmt.Println()
		return nil
	},
}

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Start and monitor model training",
}

var trainingStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start training a model on a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID, _ := cmd.Flags().GetInt64("workspace")
		datasetID, _ := cmd.Flags().GetInt64("dataset")
		modelType, _ := cmd.Flags().GetString("model")
		watch, _ := cmd.Flags().GetBool("watch")

		client, cfg, err := backendClient()
		if err != nil {
			return err
		}
		session, err := client.StartTraining(context.Background(), backend.TrainingRequest{
			WorkspaceID: workspaceID,
			DatasetID:   datasetID,
			ModelType:   modelType,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Training session %d is %s.\n", session.ID, session.Status)

		if !watch {
			return nil
		}
		return watchTraining(client, workspaceID, cfg.Backend.PollInterval)
	},
}

var trainingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List training sessions of a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID, _ := cmd.Flags().GetInt64("workspace")
		watch, _ := cmd.Flags().GetBool("watch")

		client, cfg, err := backendClient()
		if err != nil {
			return err
		}
		if watch {
			return watchTraining(client, workspaceID, cfg.Backend.PollInterval)
		}

		sessions, err := client.ListTraining(context.Background(), workspaceID)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(sessions)
		}
		printSessions(sessions)
		return nil
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show training sessions and prediction history of a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID, _ := cmd.Flags().GetInt64("workspace")
		client, _, err := backendClient()
		if err != nil {
			return err
		}
		ov, err := client.Overview(context.Background(), workspaceID)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(ov)
		}

		fmt.Printf("Workspace %d\n\nTraining:\n", ov.WorkspaceID)
		printSessions(ov.Training)
		fmt.Println("\nAnalysis history:")
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCLASSIFICATION\tCONFIDENCE\tCREATED")
		for _, a := range ov.Analysis {
			fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%s\n", a.ID, a.Classification, a.Confidence*100, a.CreatedAt)
		}
		tw.Flush()
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{datasetUploadCmd, trainingStartCmd, trainingListCmd, overviewCmd} {
		c.Flags().Int64("workspace", 0, "workspace id")
		c.MarkFlagRequired("workspace")
	}
	trainingStartCmd.Flags().Int64("dataset", 0, "dataset id")
	trainingStartCmd.MarkFlagRequired("dataset")
	trainingStartCmd.Flags().String("model", "", "model type (backend default when empty)")
	trainingStartCmd.Flags().Bool("watch", false, "poll until training finishes")
	trainingListCmd.Flags().Bool("watch", false, "poll until no session is pending or running")
	trainingListCmd.Flags().Bool("json", false, "output sessions as JSON")
	overviewCmd.Flags().Bool("json", false, "output the overview as JSON")

	datasetCmd.PersistentFlags().StringVar(&userID, "user", "", "backend user id (overrides config)")
	trainingCmd.PersistentFlags().StringVar(&userID, "user", "", "backend user id (overrides config)")
	overviewCmd.Flags().StringVar(&userID, "user", "", "backend user id (overrides config)")

	datasetCmd.AddCommand(datasetUploadCmd)
	trainingCmd.AddCommand(trainingStartCmd, trainingListCmd)
	rootCmd.AddCommand(datasetCmd, trainingCmd, overviewCmd)
}

// watchTraining polls until no session is active or the user interrupts.
func watchTraining(client *backend.Client, workspaceID int64, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	poller := backend.NewPoller(client, workspaceID, interval, func(sessions []backend.TrainingSession) {
		fmt.Println()
		printSessions(sessions)
	}, logger.Named("poller"))

	poller.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	fmt.Println("\nNo training session is pending or running.")
	return nil
}

func printSessions(sessions []backend.TrainingSession) {
	if len(sessions) == 0 {
		fmt.Println("No training sessions.")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATASET\tMODEL\tSTATUS\tPROGRESS\tCREATED")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.0f%%\t%s\n", s.ID, s.DatasetID, s.ModelType, s.Status, s.Progress, s.CreatedAt)
	}
	tw.Flush()
}
