package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize spacecanva configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the laboratory model, search embeddings, catalog cache and server, and writes a .spacecanva.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
