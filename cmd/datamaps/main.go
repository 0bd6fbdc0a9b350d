package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "datamaps",
	Short: "In-memory data maps of workspaces, projects, states and issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to yaml config")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment override (dev, prod)")

	rootCmd.AddCommand(serveCmd, syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
