package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Content_Service/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "content",
	Short:         "Posts, comments, likes, communities and events over HTTP",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONTENT_CONFIG"), "YAML config file (or set CONTENT_CONFIG)")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
