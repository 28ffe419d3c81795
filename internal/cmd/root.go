package cmd

import (
	"fmt"
	"os"

	"github.com/perchapp/cli/pkg/config"
	"github.com/perchapp/cli/pkg/logger"
	"github.com/perchapp/cli/pkg/output"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "perch-cli",
	Short: "Perch CLI - Social platform client",
	Long: `Perch CLI is a command-line interface for the Perch social
platform. Manage your account and profile directly from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize config and logger
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			fmt.Fprintf(os.Stderr, "Error: invalid output format %q\n", outputFmt)
			os.Exit(1)
		}
		config.SetString("output.format", outputFmt)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/perch/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}
