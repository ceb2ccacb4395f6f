package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/config"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "studyverse",
	Short: "StudyVerse CLI - Study groups, questions and messaging",
	Long: `StudyVerse CLI is a command-line interface for the StudyVerse
study-group platform. Browse your feed, ask and answer questions in
study groups, message other learners, and watch live updates directly
from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/studyverse/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
