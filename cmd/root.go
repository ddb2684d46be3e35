package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcriptgen",
	Short: "Turn YouTube videos into enriched transcript artifacts",
	Long: `transcriptgen fetches a YouTube video transcript, enriches it with
AI-generated summaries, highlights, key moments, topics and quotes, and
stores the result as a shareable artifact.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
