package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tweetwipe",
	Short: "Tweetwipe - bulk-delete tweets from a Twitter archive",
	Long: `Tweetwipe erases tweets from a Twitter account using a locally
exported archive as the source of truth. Tweets can be filtered by age and
by reply/top-level kind before deletion, and a dry-run mode previews the
result without touching the account.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
}
