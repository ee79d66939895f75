package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tweetwipe/tweetwipe/internal/archive"
	"github.com/tweetwipe/tweetwipe/internal/filter"
	"github.com/tweetwipe/tweetwipe/internal/logger"
)

const previewSampleSize = 10

var (
	previewBefore       string
	previewRepliesOnly  bool
	previewTopLevelOnly bool
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview ARCHIVE_PATH",
	Short: "Show which tweets the filters would select",
	Long: `Load the archive and apply the filters without authenticating or
deleting anything. Prints the eligible count and a small sample.`,
	Args: cobra.ExactArgs(1),
	Run:  previewHandler,
}

func previewHandler(cmd *cobra.Command, args []string) {
	filterCfg, err := buildFilter(previewBefore, previewRepliesOnly, previewTopLevelOnly)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: "warn", Format: "text", Output: "stderr"})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	posts, err := archive.Load(args[0], log)
	if err != nil {
		color.Red("🚨 %v", err)
		os.Exit(1)
	}

	eligible := filter.Apply(posts, filterCfg)

	color.Green("🔎 Loaded %d tweets from archive", len(posts))
	color.Cyan("✨ %d tweets match the filters (%s)", len(eligible), filterCfg.Mode)

	for i, p := range eligible {
		if i >= previewSampleSize {
			fmt.Printf("  ... and %d more\n", len(eligible)-previewSampleSize)
			break
		}
		kind := "tweet"
		if p.IsReply() {
			kind = "reply"
		}
		fmt.Printf("  %s  %s  %s\n", p.ID, p.CreatedAt.UTC().Format("2006-01-02"), kind)
	}
}

func init() {
	previewCmd.Flags().StringVar(&previewBefore, "before", "", "Only count tweets older than this date (YYYY-MM-DD)")
	previewCmd.Flags().BoolVar(&previewRepliesOnly, "replies-only", false, "Only count reply tweets")
	previewCmd.Flags().BoolVar(&previewTopLevelOnly, "top-level-only", false, "Only count top-level tweets")

	previewCmd.MarkFlagsMutuallyExclusive("replies-only", "top-level-only")
}
