package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tweetwipe/tweetwipe/internal/archive"
	"github.com/tweetwipe/tweetwipe/internal/config"
	"github.com/tweetwipe/tweetwipe/internal/deleter"
	"github.com/tweetwipe/tweetwipe/internal/filter"
	"github.com/tweetwipe/tweetwipe/internal/logger"
	"github.com/tweetwipe/tweetwipe/internal/prompt"
	"github.com/tweetwipe/tweetwipe/internal/run"
	"github.com/tweetwipe/tweetwipe/internal/scheduler"
	"github.com/tweetwipe/tweetwipe/internal/twitter"
)

var (
	runConfigPath     string
	runConsumerKey    string
	runConsumerSecret string
	runAccessToken    string
	runAccessSecret   string
	runBefore         string
	runDryRun         bool
	runRepliesOnly    bool
	runTopLevelOnly   bool
	runMaxTasks       int
	runYes            bool
	runDebug          bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run ARCHIVE_PATH",
	Short: "Delete tweets listed in the archive",
	Long: `Delete tweets from the account, using the unzipped Twitter archive at
ARCHIVE_PATH as the source of tweet IDs. Filters select which tweets are
eligible; without --yes a confirmation prompt guards live deletion.`,
	Args: cobra.ExactArgs(1),
	Run:  runHandler,
}

func runHandler(cmd *cobra.Command, args []string) {
	config.LoadDotEnv()

	configPath := runConfigPath
	if configPath == "" {
		configPath = "tweetwipe.toml"
	}

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file.
	if runConsumerKey != "" {
		cfg.Auth.ConsumerKey = runConsumerKey
	}
	if runConsumerSecret != "" {
		cfg.Auth.ConsumerSecret = runConsumerSecret
	}
	if runAccessToken != "" {
		cfg.Auth.AccessToken = runAccessToken
	}
	if runAccessSecret != "" {
		cfg.Auth.AccessTokenSecret = runAccessSecret
	}
	if cmd.Flags().Changed("max-tasks") {
		cfg.Run.MaxTasks = runMaxTasks
	}
	if runDebug {
		cfg.Logging.Level = "debug"
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Printf("❌ Configuration validation failed:\n")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	if cfg.Auth.ConsumerKey == "" || cfg.Auth.ConsumerSecret == "" {
		fmt.Printf("❌ Consumer key and secret are required (flags, %s, or %s/%s)\n",
			configPath, config.EnvConsumerKey, config.EnvConsumerSecret)
		os.Exit(1)
	}

	filterCfg, err := buildFilter(runBefore, runRepliesOnly, runTopLevelOnly)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	posts, err := archive.Load(args[0], log)
	if err != nil {
		color.Red("🚨 %v", err)
		os.Exit(1)
	}
	color.Green("🔎 Loaded %d tweets from archive", len(posts))

	creds := twitter.Credentials{
		ConsumerKey:    cfg.Auth.ConsumerKey,
		ConsumerSecret: cfg.Auth.ConsumerSecret,
		AccessToken:    cfg.Auth.AccessToken,
		AccessSecret:   cfg.Auth.AccessTokenSecret,
	}

	token, err := twitter.Authorize(creds, func(authorizeURL string) (string, error) {
		color.Cyan("No access token provided, please authorize your account with this URL: %s", authorizeURL)
		return prompt.PIN()
	})
	if err != nil {
		color.Red("🚨 %v", err)
		os.Exit(1)
	}

	client := twitter.NewClient(creds, token)
	screenName, err := client.VerifyCredentials(ctx)
	if err != nil {
		color.Red("🚨 %v", err)
		os.Exit(1)
	}
	color.Green("🔓 Logged in as @%s", screenName)

	if runDryRun {
		color.Yellow("🥸 Running in dry-run mode")
	}
	color.Cyan("✨ Starting tweet deletion")

	d := deleter.New(client, deleter.Config{DryRun: runDryRun}, log)

	controller := run.New(run.Options{
		Filter: filterCfg,
		Scheduler: scheduler.Config{
			MaxTasks: cfg.Run.MaxTasks,
			DryRun:   runDryRun,
		},
		Yes:          runYes,
		ShowProgress: true,
	}, d, prompt.Confirm, log)

	summary, err := controller.Execute(ctx, posts)
	summary.Report(os.Stdout)

	switch {
	case errors.Is(err, run.ErrDeclined):
		color.Red("Aborting")
		os.Exit(2)
	case err != nil:
		color.Red("🚨 %v", err)
		os.Exit(1)
	}
}

// buildFilter turns the filter flags into a filter configuration.
func buildFilter(before string, repliesOnly, topLevelOnly bool) (filter.Config, error) {
	var cfg filter.Config

	switch {
	case repliesOnly:
		cfg.Mode = filter.ModeRepliesOnly
	case topLevelOnly:
		cfg.Mode = filter.ModeTopLevelOnly
	}

	if before != "" {
		cutoff, err := time.Parse("2006-01-02", before)
		if err != nil {
			return cfg, fmt.Errorf("invalid --before date %q (expected YYYY-MM-DD)", before)
		}
		cfg.Before = &cutoff
	}

	return cfg, nil
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to configuration file (default: ./tweetwipe.toml)")
	runCmd.Flags().StringVar(&runConsumerKey, "consumer-key", "", "Consumer key for the Twitter API")
	runCmd.Flags().StringVar(&runConsumerSecret, "consumer-secret", "", "Consumer secret for the Twitter API")
	runCmd.Flags().StringVar(&runAccessToken, "access-token", "", "Access token for the Twitter API (skips the PIN flow)")
	runCmd.Flags().StringVar(&runAccessSecret, "access-token-secret", "", "Access token secret for the Twitter API")
	runCmd.Flags().StringVar(&runBefore, "before", "", "Only delete tweets older than this date (YYYY-MM-DD)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Compute outcomes without performing real deletions")
	runCmd.Flags().BoolVar(&runRepliesOnly, "replies-only", false, "Only delete reply tweets")
	runCmd.Flags().BoolVar(&runTopLevelOnly, "top-level-only", false, "Only delete top-level tweets")
	runCmd.Flags().IntVar(&runMaxTasks, "max-tasks", scheduler.DefaultMaxTasks, "Maximum number of concurrent deletion tasks")
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "Bypass all confirmation prompts")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "Enable debug logging")

	runCmd.MarkFlagsMutuallyExclusive("replies-only", "top-level-only")
}
