package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"igposts/pkg/config"
	errs "igposts/pkg/errors"
	"igposts/pkg/logger"
	"igposts/pkg/runner"
	"igposts/pkg/ui"
)

var (
	// Export flags
	inputPath   string
	outputPath  string
	format      string
	maxPosts    int
	live        bool
	seed        string
	maxRetries  int
	timeoutSecs int
)

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON file with the usernames to export")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: data/sample_output.json)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or csv")
	rootCmd.Flags().IntVarP(&maxPosts, "max-posts", "n", 0, "maximum posts per profile (0 for no limit)")
	rootCmd.Flags().BoolVar(&live, "live", false, "fetch profile pages instead of generating posts")
	rootCmd.Flags().StringVar(&seed, "seed", "", "seed for generated engagement numbers")
	rootCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "attempts per live profile fetch")
	rootCmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "live request timeout in seconds")
}

// exportFlags collects the flags the user actually set so that unset flags
// never override the settings file or the environment.
func exportFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := cmd.Flags().Changed

	if changed("input") {
		flags["input"] = inputPath
	}
	if changed("output") {
		flags["output"] = outputPath
	}
	if changed("format") {
		flags["format"] = format
	}
	if changed("max-posts") {
		flags["max-posts"] = maxPosts
	}
	if changed("live") {
		flags["live"] = live
	}
	if changed("seed") {
		flags["seed"] = seed
	}
	if changed("max-retries") {
		flags["max-retries"] = maxRetries
	}
	if changed("timeout") {
		flags["timeout"] = timeoutSecs
	}

	switch {
	case logLevel != "":
		flags["log-level"] = logLevel
	case quiet:
		flags["log-level"] = "error"
	}

	return flags
}

// cleanArgs drops blank usernames given on the command line
func cleanArgs(args []string) []string {
	usernames := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			usernames = append(usernames, a)
		}
	}
	return usernames
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, exportFlags(cmd))
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "load settings")
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()

	console := ui.NewConsole(cmd.OutOrStdout(), quiet, noColor)
	console.PrintLogo()

	r, err := runner.New(cfg,
		runner.WithReporter(ui.NewProgressDisplay(console)),
		runner.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize runner: %w", err)
	}

	usernames := cleanArgs(args)
	if len(usernames) == 0 {
		usernames, err = r.LoadUsernames(cfg.InputPath)
		if err != nil {
			return err
		}
		console.PrintInfo("Input", cfg.InputPath)
	}

	mode := "generated"
	if !cfg.Mock {
		mode = "live"
	}
	console.PrintInfo("Profiles", fmt.Sprintf("%d (%s)", len(usernames), mode))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := ui.NewNotifier(console)

	summary, err := r.Run(ctx, usernames)
	if err != nil {
		if notifications {
			if nerr := notifier.SendError("igposts", err.Error()); nerr != nil {
				log.WithError(nerr).Debug("notification not delivered")
			}
		}
		return err
	}

	console.RenderSummary(summary)

	if notifications {
		msg := fmt.Sprintf("%d posts written to %s", summary.Total, summary.OutputPath)
		if nerr := notifier.SendSuccess("igposts", msg); nerr != nil {
			log.WithError(nerr).Debug("notification not delivered")
		}
	}

	return nil
}
