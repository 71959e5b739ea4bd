package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"igposts/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile    string
	logLevel      string
	noColor       bool
	notifications bool
	quiet         bool
)

// rootCmd runs an export when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "igposts [usernames...]",
	Short: "Export Instagram profile posts as normalized JSON or CSV",
	Long: `igposts collects the recent posts of one or more Instagram profiles,
normalizes them into a single record shape and writes them as JSON or CSV.

Usernames are taken from the command line or, when none are given, from the
input file (data/input_profiles.json by default). Posts are generated
deterministically unless --live is set; a live fetch that fails falls back
to generated posts so every run produces output.`,
	Example: `  # Export the default profiles with generated posts
  igposts

  # Export two profiles as CSV, at most 5 posts each
  igposts zuck instagram --format csv --max-posts 5 --output out/posts.csv

  # Try the live profile pages first
  igposts natgeo --live --max-retries 2`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewConsole(os.Stderr, false, noColor).PrintError("igposts failed", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (default: config/settings.json if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notify", false, "send a desktop notification when the run ends")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`igposts {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
