package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"igposts/pkg/config"
	errs "igposts/pkg/errors"
	"igposts/pkg/ui"
)

const defaultSettingsFile = ".igposts.yaml"

var forceInit bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings files",
	Long: `Manage igposts settings files.

Settings are loaded from, in order of priority:
  - Command line flags
  - Environment variables (IGPOSTS_*, also read from .env)
  - Settings file (JSON or YAML)
  - Default values`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Long: `Write a settings file holding every option with its default value.

The file is written to '` + defaultSettingsFile + `' unless --config names another path.
An existing file is left alone unless --force is given.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a settings file for errors",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing settings file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	console := ui.NewConsole(cmd.OutOrStdout(), quiet, noColor)

	path := configFile
	if path == "" {
		path = defaultSettingsFile
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	console.PrintSuccess("Settings file created: " + path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "load settings")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format settings: %w", err)
	}

	out := cmd.OutOrStdout()
	console := ui.NewConsole(out, quiet, noColor)
	console.PrintHighlight("Effective settings")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	console := ui.NewConsole(cmd.OutOrStdout(), quiet, noColor)

	if configFile != "" {
		console.PrintInfo("Validating", configFile)
	}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "load settings")
	}

	var problems []error
	if cfg.UnknownFormat() {
		console.PrintWarning(fmt.Sprintf("output_format %q is not json or csv; json will be written", cfg.OutputFormat))
	}
	if _, err := cfg.MaxPostsPerProfile.Resolve(); err != nil {
		// runs still go ahead without a limit
		console.PrintWarning(err.Error() + "; it will be ignored")
	}
	for _, p := range []string{cfg.OutputPath, cfg.SnapshotPath} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			problems = append(problems, fmt.Errorf("cannot create directory for %s: %w", p, err))
		}
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	console.PrintSuccess("Settings are valid")
	console.PrintInfo("Output", fmt.Sprintf("%s (%s)", cfg.OutputPath, cfg.Format()))
	console.PrintInfo("Snapshot", cfg.SnapshotPath)
	console.PrintInfo("Input", cfg.InputPath)
	console.PrintInfo("Mock", fmt.Sprintf("%t", cfg.Mock))
	console.PrintInfo("Max retries", fmt.Sprintf("%d", cfg.MaxRetries))
	console.PrintInfo("Log level", cfg.Logging.Level)
	return nil
}
