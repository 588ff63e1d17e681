package cmd

import (
	"fmt"
	"os"

	"clipctl/pkg/completions"
	"clipctl/pkg/config"
	"clipctl/pkg/errors"
	"clipctl/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"

	// annotationSkipConfig marks commands that must run without a valid
	// configuration file.
	annotationSkipConfig = "clipctl/skip-config"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var outputFormat string
var dryRunFlag bool
var confirmFlag bool
var assumeYesFlag bool
var verboseFlag bool
var logLevel string
var configPathFlag string

// appConfig is loaded before every command that does not skip it.
var appConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:   "clipctl",
	Short: "Clipboard Control Tool",
	Long: `CLI tool for reading and writing the system clipboard. Supports text,
HTML (published as CF_HTML with a plain text alternative), file lists, images
and audio. Writes are recorded in a local SQLite history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[annotationSkipConfig] == "" {
			path, err := config.ResolvePath(configPathFlag)
			if err != nil {
				return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			appConfig = cfg
		}

		// Log level: explicit flag, then --verbose, then env/config
		level := appConfig.LogLevel
		if verboseFlag {
			level = "info"
		}
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.SetLevel(level)

		if !cmd.Flags().Changed("output-format") {
			outputFormat = appConfig.OutputFormat
		}
		return validateOutputFormat(outputFormat)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Annotations: map[string]string{
		annotationSkipConfig: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "clipctl version %s\n", ver)
		fmt.Fprintf(out, "Built: %s\n", bt)
		fmt.Fprintf(out, "Git commit: %s\n", gc)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", config.DefaultOutputFormat, "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be done without changing the clipboard")
	rootCmd.PersistentFlags().BoolVar(&confirmFlag, "confirm", false, "Prompt before changing the clipboard")
	rootCmd.PersistentFlags().BoolVarP(&assumeYesFlag, "yes", "y", false, "Answer yes to confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log the actions taken (same as --log-level info)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Config file (default is $CLIPCTL_CONFIG or the user config dir)")

	completions.RegisterCompletions(rootCmd)
}
