package cmd

import (
	"fmt"

	"clipctl/pkg/config"
	"clipctl/pkg/errors"

	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage clipctl configuration",
	Long:  `Show, locate and create the clipctl configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig

		output := NewOutputWriter(outputFormat)
		output.SetWriter(cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(cfg)
		}

		historyPath, err := cfg.HistoryPath()
		if err != nil {
			historyPath = "(unavailable)"
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Current Configuration:")
		fmt.Fprintln(w, "======================")
		fmt.Fprintf(w, "Line Break: %s\n", cfg.LineBreak)
		fmt.Fprintf(w, "Log Level: %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "Output Format: %s\n", cfg.OutputFormat)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "History: %s\n", func() string {
			if cfg.History.Enabled {
				return "enabled"
			}
			return "disabled"
		}())
		fmt.Fprintf(w, "History Max Entries: %d\n", cfg.History.MaxEntries)
		fmt.Fprintf(w, "History Path: %s\n", historyPath)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Image Max Size: %s\n", func() string {
			if cfg.Image.MaxWidth == 0 && cfg.Image.MaxHeight == 0 {
				return "(unbounded)"
			}
			return fmt.Sprintf("%dx%d", cfg.Image.MaxWidth, cfg.Image.MaxHeight)
		}())

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Annotations: map[string]string{
		annotationSkipConfig: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPathFlag)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Annotations: map[string]string{
		annotationSkipConfig: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPathFlag)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}
		if err := config.Init(path, configInitForce); err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Wrote default configuration to %s\n", path)
		fmt.Fprintln(w, "History is disabled. Set history.enabled to true to record a preview of each copied value.")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}
