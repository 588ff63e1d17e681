package cmd

import (
	"encoding/json"
	"os"

	"clipctl/pkg/clipboard"

	"github.com/spf13/cobra"
)

var clipboardServeCmd = &cobra.Command{
	Use:    clipboard.ServeCommand,
	Hidden: true,
	Short:  "Internal: serve clipboard content over Wayland (do not call directly)",
	Annotations: map[string]string{
		annotationSkipConfig: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var sel clipboard.Selection
		if err := json.NewDecoder(os.Stdin).Decode(&sel); err != nil {
			return err
		}
		return clipboard.ServeSelection(sel)
	},
}
