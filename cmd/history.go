package cmd

import (
	"fmt"
	"time"

	"clipctl/pkg/errors"
	"clipctl/pkg/filter"
	"clipctl/pkg/history"
	"clipctl/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historySearch     string
	historySearchMode string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the log of clipboard writes",
	Long: `When enabled, clipctl records every clipboard write it performs (operation,
format, a short preview, item count and size) in a local SQLite database.
History is off by default because previews may contain secrets. Enable it
with "history.enabled: true" in the config file or CLIPCTL_HISTORY=true.`,
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded clipboard writes, newest first",
	Example: `  # Last 10 writes
  clipctl history list --limit 10

  # Writes whose preview fuzzily matches "rprt"
  clipctl history list --search rprt --search-mode fuzzy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := filter.ParseMode(historySearchMode)
		if err != nil {
			return unknownValueError(err, historySearchMode, filter.ModeNames())
		}
		if historySearch == "" {
			mode = filter.FilterModeNone
		}
		f, err := filter.NewStringFilter(historySearch, mode)
		if err != nil {
			return errors.ValidationError(err.Error())
		}

		store, err := openHistory(appConfig)
		if err != nil {
			return err
		}
		defer store.Close()

		// Searches scan the whole history before applying the limit
		limit := historyLimit
		if mode != filter.FilterModeNone {
			limit = 0
		}
		entries, err := store.List(limit)
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeFileOperation, errors.ErrMsgHistoryFailed)
		}
		entries = filter.Apply(f, entries, func(e history.Entry) string { return e.Preview })
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}

		logger.Info().Int("count", len(entries)).Msg("Found history entries")

		output := NewOutputWriter(outputFormat)
		output.SetWriter(cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(entries)
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(w, "No clipboard history.")
			return nil
		}
		now := time.Now()
		fmt.Fprintf(w, "%-16s %-8s %-13s %5s %-9s %s\n", "WHEN", "OP", "FORMAT", "ITEMS", "SIZE", "PREVIEW")
		for _, e := range entries {
			format := e.Format
			if format == "" {
				format = "-"
			}
			fmt.Fprintf(w, "%-16s %-8s %-13s %5d %-9s %s\n",
				truncate(e.Age(now), 16), e.Operation, format, e.Items, e.Size(), truncate(e.Preview, 48))
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded clipboard writes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(appConfig)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count()
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeFileOperation, errors.ErrMsgHistoryFailed)
		}
		action := fmt.Sprintf("Delete %s from the clipboard history", pluralize(n, "entry", "entries"))
		ok, err := shouldProcess(action)
		if err != nil || !ok {
			return err
		}

		removed, err := store.Clear()
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeFileOperation, errors.ErrMsgHistoryFailed)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", pluralize(int(removed), "entry", "entries"))
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
	historyListCmd.Flags().StringVarP(&historySearch, "search", "s", "", "Only show entries whose preview matches")
	historyListCmd.Flags().StringVar(&historySearchMode, "search-mode", "contains", "How --search matches (contains, exact, regex, fuzzy)")
}
