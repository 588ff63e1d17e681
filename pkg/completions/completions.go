package completions

import (
	"fmt"
	"strings"

	"clipctl/pkg/clipboard"
	"clipctl/pkg/content"
	"clipctl/pkg/filter"

	"github.com/spf13/cobra"
)

type Completer struct{}

func NewCompleter() *Completer {
	return &Completer{}
}

func (c *Completer) CompleteContentFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.describe(content.FormatNames(), toComplete, getContentFormatDescription), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteTextFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.describe(clipboard.TextFormatNames(), toComplete, getTextFormatDescription), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteOutputFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{
		"table\tHuman-readable output",
		"json\tJSON output",
		"yaml\tYAML output",
	}
	return c.filterPrefix(formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteSearchMode(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.filterPrefix(filter.ModeNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteLogLevel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	levels := []string{"debug", "info", "warn", "error", "disabled"}
	return c.filterPrefix(levels, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) describe(names []string, toComplete string, description func(string) string) []string {
	results := c.filterPrefix(names, toComplete)
	for i, name := range results {
		if d := description(name); d != "" {
			results[i] = fmt.Sprintf("%s\t%s", name, d)
		}
	}
	return results
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func getContentFormatDescription(format string) string {
	switch format {
	case "text":
		return "Clipboard text"
	case "filedroplist":
		return "Copied files"
	case "image":
		return "Image, written as PNG"
	case "audio":
		return "Audio stream"
	default:
		return ""
	}
}

func getTextFormatDescription(format string) string {
	switch format {
	case "text", "unicodetext":
		return "Plain text"
	case "rtf":
		return "Rich Text Format"
	case "html":
		return "HTML fragment (CF_HTML)"
	case "csv":
		return "Comma-separated values"
	default:
		return ""
	}
}

func RegisterCompletions(rootCmd *cobra.Command) {
	completer := NewCompleter()

	rootCmd.RegisterFlagCompletionFunc("output-format", completer.CompleteOutputFormat)
	rootCmd.RegisterFlagCompletionFunc("log-level", completer.CompleteLogLevel)

	getCmd, _, _ := rootCmd.Find([]string{"get"})
	if getCmd != nil && getCmd != rootCmd {
		getCmd.RegisterFlagCompletionFunc("format", completer.CompleteContentFormat)
		getCmd.RegisterFlagCompletionFunc("text-format-type", completer.CompleteTextFormat)
	}

	historyListCmd, _, _ := rootCmd.Find([]string{"history", "list"})
	if historyListCmd != nil && historyListCmd != rootCmd {
		historyListCmd.RegisterFlagCompletionFunc("search-mode", completer.CompleteSearchMode)
	}
}
