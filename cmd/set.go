package cmd

import (
	stderrors "errors"
	"fmt"
	"io"

	"clipctl/pkg/content"
	"clipctl/pkg/errors"
	"clipctl/pkg/pathresolve"

	"github.com/spf13/cobra"
)

var (
	setAppend      bool
	setAsHTML      bool
	setPaths       []string
	setLiteralPath []string
)

// SetOutput is the structured result of set and clear.
type SetOutput struct {
	Action   string   `json:"action" yaml:"action"`
	Applied  bool     `json:"applied" yaml:"applied"`
	Appended bool     `json:"appended" yaml:"appended"`
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`
	Skipped  []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

var setCmd = &cobra.Command{
	Use:   "set [VALUE...]",
	Short: "Set the clipboard content",
	Long: `Set the clipboard to text values (one per line) or to a list of files.

With no values and no paths the clipboard is cleared. Values are read from
stdin, one per line, when the only argument is "-" or when stdin is piped.
With --append the values are added after the current clipboard text (or
file list); when the clipboard holds nothing appendable the command falls
back to a plain set.`,
	Example: `  # Copy a string
  clipctl set "hello world"

  # Copy command output, one value per line
  git log --oneline -5 | clipctl set

  # Append to the current clipboard text
  clipctl set --append "one more line"

  # Copy HTML so rich-text apps paste it formatted
  clipctl set --as-html "<b>bold</b> and <i>italic</i>"

  # Copy files matching a pattern
  clipctl set --path "./reports/**/*.pdf"

  # Add a file whose name contains wildcard characters
  clipctl set --append --literal-path "./draft[1].txt"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := newBackend()
		setter := newSetter(appConfig, backend)

		filePatterns := setPaths
		literal := false
		if len(setLiteralPath) > 0 {
			filePatterns = setLiteralPath
			literal = true
		}

		if len(filePatterns) > 0 {
			if len(args) > 0 {
				return errors.ValidationError("cannot combine values with --path or --literal-path")
			}
			if cmd.Flags().Changed("as-html") {
				return errors.ValidationError("--as-html applies to text values, not to files")
			}
			res, err := setter.SetFiles(content.FilesRequest{
				Paths:   filePatterns,
				Append:  setAppend,
				Literal: literal,
			})
			if err != nil {
				return commandError("set clipboard files", err)
			}
			if err := writeSetResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if len(res.Skipped) > 0 {
				return skippedPathsError(res.Skipped)
			}
			return nil
		}

		values, err := readValues(args)
		if err != nil {
			return err
		}
		res, err := setter.SetText(content.TextRequest{
			Values: values,
			Append: setAppend,
			AsHTML: setAsHTML,
		})
		if err != nil {
			return commandError("set clipboard text", err)
		}
		return writeSetResult(cmd.OutOrStdout(), res)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newSetter(appConfig, newBackend()).Clear()
		if err != nil {
			return commandError("clear clipboard", err)
		}
		return writeSetResult(cmd.OutOrStdout(), res)
	},
}

func writeSetResult(w io.Writer, res *content.SetResult) error {
	output := NewOutputWriter(outputFormat)
	output.SetWriter(w)
	if !output.IsStructured() {
		return nil
	}
	out := SetOutput{
		Action:   res.Action,
		Applied:  res.Applied,
		Appended: res.Appended,
		Items:    res.Items,
	}
	for _, err := range res.Skipped {
		out.Skipped = append(out.Skipped, notFoundPattern(err))
	}
	return output.Write(out)
}

func skippedPathsError(skipped []error) error {
	patterns := make([]string, 0, len(skipped))
	for _, err := range skipped {
		if !stderrors.Is(err, pathresolve.ErrNotFound) {
			return commandError("resolve path", err)
		}
		patterns = append(patterns, notFoundPattern(err))
	}
	e := errors.PathNotFoundError(patterns)
	if len(patterns) > 1 {
		e.Message = fmt.Sprintf("%d paths could not be resolved", len(patterns))
	}
	return e
}

func init() {
	setCmd.Flags().BoolVarP(&setAppend, "append", "a", false, "Append to the current clipboard content instead of replacing it")
	setCmd.Flags().BoolVar(&setAsHTML, "as-html", false, "Publish the text as HTML (CF_HTML) with a plain text alternative")
	setCmd.Flags().StringArrayVarP(&setPaths, "path", "p", nil, "Files to copy; wildcards (*, ?, [], {}, **) are expanded")
	setCmd.Flags().StringArrayVar(&setLiteralPath, "literal-path", nil, "Files to copy, used exactly as typed")
	setCmd.MarkFlagsMutuallyExclusive("path", "literal-path")
}
