package cmd

import (
	"fmt"
	"io"
	"os"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/errors"

	"github.com/spf13/cobra"
)

var encodeHTMLOffsets bool

// OffsetsOutput is the header of an encoded CF_HTML document.
type OffsetsOutput struct {
	Version        string `json:"version" yaml:"version"`
	StartHTML      int    `json:"startHTML" yaml:"startHTML"`
	EndHTML        int    `json:"endHTML" yaml:"endHTML"`
	StartFragment  int    `json:"startFragment" yaml:"startFragment"`
	EndFragment    int    `json:"endFragment" yaml:"endFragment"`
	StartSelection int    `json:"startSelection" yaml:"startSelection"`
	EndSelection   int    `json:"endSelection" yaml:"endSelection"`
	Fragment       string `json:"fragment" yaml:"fragment"`
}

var encodeHTMLCmd = &cobra.Command{
	Use:   "encode-html [FILE|-]",
	Short: "Print the CF_HTML clipboard document for an HTML snippet",
	Long: `Wrap HTML in the CF_HTML clipboard format and print the result without
touching the clipboard. Input that already carries fragment markers is
printed unchanged. Reads stdin when FILE is omitted or "-".`,
	Example: `  # Show what "set --as-html" would publish
  echo "<b>hi</b>" | clipctl encode-html

  # Inspect the computed byte offsets
  clipctl encode-html page.html --offsets --output-format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(stdin)
			if err != nil {
				return errors.FileError("read", "stdin", err)
			}
		} else {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return errors.FileError("read", args[0], err)
			}
		}

		doc, err := cfhtml.Encode(string(data))
		if err != nil {
			return errors.EncodingError(err)
		}

		if !encodeHTMLOffsets {
			_, err := io.WriteString(cmd.OutOrStdout(), doc)
			return err
		}

		parsed, err := cfhtml.Parse(doc)
		if err != nil {
			return errors.EncodingError(err)
		}
		out := OffsetsOutput{
			Version:        parsed.Version,
			StartHTML:      parsed.StartHTML,
			EndHTML:        parsed.EndHTML,
			StartFragment:  parsed.StartFragment,
			EndFragment:    parsed.EndFragment,
			StartSelection: parsed.StartSelection,
			EndSelection:   parsed.EndSelection,
			Fragment:       parsed.Fragment(),
		}

		output := NewOutputWriter(outputFormat)
		output.SetWriter(cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(out)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Version:        %s\n", out.Version)
		fmt.Fprintf(w, "StartHTML:      %d\n", out.StartHTML)
		fmt.Fprintf(w, "EndHTML:        %d\n", out.EndHTML)
		fmt.Fprintf(w, "StartFragment:  %d\n", out.StartFragment)
		fmt.Fprintf(w, "EndFragment:    %d\n", out.EndFragment)
		fmt.Fprintf(w, "StartSelection: %d\n", out.StartSelection)
		fmt.Fprintf(w, "EndSelection:   %d\n", out.EndSelection)
		fmt.Fprintf(w, "Fragment:       %q\n", out.Fragment)
		return nil
	},
}

func init() {
	encodeHTMLCmd.Annotations = map[string]string{annotationSkipConfig: "true"}
	encodeHTMLCmd.Flags().BoolVar(&encodeHTMLOffsets, "offsets", false, "Print the header offsets and fragment instead of the document")
}
