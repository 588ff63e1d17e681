package cmd

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"clipctl/pkg/clipboard"
	"clipctl/pkg/content"
	"clipctl/pkg/errors"
	"clipctl/pkg/filter"
	"clipctl/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	getFormat         string
	getTextFormatType string
	getRaw            bool
	getOutputPath     string
	getMaxWidth       int
	getMaxHeight      int
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the clipboard content",
	Long: `Print the clipboard content.

Text is printed one non-empty line per line unless --raw is given. File lists
print a detail table (or the bare paths with --raw). Images are written as
PNG and audio as-is, to --output or to stdout when stdout is not a terminal.`,
	Example: `  # Print the clipboard text
  clipctl get

  # Print the HTML fragment of the clipboard
  clipctl get --text-format-type html

  # List copied files as JSON
  clipctl get --format filedroplist --output-format json

  # Save a screenshot from the clipboard, at most 1024 pixels wide
  clipctl get --format image --max-width 1024 --output shot.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := content.ParseFormat(getFormat)
		if err != nil {
			return unknownValueError(err, getFormat, content.FormatNames())
		}
		textFormat, err := clipboard.ParseTextFormat(getTextFormatType)
		if err != nil {
			return unknownValueError(err, getTextFormatType, clipboard.TextFormatNames())
		}

		getter := &content.Getter{Backend: newBackend()}
		res, err := getter.Get(content.GetRequest{
			Format:        format,
			TextFormat:    textFormat,
			TextFormatSet: cmd.Flags().Changed("text-format-type"),
			Raw:           getRaw,
			RawSet:        cmd.Flags().Changed("raw"),
		})
		if err != nil {
			return commandError("get clipboard content", err)
		}

		if res.Empty {
			logger.Info().Str("format", format.String()).Msg("Clipboard has no content of the requested format")
			return nil
		}

		output := NewOutputWriter(outputFormat)
		output.SetWriter(cmd.OutOrStdout())

		switch format {
		case content.FormatText:
			return writeText(cmd.OutOrStdout(), output, res.Text)
		case content.FormatFileDropList:
			return writeFiles(cmd.OutOrStdout(), output, res)
		case content.FormatImage:
			return writeImage(cmd.OutOrStdout(), res.Image)
		case content.FormatAudio:
			defer res.Audio.Close()
			return writeBinary(cmd.OutOrStdout(), "audio", res.Audio)
		}
		return nil
	},
}

func unknownValueError(err error, value string, valid []string) error {
	suggestions := filter.Suggest(value, valid, 3)
	suggestion := "Valid values: " + strings.Join(valid, ", ")
	if len(suggestions) > 0 {
		suggestion = "Did you mean:\n"
		for _, s := range suggestions {
			suggestion += fmt.Sprintf("  - %s\n", s)
		}
	}
	return errors.NewWithSuggestion(errors.ExitCodeValidation, err.Error(), suggestion)
}

func writeText(w io.Writer, output *OutputWriter, lines []string) error {
	if output.IsStructured() {
		return output.Write(lines)
	}
	if getRaw && len(lines) == 1 {
		_, err := io.WriteString(w, lines[0])
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeFiles(w io.Writer, output *OutputWriter, res *content.Result) error {
	if getRaw {
		if output.IsStructured() {
			return output.Write(res.Paths)
		}
		for _, p := range res.Paths {
			fmt.Fprintln(w, p)
		}
		return nil
	}

	if output.IsStructured() {
		return output.Write(res.Files)
	}

	fmt.Fprintf(w, "%-12s %-10s %-12s %s\n", "MODE", "SIZE", "MODIFIED", "PATH")
	for _, f := range res.Files {
		if !f.Exists {
			fmt.Fprintf(w, "%-12s %-10s %-12s %s\n", "missing", "-", "-", f.Path)
			continue
		}
		size := FormatSize(f.Size)
		if f.IsDir {
			size = "<dir>"
		}
		fmt.Fprintf(w, "%-12s %-10s %-12s %s\n", f.Mode, size, FormatTimestamp(f.ModTime), f.Path)
	}
	return nil
}

func writeImage(stdout io.Writer, img image.Image) error {
	maxW, maxH := appConfig.Image.MaxWidth, appConfig.Image.MaxHeight
	if getMaxWidth > 0 {
		maxW = getMaxWidth
	}
	if getMaxHeight > 0 {
		maxH = getMaxHeight
	}
	img = fitImage(img, maxW, maxH)

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(png.Encode(pw, img))
	}()
	defer pr.Close()

	b := img.Bounds()
	logger.Info().Int("width", b.Dx()).Int("height", b.Dy()).Msg("Writing clipboard image as PNG")
	return writeBinary(stdout, "image", pr)
}

// fitImage scales img down to fit within maxW x maxH, keeping its aspect
// ratio. A zero bound leaves that dimension unbounded.
func fitImage(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

func writeBinary(stdout io.Writer, kind string, r io.Reader) error {
	if getOutputPath != "" && getOutputPath != "-" {
		f, err := os.Create(getOutputPath)
		if err != nil {
			return errors.FileError("create", getOutputPath, err)
		}
		n, err := io.Copy(f, r)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.FileError("write", getOutputPath, err)
		}
		logger.Info().Str("path", getOutputPath).Str("size", FormatSize(n)).Msgf("Saved clipboard %s", kind)
		return nil
	}

	if stdout == os.Stdout && stdoutIsTerminal() && getOutputPath != "-" {
		return errors.NewWithSuggestion(errors.ExitCodeValidation,
			fmt.Sprintf("refusing to write %s data to a terminal", kind),
			"Use --output FILE, or redirect stdout.")
	}
	if _, err := io.Copy(stdout, r); err != nil {
		return errors.FileError("write", "stdout", err)
	}
	return nil
}

func init() {
	getCmd.Flags().StringVarP(&getFormat, "format", "f", "text", "Content format (text, filedroplist, image, audio)")
	getCmd.Flags().StringVarP(&getTextFormatType, "text-format-type", "t", "unicodetext", "Text format (text, unicodetext, rtf, html, csv); only with --format text")
	getCmd.Flags().BoolVarP(&getRaw, "raw", "r", false, "Print text as one block, or file paths without details")
	getCmd.Flags().StringVarP(&getOutputPath, "output", "o", "", "Write image or audio data to this file (- forces stdout)")
	getCmd.Flags().IntVar(&getMaxWidth, "max-width", 0, "Scale images down to at most this width")
	getCmd.Flags().IntVar(&getMaxHeight, "max-height", 0, "Scale images down to at most this height")
}
