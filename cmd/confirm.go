package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"clipctl/pkg/errors"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	responseYes = "yes"
	responseY   = "y"
)

// promptInput is where confirmation answers are read from. Stdin may carry
// clipboard values, so prompts use the terminal when one is attached.
var promptInput = func() (io.ReadCloser, error) {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return io.NopCloser(f), nil
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, errors.NewWithSuggestion(errors.ExitCodeValidation,
			"cannot prompt for confirmation without a terminal",
			"Pass --yes to confirm non-interactively.")
	}
	return tty, nil
}

// IsDryRun returns true if dry-run mode is enabled
func IsDryRun() bool {
	return dryRunFlag
}

// IsAssumeYes returns true if we should skip confirmation prompts
func IsAssumeYes() bool {
	return assumeYesFlag
}

// PrintDryRun prints a message indicating what would happen in dry-run mode
func PrintDryRun(format string, args ...interface{}) {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprint(os.Stderr, "[DRY-RUN] ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// ConfirmPrompt asks the user for confirmation
func ConfirmPrompt(message string) (bool, error) {
	if assumeYesFlag {
		return true, nil
	}

	in, err := promptInput()
	if err != nil {
		return false, err
	}
	defer in.Close()

	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintf(os.Stderr, "%s [y/N]: ", message)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == responseY || response == responseYes, nil
}

// shouldProcess gates every clipboard write. Dry runs print the action and
// skip it; --confirm asks first and a refusal cancels the command.
func shouldProcess(action string) (bool, error) {
	if IsDryRun() {
		PrintDryRun("%s", action)
		return false, nil
	}
	if !confirmFlag {
		return true, nil
	}

	ok, err := ConfirmPrompt(action)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errors.CancelledError(action)
	}
	return true, nil
}
