package cmd

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/clipboard"
	"clipctl/pkg/config"
	"clipctl/pkg/content"
	"clipctl/pkg/errors"
	"clipctl/pkg/history"
	"clipctl/pkg/logger"
	"clipctl/pkg/pathresolve"
	"clipctl/pkg/utils"

	"github.com/mattn/go-isatty"
)

// newBackend is replaced in tests.
var newBackend = func() clipboard.Backend {
	return clipboard.NewSystem()
}

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

func nativeLineBreak() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func newSetter(cfg *config.Config, backend clipboard.Backend) *content.Setter {
	return &content.Setter{
		Backend:       backend,
		Resolver:      pathresolve.New(),
		LineBreak:     utils.LineBreak(cfg.LineBreak, nativeLineBreak()),
		ShouldProcess: shouldProcess,
		OnWrite: func(w content.Write) {
			recordHistory(cfg, w)
		},
	}
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get history path", err)
	}
	store, err := history.OpenWithLimit(path, cfg.History.MaxEntries)
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeFileOperation, errors.ErrMsgHistoryFailed, err)
	}
	return store, nil
}

// recordHistory never fails the write it describes.
func recordHistory(cfg *config.Config, w content.Write) {
	if !cfg.History.Enabled {
		return
	}
	store, err := openHistory(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("History unavailable")
		return
	}
	defer store.Close()

	entry, err := store.Record(history.Entry{
		Operation: string(w.Operation),
		Format:    w.Format,
		Preview:   w.Preview,
		Items:     w.Items,
		Bytes:     w.Bytes,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to record history")
		return
	}
	logger.Debug().Str("id", entry.ID).Str("operation", entry.Operation).Msg("Recorded history entry")
}

// commandError converts library errors into exit-coded errors.
func commandError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	switch {
	case stderrors.As(err, &e):
		return err
	case stderrors.Is(err, clipboard.ErrUnavailable):
		return errors.ClipboardUnavailableError(err)
	case stderrors.Is(err, clipboard.ErrUnsupported):
		return errors.UnsupportedError(operation, err)
	case stderrors.Is(err, cfhtml.ErrOffsetOverflow):
		return errors.EncodingError(err)
	case stderrors.Is(err, content.ErrHTMLWithoutValue),
		stderrors.Is(err, content.ErrTextFormatMismatch),
		stderrors.Is(err, content.ErrRawMismatch):
		return errors.ValidationError(err.Error())
	case stderrors.Is(err, pathresolve.ErrNotFound):
		return errors.PathNotFoundError([]string{notFoundPattern(err)})
	default:
		return errors.CommandError(operation, err)
	}
}

func notFoundPattern(err error) string {
	var nf *pathresolve.NotFoundError
	if stderrors.As(err, &nf) {
		return nf.Pattern
	}
	return err.Error()
}

// readValues returns the values to set. A single "-" argument, or no
// arguments with piped stdin, reads one value per line from stdin.
func readValues(args []string) ([]string, error) {
	fromStdin := len(args) == 1 && args[0] == "-"
	if len(args) == 0 && !stdinIsTerminal() {
		fromStdin = true
	}
	if !fromStdin {
		return args, nil
	}

	var values []string
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		values = append(values, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.FileError("read", "stdin", err)
	}
	return values, nil
}

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
