//go:build linux

package clipboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"clipctl/pkg/clipboard/internal/wayland"
	"clipctl/pkg/logger"
)

// ServeCommand is the hidden subcommand the daemonized clipboard owner runs.
const ServeCommand = "__clipboard-serve"

func newTransport() transport {
	switch {
	case os.Getenv("WAYLAND_DISPLAY") != "":
		return waylandTransport{}
	case os.Getenv("DISPLAY") != "":
		return x11Transport{}
	}
	return unsupportedTransport{}
}

// waylandTransport writes through a daemonized data-control owner and reads
// with wl-paste.
type waylandTransport struct{}

func (waylandTransport) Types() ([]string, error) {
	out, err := runHelper(nil, "wl-paste", "--list-types")
	if err != nil {
		if isExitError(err) {
			// nothing copied
			return nil, nil
		}
		return nil, err
	}
	return splitLines(out), nil
}

func (waylandTransport) Read(mime string) ([]byte, error) {
	return runHelper(nil, "wl-paste", "--no-newline", "--type", mime)
}

func (waylandTransport) Write(sel Selection) error {
	err := wayland.Probe()
	switch {
	case err == nil:
		return spawnClipboardServer(sel)
	case errors.Is(err, wayland.ErrNoDataControl):
		// wl-copy has its own fallback but offers a single type
		if len(sel.Order) == 0 {
			return nil
		}
		target := sel.Order[0]
		logger.Debug().Str("target", target).Msg("No data-control support, using wl-copy")
		_, err := runHelper(sel.Formats[target], "wl-copy", "--type", target)
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func (waylandTransport) Clear() error {
	_, err := runHelper(nil, "wl-copy", "--clear")
	return err
}

// x11Transport uses xclip. xclip offers a single target per selection, so
// only the preferred representation is published.
type x11Transport struct{}

func (x11Transport) Types() ([]string, error) {
	out, err := runHelper(nil, "xclip", "-selection", "clipboard", "-o", "-t", "TARGETS")
	if err != nil {
		if isExitError(err) {
			return nil, nil
		}
		return nil, err
	}
	return splitLines(out), nil
}

func (x11Transport) Read(mime string) ([]byte, error) {
	return runHelper(nil, "xclip", "-selection", "clipboard", "-o", "-t", mime)
}

func (x11Transport) Write(sel Selection) error {
	if len(sel.Order) == 0 {
		return nil
	}
	target := sel.Order[0]
	logger.Debug().Str("target", target).Int("offered", len(sel.Order)).Msg("X11 selection limited to one target")
	_, err := runHelper(sel.Formats[target], "xclip", "-selection", "clipboard", "-t", target, "-i")
	return err
}

func (x11Transport) Clear() error {
	_, err := runHelper([]byte{}, "xclip", "-selection", "clipboard", "-t", targetUTF8String, "-i")
	return err
}

func spawnClipboardServer(sel Selection) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	// Re-exec this binary as a daemonised subprocess.
	cmd := exec.Command(exe, ServeCommand)
	cmd.Stdin = bytes.NewReader(payload)
	// Detach from the parent's process group so the child survives parent exit.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start()
}

// ServeSelection runs the Wayland clipboard owner for sel, blocking until
// another client takes the selection.
func ServeSelection(sel Selection) error {
	return wayland.Serve(sel.Order, sel.Formats)
}
