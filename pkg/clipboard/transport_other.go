//go:build !linux

package clipboard

// ServeCommand is the hidden subcommand the daemonized clipboard owner runs.
const ServeCommand = "__clipboard-serve"

// Typed payloads are not published on this platform; System falls back to
// plain text writes.
func newTransport() transport {
	return unsupportedTransport{}
}

// ServeSelection is only used on Linux.
func ServeSelection(sel Selection) error {
	return ErrUnsupported
}
