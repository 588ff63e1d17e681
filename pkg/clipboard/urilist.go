package clipboard

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// encodeURIList renders paths as a text/uri-list body (RFC 2483).
func encodeURIList(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(fileURI(p))
		b.WriteString("\r\n")
	}
	return b.String()
}

func fileURI(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// decodeURIList returns the local paths of a text/uri-list body. Comments,
// blank lines and non-file URIs are skipped.
func decodeURIList(body string) []string {
	var paths []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// gnome-copied-files starts with the operation name
		if line == "copy" || line == "cut" {
			continue
		}
		u, err := url.Parse(line)
		if err != nil || u.Scheme != "file" {
			continue
		}
		p := u.Path
		if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		paths = append(paths, filepath.FromSlash(p))
	}
	return paths
}

// gnomeCopiedFiles renders the x-special/gnome-copied-files body file
// managers use for copy operations.
func gnomeCopiedFiles(paths []string) string {
	lines := make([]string, 0, len(paths)+1)
	lines = append(lines, "copy")
	for _, p := range paths {
		lines = append(lines, fileURI(p))
	}
	return strings.Join(lines, "\n")
}
