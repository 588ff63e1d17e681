package cfhtml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotCFHTML      = errors.New("cfhtml: missing CF_HTML header")
	ErrInvalidOffsets = errors.New("cfhtml: invalid header offsets")
)

// Document is a parsed CF_HTML payload.
type Document struct {
	Version        string
	StartHTML      int
	EndHTML        int
	StartFragment  int
	EndFragment    int
	StartSelection int
	EndSelection   int
	SourceURL      string

	raw string
}

// Parse reads the header of a CF_HTML document and checks that its offsets
// are ordered and fall inside doc.
func Parse(doc string) (*Document, error) {
	d := &Document{raw: doc, StartSelection: -1, EndSelection: -1}
	seen := map[string]bool{}

	rest := doc
	for rest != "" {
		line := rest
		next := ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}
		line = strings.TrimSuffix(line, "\r")

		key, value, ok := strings.Cut(line, ":")
		if !ok || !d.set(key, value) {
			break
		}
		seen[key] = true
		rest = next
	}

	for _, key := range []string{"Version", "StartHTML", "EndHTML", "StartFragment", "EndFragment"} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: no %s field", ErrNotCFHTML, key)
		}
	}

	if d.StartSelection < 0 {
		d.StartSelection = d.StartFragment
	}
	if d.EndSelection < 0 {
		d.EndSelection = d.EndFragment
	}

	if !(0 <= d.StartHTML && d.StartHTML <= d.StartFragment &&
		d.StartFragment <= d.EndFragment && d.EndFragment <= d.EndHTML &&
		d.EndHTML <= len(doc)) {
		return nil, fmt.Errorf("%w: StartHTML=%d StartFragment=%d EndFragment=%d EndHTML=%d length=%d",
			ErrInvalidOffsets, d.StartHTML, d.StartFragment, d.EndFragment, d.EndHTML, len(doc))
	}

	return d, nil
}

func (d *Document) set(key, value string) bool {
	if key == "Version" {
		d.Version = value
		return true
	}
	if key == "SourceURL" {
		d.SourceURL = value
		return true
	}

	var field *int
	switch key {
	case "StartHTML":
		field = &d.StartHTML
	case "EndHTML":
		field = &d.EndHTML
	case "StartFragment":
		field = &d.StartFragment
	case "EndFragment":
		field = &d.EndFragment
	case "StartSelection":
		field = &d.StartSelection
	case "EndSelection":
		field = &d.EndSelection
	default:
		return false
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	*field = n
	return true
}

// Header returns the header block.
func (d *Document) Header() string {
	return d.raw[:d.StartHTML]
}

// HTML returns the HTML document that follows the header.
func (d *Document) HTML() string {
	return d.raw[d.StartHTML:d.EndHTML]
}

// Fragment returns the content between the fragment markers.
func (d *Document) Fragment() string {
	return d.raw[d.StartFragment:d.EndFragment]
}

// String returns the full document.
func (d *Document) String() string {
	return d.raw
}
