// Package cfhtml builds and reads CF_HTML, the clipboard HTML format: an
// ASCII header of byte offsets followed by an HTML document whose primary
// content is delimited by fragment marker comments.
package cfhtml

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StartFragmentMarker = "<!--StartFragment-->"
	EndFragmentMarker   = "<!--EndFragment-->"

	// MaxOffset is the largest offset a 9-digit header field can hold.
	MaxOffset = 999999999

	// FormatName is the registered clipboard format name for CF_HTML.
	FormatName = "HTML Format"
)

// Header placeholders are exactly as wide as a formatted field, so patching
// them does not move any offset computed before the patch.
const (
	placeholderStartHTML     = "<<<<<<<<1"
	placeholderEndHTML       = "<<<<<<<<2"
	placeholderStartFragment = "<<<<<<<<3"
	placeholderEndFragment   = "<<<<<<<<4"
)

const headerTemplate = "Version:0.9\r\n" +
	"StartHTML:" + placeholderStartHTML + "\r\n" +
	"EndHTML:" + placeholderEndHTML + "\r\n" +
	"StartFragment:" + placeholderStartFragment + "\r\n" +
	"EndFragment:" + placeholderEndFragment + "\r\n" +
	"StartSelection:" + placeholderStartFragment + "\r\n" +
	"EndSelection:" + placeholderEndFragment + "\r\n"

const doctypeLine = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.0 Transitional//EN">` + "\r\n"

// HeaderLength is the byte length of every header Encode produces and
// therefore the StartHTML value of every encoded document.
const HeaderLength = len(headerTemplate)

// ErrOffsetOverflow is returned when an offset does not fit in 9 digits.
var ErrOffsetOverflow = errors.New("cfhtml: offset exceeds 9 digits")

// IsWrapped reports whether html already carries a fragment marker. Either
// marker on its own is enough, so a lone EndFragment marker counts too.
func IsWrapped(html string) bool {
	return indexFold(html, StartFragmentMarker) >= 0 || indexFold(html, EndFragmentMarker) >= 0
}

// Encode wraps html in a CF_HTML document. Input that already contains a
// fragment marker is returned unchanged.
//
// When html has neither an <html> nor a <body> opening tag it is placed
// inside a synthesized <html><body> wrapper. Otherwise the fragment runs from
// the end of the <body> (or <html>) opening tag to the start of the closing
// </body> (or </html>) tag, and a closing </html> is appended if the input
// had none.
func Encode(html string) (string, error) {
	if IsWrapped(html) {
		return html, nil
	}

	var b strings.Builder
	b.Grow(HeaderLength + len(doctypeLine) + len(html) + 64)
	b.WriteString(headerTemplate)
	b.WriteString(doctypeLine)

	// b.Len() is the running byte count of the document.
	var startFragment, endFragment int

	htmlEnd := openTagEnd(html, 0, "html")
	bodyEnd := openTagEnd(html, max(htmlEnd, 0), "body")

	if htmlEnd < 0 && bodyEnd < 0 {
		b.WriteString("<html><body>")
		b.WriteString(StartFragmentMarker)
		startFragment = b.Len()
		b.WriteString(html)
		endFragment = b.Len()
		b.WriteString(EndFragmentMarker)
		b.WriteString("</body></html>")
	} else {
		fragStart := max(htmlEnd, 0)
		if htmlEnd < 0 {
			b.WriteString("<html>")
		} else {
			b.WriteString(html[:htmlEnd])
		}
		if bodyEnd >= 0 {
			b.WriteString(html[fragStart:bodyEnd])
			fragStart = bodyEnd
		}

		closeBody := indexTag(html, fragStart, "body", true)
		closeHTML := indexTag(html, fragStart, "html", true)
		fragEnd := len(html)
		switch {
		case closeBody > 0:
			fragEnd = closeBody
		case closeHTML > 0:
			fragEnd = closeHTML
		}

		b.WriteString(StartFragmentMarker)
		startFragment = b.Len()
		b.WriteString(html[fragStart:fragEnd])
		endFragment = b.Len()
		b.WriteString(EndFragmentMarker)
		b.WriteString(html[fragEnd:])

		if closeHTML <= 0 {
			b.WriteString("</html>")
		}
	}

	doc := b.String()
	header := doc[:HeaderLength]
	fields := []struct {
		placeholder string
		value       int
	}{
		{placeholderStartHTML, HeaderLength},
		{placeholderEndHTML, len(doc)},
		{placeholderStartFragment, startFragment},
		{placeholderEndFragment, endFragment},
	}
	for _, f := range fields {
		formatted, err := formatOffset(f.value)
		if err != nil {
			return "", err
		}
		header = strings.ReplaceAll(header, f.placeholder, formatted)
	}

	return header + doc[HeaderLength:], nil
}

func formatOffset(v int) (string, error) {
	if v < 0 || v > MaxOffset {
		return "", fmt.Errorf("%w: %d", ErrOffsetOverflow, v)
	}
	return fmt.Sprintf("%09d", v), nil
}
