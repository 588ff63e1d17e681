// Package clipboard provides clipboard access for text, HTML, file-drop
// lists, images and audio. Plain text goes through atotto/clipboard; typed
// payloads go through a platform transport. On Linux/Wayland writes
// daemonize a clipboard owner that serves every MIME type of a selection at
// once, so a single copy can be pasted as HTML into rich-text apps and as
// plain text into editors.
package clipboard

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"clipctl/pkg/cfhtml"
)

var (
	// ErrUnsupported is returned when the platform cannot handle a format.
	ErrUnsupported = errors.New("clipboard: format not supported on this platform")
	// ErrUnavailable is returned when no clipboard helper can be reached.
	ErrUnavailable = errors.New("clipboard: clipboard unavailable")
)

// Backend is the capability set the host clipboard offers.
type Backend interface {
	Clear() error
	SetText(text string, format TextFormat) error
	GetText(format TextFormat) (string, error)
	ContainsText() (bool, error)
	SetFileDropList(paths []string) error
	GetFileDropList() ([]string, error)
	ContainsFileDropList() (bool, error)
	// GetImage returns nil when the clipboard holds no image.
	GetImage() (image.Image, error)
	// GetAudioStream returns nil when the clipboard holds no audio.
	GetAudioStream() (io.ReadCloser, error)
}

// TextFormat is a textual clipboard data format.
type TextFormat int

const (
	FormatUnicodeText TextFormat = iota
	FormatText
	FormatRtf
	FormatHTML
	FormatCSV
)

var textFormatNames = map[TextFormat]string{
	FormatUnicodeText: "unicodetext",
	FormatText:        "text",
	FormatRtf:         "rtf",
	FormatHTML:        "html",
	FormatCSV:         "csv",
}

func (f TextFormat) String() string {
	if name, ok := textFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("TextFormat(%d)", int(f))
}

// MIME returns the MIME type the format is published under. HTML is
// published as CF_HTML under its registered format name.
func (f TextFormat) MIME() string {
	switch f {
	case FormatRtf:
		return "text/rtf"
	case FormatHTML:
		return cfhtml.FormatName
	case FormatCSV:
		return "text/csv"
	default:
		return mimePlainUTF8
	}
}

// TextFormatNames returns the accepted names for ParseTextFormat.
func TextFormatNames() []string {
	return []string{"text", "unicodetext", "rtf", "html", "csv"}
}

// ParseTextFormat maps a user-supplied name to a TextFormat.
func ParseTextFormat(name string) (TextFormat, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "commaseparatedvalue" {
		return FormatCSV, nil
	}
	for f, fn := range textFormatNames {
		if fn == n {
			return f, nil
		}
	}
	return FormatUnicodeText, fmt.Errorf("unknown text format %q (valid: %s)", name, strings.Join(TextFormatNames(), ", "))
}

const (
	mimePlainUTF8    = "text/plain;charset=utf-8"
	mimePlain        = "text/plain"
	mimeHTML         = "text/html"
	mimeURIList      = "text/uri-list"
	mimeGnomeCopied  = "x-special/gnome-copied-files"
	targetUTF8String = "UTF8_STRING"
	targetString     = "STRING"
)

var plainTargets = []string{mimePlainUTF8, mimePlain, targetUTF8String, targetString, "TEXT"}

// imageTargets is ordered by preference.
var imageTargets = []string{"image/png", "image/bmp", "image/tiff", "image/webp", "image/jpeg", "image/gif"}

var audioTargets = []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/ogg", "audio/mpeg", "audio/flac"}

// Selection is a set of representations of one clipboard write. Order lists
// the MIME types by preference; transports that can only offer one type use
// Order[0].
type Selection struct {
	Order   []string          `json:"order"`
	Formats map[string][]byte `json:"formats"`
}

// Add appends a representation. Adding a type twice keeps the first one.
func (s *Selection) Add(mime string, data []byte) {
	if s.Formats == nil {
		s.Formats = make(map[string][]byte)
	}
	if _, ok := s.Formats[mime]; ok {
		return
	}
	s.Formats[mime] = data
	s.Order = append(s.Order, mime)
}

// AddPlain adds text under every plain text target.
func (s *Selection) AddPlain(text string) {
	for _, target := range plainTargets {
		s.Add(target, []byte(text))
	}
}

func containsAny(types []string, wanted ...string) (string, bool) {
	for _, w := range wanted {
		for _, t := range types {
			if strings.EqualFold(t, w) {
				return t, true
			}
		}
	}
	return "", false
}
