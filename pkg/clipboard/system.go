package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	// decoders for the image types clipboards commonly carry
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/htmltext"
	"clipctl/pkg/logger"

	atotto "github.com/atotto/clipboard"
	xclipboard "golang.design/x/clipboard"
)

// transport moves typed payloads to and from the host clipboard.
type transport interface {
	Types() ([]string, error)
	Read(mime string) ([]byte, error)
	Write(sel Selection) error
	Clear() error
}

type unsupportedTransport struct{}

func (unsupportedTransport) Types() ([]string, error)    { return nil, ErrUnsupported }
func (unsupportedTransport) Read(string) ([]byte, error) { return nil, ErrUnsupported }
func (unsupportedTransport) Write(Selection) error       { return ErrUnsupported }
func (unsupportedTransport) Clear() error                { return ErrUnsupported }

// System is the Backend for the host clipboard.
type System struct {
	transport transport

	imageOnce sync.Once
	imageErr  error
}

// NewSystem returns a Backend for the host clipboard using the transport
// that fits the current session.
func NewSystem() *System {
	return &System{transport: newTransport()}
}

func (s *System) Clear() error {
	err := s.transport.Clear()
	if errors.Is(err, ErrUnsupported) {
		return atotto.WriteAll("")
	}
	return err
}

func (s *System) SetText(text string, format TextFormat) error {
	switch format {
	case FormatText, FormatUnicodeText:
		return atotto.WriteAll(text)
	case FormatHTML:
		return s.setHTML(text)
	}

	var sel Selection
	sel.Add(format.MIME(), []byte(text))
	sel.AddPlain(text)
	if err := s.transport.Write(sel); err != nil {
		if errors.Is(err, ErrUnsupported) {
			logger.Debug().Str("format", format.String()).Msg("Typed text unsupported, writing plain text")
			return atotto.WriteAll(text)
		}
		return err
	}
	return nil
}

// setHTML publishes a CF_HTML document together with its HTML span and a
// plain text rendering of the fragment.
func (s *System) setHTML(doc string) error {
	htmlPart, plain := htmlAlternatives(doc)

	var sel Selection
	sel.Add(mimeHTML, []byte(htmlPart))
	sel.Add(cfhtml.FormatName, []byte(doc))
	sel.AddPlain(plain)

	if err := s.transport.Write(sel); err != nil {
		if errors.Is(err, ErrUnsupported) {
			// plain text only
			return atotto.WriteAll(plain)
		}
		return err
	}
	return nil
}

// htmlAlternatives returns the HTML span of a CF_HTML document and a plain
// text rendering of its fragment. Input that is not CF_HTML is used whole.
func htmlAlternatives(doc string) (htmlPart, plain string) {
	htmlPart, fragment := doc, doc
	if d, err := cfhtml.Parse(doc); err == nil {
		htmlPart, fragment = d.HTML(), d.Fragment()
	}

	plain, err := htmltext.Render(fragment)
	if err != nil {
		logger.Debug().Err(err).Msg("Falling back to raw fragment for plain text")
		plain = fragment
	}
	return htmlPart, plain
}

func (s *System) GetText(format TextFormat) (string, error) {
	switch format {
	case FormatText, FormatUnicodeText:
		text, err := atotto.ReadAll()
		if err != nil && atotto.Unsupported {
			data, nerr := nativeReadText()
			if nerr != nil {
				return "", fmt.Errorf("read text: %w", err)
			}
			return string(data), nil
		}
		return text, err
	case FormatHTML:
		if data, err := s.transport.Read(cfhtml.FormatName); err == nil && len(data) > 0 {
			return string(data), nil
		}
		data, err := s.transport.Read(mimeHTML)
		return string(data), err
	}

	data, err := s.transport.Read(format.MIME())
	return string(data), err
}

func (s *System) ContainsText() (bool, error) {
	types, err := s.transport.Types()
	if err == nil {
		_, ok := containsAny(types, plainTargets...)
		return ok, nil
	}
	if !errors.Is(err, ErrUnsupported) {
		return false, err
	}

	text, err := atotto.ReadAll()
	if err != nil {
		return false, nil
	}
	return text != "", nil
}

func (s *System) SetFileDropList(paths []string) error {
	var sel Selection
	sel.Add(mimeURIList, []byte(encodeURIList(paths)))
	sel.Add(mimeGnomeCopied, []byte(gnomeCopiedFiles(paths)))
	sel.AddPlain(strings.Join(paths, "\n"))

	if err := s.transport.Write(sel); err != nil {
		return fmt.Errorf("set file drop list: %w", err)
	}
	return nil
}

func (s *System) GetFileDropList() ([]string, error) {
	types, err := s.transport.Types()
	if err != nil {
		return nil, err
	}
	target, ok := containsAny(types, mimeURIList, mimeGnomeCopied)
	if !ok {
		return nil, nil
	}
	data, err := s.transport.Read(target)
	if err != nil {
		return nil, err
	}
	return decodeURIList(string(data)), nil
}

func (s *System) ContainsFileDropList() (bool, error) {
	types, err := s.transport.Types()
	if err != nil {
		return false, err
	}
	_, ok := containsAny(types, mimeURIList, mimeGnomeCopied)
	return ok, nil
}

func (s *System) GetImage() (image.Image, error) {
	data := s.readImageBytes()
	if len(data) == 0 {
		return nil, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}
	logger.Debug().Str("format", format).Int("bytes", len(data)).Msg("Decoded clipboard image")
	return img, nil
}

// readImageBytes tries golang.design/x/clipboard, the native clipboard
// reader, then the transport, and returns the first non-empty result.
func (s *System) readImageBytes() []byte {
	s.imageOnce.Do(func() {
		s.imageErr = xclipboard.Init()
	})
	if s.imageErr == nil {
		if data := xclipboard.Read(xclipboard.FmtImage); len(data) > 0 {
			return data
		}
	} else {
		logger.Debug().Err(s.imageErr).Msg("Image clipboard unavailable")
	}

	if data, err := nativeReadImage(); err == nil && len(data) > 0 {
		return data
	}

	types, err := s.transport.Types()
	if err != nil {
		return nil
	}
	target, ok := containsAny(types, imageTargets...)
	if !ok {
		return nil
	}
	data, err := s.transport.Read(target)
	if err != nil {
		logger.Debug().Err(err).Str("type", target).Msg("Image read failed")
		return nil
	}
	return data
}

func (s *System) GetAudioStream() (io.ReadCloser, error) {
	types, err := s.transport.Types()
	if err != nil {
		return nil, err
	}
	target, ok := containsAny(types, audioTargets...)
	if !ok {
		return nil, nil
	}
	data, err := s.transport.Read(target)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
