package clipboard

import (
	"bytes"
	"image"
	"io"
	"slices"
	"sync"
)

// Memory is an in-process Backend. It follows the same replace-on-clear
// semantics as the OS clipboard and is used where no real clipboard exists.
type Memory struct {
	mu    sync.Mutex
	text  map[TextFormat]string
	files []string
	img   image.Image
	audio []byte

	// Writes counts successful writes, including Clear.
	Writes int
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{text: make(map[TextFormat]string)}
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = make(map[TextFormat]string)
	m.files = nil
	m.img = nil
	m.audio = nil
	m.Writes++
	return nil
}

func (m *Memory) SetText(text string, format TextFormat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if format == FormatText {
		format = FormatUnicodeText
	}
	m.text[format] = text
	if format == FormatHTML {
		// HTML always travels with a plain text alternative
		_, m.text[FormatUnicodeText] = htmlAlternatives(text)
	}
	m.Writes++
	return nil
}

func (m *Memory) GetText(format TextFormat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if format == FormatText {
		format = FormatUnicodeText
	}
	return m.text[format], nil
}

func (m *Memory) ContainsText() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.text[FormatUnicodeText]
	return ok, nil
}

func (m *Memory) SetFileDropList(paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = slices.Clone(paths)
	m.Writes++
	return nil
}

func (m *Memory) GetFileDropList() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.files), nil
}

func (m *Memory) ContainsFileDropList() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files) > 0, nil
}

// SetImage places img on the clipboard.
func (m *Memory) SetImage(img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.img = img
}

func (m *Memory) GetImage() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.img, nil
}

// SetAudio places raw audio bytes on the clipboard.
func (m *Memory) SetAudio(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audio = slices.Clone(data)
}

func (m *Memory) GetAudioStream() (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.audio == nil {
		return nil, nil
	}
	return io.NopCloser(bytes.NewReader(m.audio)), nil
}
