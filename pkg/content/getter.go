package content

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/clipboard"
	"clipctl/pkg/logger"
	"clipctl/pkg/utils"
)

var (
	ErrTextFormatMismatch = errors.New("failed to get clipboard content: --text-format-type is only valid with --format text")
	ErrRawMismatch        = errors.New("failed to combine raw content: --raw is only valid with --format text or filedroplist")
)

// Format selects the kind of clipboard content to read.
type Format int

const (
	FormatText Format = iota
	FormatFileDropList
	FormatImage
	FormatAudio
)

var formatNames = []string{"text", "filedroplist", "image", "audio"}

func (f Format) String() string {
	if int(f) >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatNames returns the accepted names for ParseFormat.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range formatNames {
		if fn == n {
			return Format(i), nil
		}
	}
	return FormatText, fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(formatNames, ", "))
}

// GetRequest carries the get parameters. The *Set fields record whether the
// user passed the flag explicitly.
type GetRequest struct {
	Format        Format
	TextFormat    clipboard.TextFormat
	TextFormatSet bool
	Raw           bool
	RawSet        bool
}

// Validate rejects parameter combinations that do not apply to the format.
func (r GetRequest) Validate() error {
	if r.TextFormatSet && r.Format != FormatText {
		return ErrTextFormatMismatch
	}
	if r.RawSet && r.Format != FormatText && r.Format != FormatFileDropList {
		return ErrRawMismatch
	}
	return nil
}

// FileDetail describes one entry of a file-drop list.
type FileDetail struct {
	Name      string    `json:"name" yaml:"name"`
	Directory string    `json:"directory" yaml:"directory"`
	Path      string    `json:"path" yaml:"path"`
	Exists    bool      `json:"exists" yaml:"exists"`
	IsDir     bool      `json:"isDir" yaml:"isDir"`
	Size      int64     `json:"size" yaml:"size"`
	Mode      string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	ModTime   time.Time `json:"modTime,omitempty" yaml:"modTime,omitempty"`
}

// DescribeFile stats path. A missing file yields Exists == false.
func DescribeFile(path string) FileDetail {
	d := FileDetail{
		Name:      filepath.Base(path),
		Directory: filepath.Dir(path),
		Path:      path,
	}
	info, err := os.Stat(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("Cannot stat file-drop entry")
		return d
	}
	d.Exists = true
	d.IsDir = info.IsDir()
	d.Size = info.Size()
	d.Mode = info.Mode().String()
	d.ModTime = info.ModTime()
	return d
}

// Result is the content read from the clipboard. Empty reports that the
// clipboard held nothing of the requested format.
type Result struct {
	Format Format
	Empty  bool
	// Text holds one entry for raw reads, otherwise the non-empty lines.
	Text  []string
	Paths []string
	Files []FileDetail
	Image image.Image
	// Audio must be closed by the caller.
	Audio io.ReadCloser
}

// Getter reads from a clipboard backend.
type Getter struct {
	Backend clipboard.Backend
}

func (g *Getter) Get(req GetRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Format: req.Format}
	switch req.Format {
	case FormatText:
		return res, g.getText(req, res)
	case FormatFileDropList:
		return res, g.getFiles(req, res)
	case FormatImage:
		img, err := g.Backend.GetImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		res.Image = img
		res.Empty = img == nil
		return res, nil
	case FormatAudio:
		rc, err := g.Backend.GetAudioStream()
		if err != nil {
			return nil, fmt.Errorf("read clipboard audio: %w", err)
		}
		res.Audio = rc
		res.Empty = rc == nil
		return res, nil
	default:
		return nil, fmt.Errorf("unknown format %v", req.Format)
	}
}

func (g *Getter) getText(req GetRequest, res *Result) error {
	format := req.TextFormat
	plain := format == clipboard.FormatText || format == clipboard.FormatUnicodeText
	if plain {
		ok, err := g.Backend.ContainsText()
		if err != nil {
			return fmt.Errorf("check clipboard text: %w", err)
		}
		if !ok {
			res.Empty = true
			return nil
		}
	}

	text, err := g.Backend.GetText(format)
	if err != nil {
		return fmt.Errorf("read clipboard %s: %w", format, err)
	}
	if text == "" {
		res.Empty = true
		return nil
	}

	if format == clipboard.FormatHTML && !req.Raw {
		if doc, err := cfhtml.Parse(text); err == nil {
			text = doc.Fragment()
		}
	}

	if req.Raw {
		res.Text = []string{text}
		return nil
	}
	res.Text = utils.SplitNonEmptyLines(text)
	res.Empty = len(res.Text) == 0
	return nil
}

func (g *Getter) getFiles(req GetRequest, res *Result) error {
	ok, err := g.Backend.ContainsFileDropList()
	if err != nil {
		return fmt.Errorf("check clipboard file list: %w", err)
	}
	if !ok {
		res.Empty = true
		return nil
	}
	paths, err := g.Backend.GetFileDropList()
	if err != nil {
		return fmt.Errorf("read clipboard file list: %w", err)
	}
	res.Paths = paths
	res.Empty = len(paths) == 0
	if req.Raw {
		return nil
	}
	res.Files = make([]FileDetail, 0, len(paths))
	for _, p := range paths {
		res.Files = append(res.Files, DescribeFile(p))
	}
	return nil
}
