package content

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/clipboard"
)

func TestGetRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  GetRequest
		want error
	}{
		{name: "text defaults", req: GetRequest{Format: FormatText}},
		{name: "text with text format", req: GetRequest{Format: FormatText, TextFormatSet: true}},
		{name: "raw text", req: GetRequest{Format: FormatText, Raw: true, RawSet: true}},
		{name: "raw files", req: GetRequest{Format: FormatFileDropList, RawSet: true}},
		{name: "text format with files", req: GetRequest{Format: FormatFileDropList, TextFormatSet: true}, want: ErrTextFormatMismatch},
		{name: "text format with image", req: GetRequest{Format: FormatImage, TextFormatSet: true}, want: ErrTextFormatMismatch},
		{name: "raw with image", req: GetRequest{Format: FormatImage, RawSet: true}, want: ErrRawMismatch},
		{name: "raw with audio", req: GetRequest{Format: FormatAudio, RawSet: true}, want: ErrRawMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for i, name := range FormatNames() {
		got, err := ParseFormat(name)
		if err != nil || got != Format(i) {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("String() = %q, want %q", got.String(), name)
		}
	}
	if _, err := ParseFormat("video"); err == nil {
		t.Error("ParseFormat(\"video\") should fail")
	}
}

func TestGetText(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.SetText("one\r\n\r\ntwo\n", clipboard.FormatUnicodeText)
	g := &Getter{Backend: mem}

	res, err := g.Get(GetRequest{Format: FormatText})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(res.Text, []string{"one", "two"}) {
		t.Errorf("Text = %q", res.Text)
	}

	res, err = g.Get(GetRequest{Format: FormatText, Raw: true, RawSet: true})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(res.Text, []string{"one\r\n\r\ntwo\n"}) {
		t.Errorf("raw Text = %q", res.Text)
	}
}

func TestGetTextEmpty(t *testing.T) {
	g := &Getter{Backend: clipboard.NewMemory()}
	res, err := g.Get(GetRequest{Format: FormatText})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !res.Empty || res.Text != nil {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestGetTextHTMLFragment(t *testing.T) {
	mem := clipboard.NewMemory()
	doc, err := cfhtml.Encode("<p>a</p>\n<p>b</p>")
	if err != nil {
		t.Fatal(err)
	}
	_ = mem.SetText(doc, clipboard.FormatHTML)
	g := &Getter{Backend: mem}

	res, err := g.Get(GetRequest{Format: FormatText, TextFormat: clipboard.FormatHTML, TextFormatSet: true})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(res.Text, []string{"<p>a</p>", "<p>b</p>"}) {
		t.Errorf("Text = %q", res.Text)
	}

	res, err = g.Get(GetRequest{Format: FormatText, TextFormat: clipboard.FormatHTML, Raw: true})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(res.Text) != 1 || res.Text[0] != doc {
		t.Errorf("raw Text = %q, want the CF_HTML document", res.Text)
	}
}

func TestGetFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(present, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	mem := clipboard.NewMemory()
	_ = mem.SetFileDropList([]string{present, missing})
	g := &Getter{Backend: mem}

	res, err := g.Get(GetRequest{Format: FormatFileDropList})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("Files = %+v", res.Files)
	}
	if f := res.Files[0]; !f.Exists || f.Size != 5 || f.Name != "present.txt" || f.Directory != dir {
		t.Errorf("Files[0] = %+v", f)
	}
	if f := res.Files[1]; f.Exists || f.Path != missing {
		t.Errorf("Files[1] = %+v", f)
	}

	res, err = g.Get(GetRequest{Format: FormatFileDropList, Raw: true, RawSet: true})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if res.Files != nil || !reflect.DeepEqual(res.Paths, []string{present, missing}) {
		t.Errorf("raw result = %+v", res)
	}
}

func TestGetImageAndAudio(t *testing.T) {
	mem := clipboard.NewMemory()
	g := &Getter{Backend: mem}

	res, err := g.Get(GetRequest{Format: FormatImage})
	if err != nil || !res.Empty {
		t.Fatalf("Get(image) on empty clipboard = %+v, %v", res, err)
	}

	mem.SetImage(image.NewRGBA(image.Rect(0, 0, 4, 3)))
	res, err = g.Get(GetRequest{Format: FormatImage})
	if err != nil {
		t.Fatalf("Get(image) error = %v", err)
	}
	if res.Empty || res.Image.Bounds().Dx() != 4 {
		t.Errorf("image result = %+v", res)
	}

	mem.SetAudio([]byte("RIFF"))
	res, err = g.Get(GetRequest{Format: FormatAudio})
	if err != nil {
		t.Fatalf("Get(audio) error = %v", err)
	}
	defer res.Audio.Close()
	data, _ := io.ReadAll(res.Audio)
	if string(data) != "RIFF" {
		t.Errorf("audio = %q, want %q", data, "RIFF")
	}
}

func TestGetRejectsInvalidCombination(t *testing.T) {
	mem := clipboard.NewMemory()
	g := &Getter{Backend: mem}
	if _, err := g.Get(GetRequest{Format: FormatAudio, RawSet: true}); !errors.Is(err, ErrRawMismatch) {
		t.Errorf("Get() error = %v, want %v", err, ErrRawMismatch)
	}
}
