package cfhtml

import (
	"errors"
	"testing"
)

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "plain html", doc: "<html><body>x</body></html>", wantErr: ErrNotCFHTML},
		{name: "empty", doc: "", wantErr: ErrNotCFHTML},
		{
			name:    "missing fragment fields",
			doc:     "Version:0.9\r\nStartHTML:000000030\r\nEndHTML:000000040\r\n<html></html>",
			wantErr: ErrNotCFHTML,
		},
		{
			name: "fragment before html start",
			doc: "Version:0.9\r\nStartHTML:000000090\r\nEndHTML:000000100\r\n" +
				"StartFragment:000000010\r\nEndFragment:000000020\r\n<html></html>",
			wantErr: ErrInvalidOffsets,
		},
		{
			name: "end past document",
			doc: "Version:0.9\r\nStartHTML:000000001\r\nEndHTML:000009999\r\n" +
				"StartFragment:000000002\r\nEndFragment:000000003\r\n<html></html>",
			wantErr: ErrInvalidOffsets,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_LFLineEndingsAndSourceURL(t *testing.T) {
	body := "<html><body><!--StartFragment-->hi<!--EndFragment--></body></html>"
	header := "Version:1.0\nStartHTML:000000000\nEndHTML:000000000\nStartFragment:000000000\nEndFragment:000000000\nSourceURL:https://example.com/page\n"
	start := len(header)
	fragStart := start + len("<html><body><!--StartFragment-->")
	fragEnd := fragStart + len("hi")
	end := start + len(body)

	doc := "Version:1.0\n" +
		"StartHTML:" + pad(start) + "\n" +
		"EndHTML:" + pad(end) + "\n" +
		"StartFragment:" + pad(fragStart) + "\n" +
		"EndFragment:" + pad(fragEnd) + "\n" +
		"SourceURL:https://example.com/page\n" + body

	d, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if d.Fragment() != "hi" {
		t.Errorf("Fragment() = %q, want %q", d.Fragment(), "hi")
	}
	if d.HTML() != body {
		t.Errorf("HTML() = %q, want %q", d.HTML(), body)
	}
	if d.SourceURL != "https://example.com/page" {
		t.Errorf("SourceURL = %q, want %q", d.SourceURL, "https://example.com/page")
	}
	if d.StartSelection != fragStart || d.EndSelection != fragEnd {
		t.Errorf("selection = (%d, %d), want fragment (%d, %d)", d.StartSelection, d.EndSelection, fragStart, fragEnd)
	}
	if d.Header() != doc[:start] {
		t.Errorf("Header() = %q, want %q", d.Header(), doc[:start])
	}
}

func pad(n int) string {
	s, err := formatOffset(n)
	if err != nil {
		panic(err)
	}
	return s
}
