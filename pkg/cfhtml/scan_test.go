package cfhtml

import "testing"

func TestIndexTag(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		from    int
		tag     string
		closing bool
		want    int
	}{
		{name: "plain opening", s: "<html>", tag: "html", want: 0},
		{name: "upper case", s: "x<BODY>", tag: "body", want: 1},
		{name: "whitespace between letters", s: "ab< b O d\tY >", tag: "body", want: 2},
		{name: "closing tag", s: "<body>x</body>", tag: "body", closing: true, want: 7},
		{name: "closing tag with spaces", s: "x< / h t m l>", tag: "html", closing: true, want: 1},
		{name: "opening does not match closing", s: "</body>", tag: "body", want: -1},
		{name: "closing does not match opening", s: "<body>", tag: "body", closing: true, want: -1},
		{name: "different tag", s: "<head><b>", tag: "body", want: -1},
		{name: "search from offset", s: "<p></p><p>", from: 1, tag: "p", want: 7},
		{name: "truncated name", s: "<bod", tag: "body", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexTag(tt.s, tt.from, tt.tag, tt.closing); got != tt.want {
				t.Errorf("indexTag(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestOpenTagEnd(t *testing.T) {
	tests := []struct {
		s    string
		tag  string
		want int
	}{
		{s: "<html>", tag: "html", want: 6},
		{s: `<html lang="en"><body class="x">`, tag: "body", want: 32},
		{s: "<body", tag: "body", want: -1},
		{s: "no tags here", tag: "html", want: -1},
	}

	for _, tt := range tests {
		if got := openTagEnd(tt.s, 0, tt.tag); got != tt.want {
			t.Errorf("openTagEnd(%q, %q) = %d, want %d", tt.s, tt.tag, got, tt.want)
		}
	}
}

func TestIndexFold(t *testing.T) {
	if got := indexFold("ab<!--STARTFRAGMENT-->", StartFragmentMarker); got != 2 {
		t.Errorf("indexFold() = %d, want 2", got)
	}
	if got := indexFold("short", "longer than input"); got != -1 {
		t.Errorf("indexFold() = %d, want -1", got)
	}
}
