package utils

import (
	"reflect"
	"testing"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "hello", want: "hello"},
		{name: "nineteen characters", in: "1234567890123456789", want: "1234567890123456789"},
		{name: "exactly twenty", in: "12345678901234567890", want: "12345678901234567890 ..."},
		{name: "long", in: "the quick brown fox jumps over", want: "the quick brown fox  ..."},
		{name: "multibyte counts characters", in: "日本語日本語日本語日本語日本語日本語日本語", want: "日本語日本語日本語日本語日本語日本語日本 ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in, 20); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitNonEmptyLines(t *testing.T) {
	got := SplitNonEmptyLines("a\r\n\r\nb\nc\n")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitNonEmptyLines() = %q, want %q", got, want)
	}
	if got := SplitNonEmptyLines(""); len(got) != 0 {
		t.Errorf("SplitNonEmptyLines(\"\") = %q, want empty", got)
	}
}

func TestFoldKey(t *testing.T) {
	if FoldKey("/Data/A.TXT") != FoldKey("/data/a.txt") {
		t.Errorf("FoldKey() should ignore case")
	}
	if FoldKey("/a") == FoldKey("/b") {
		t.Errorf("FoldKey() should keep distinct paths apart")
	}
}

func TestLineBreak(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{style: "crlf", want: "\r\n"},
		{style: "LF", want: "\n"},
		{style: "native", want: "N"},
		{style: "", want: "N"},
	}
	for _, tt := range tests {
		if got := LineBreak(tt.style, "N"); got != tt.want {
			t.Errorf("LineBreak(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}
