package cfhtml

import "testing"

func TestByteLength(t *testing.T) {
	buf := []rune("aé日😀")

	tests := []struct {
		name  string
		buf   []rune
		start int
		end   int
		want  int
	}{
		{name: "whole buffer", buf: buf, start: 0, end: -1, want: 10},
		{name: "ascii only", buf: buf, start: 0, end: 1, want: 1},
		{name: "two byte and three byte", buf: buf, start: 1, end: 3, want: 5},
		{name: "emoji", buf: buf, start: 3, end: 4, want: 4},
		{name: "end past buffer is clamped", buf: buf, start: 2, end: 99, want: 7},
		{name: "empty range", buf: buf, start: 2, end: 2, want: 0},
		{name: "start after end", buf: buf, start: 3, end: 1, want: 0},
		{name: "empty buffer", buf: nil, start: 0, end: -1, want: 0},
		{name: "surrogate half counts as replacement", buf: []rune{0xD800}, start: 0, end: -1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByteLength(tt.buf, tt.start, tt.end); got != tt.want {
				t.Errorf("ByteLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestByteLength_MatchesStringLength(t *testing.T) {
	inputs := []string{"", "plain", "naïve café", "漢字かな交じり文", "🎉🎉 party 🎉", "<p>Ünïcödé</p>"}
	for _, s := range inputs {
		if got := ByteLength([]rune(s), 0, -1); got != len(s) {
			t.Errorf("ByteLength(%q) = %d, want %d", s, got, len(s))
		}
	}
}
