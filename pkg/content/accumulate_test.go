package content

import (
	"reflect"
	"testing"
)

func TestAccumulateText(t *testing.T) {
	tests := []struct {
		name         string
		existing     string
		hasExisting  bool
		lines        []string
		isAppend     bool
		wantText     string
		wantAppended bool
	}{
		{
			name:         "set ignores existing",
			existing:     "old",
			hasExisting:  true,
			lines:        []string{"a", "b"},
			wantText:     "a\r\nb",
			wantAppended: false,
		},
		{
			name:         "append after existing",
			existing:     "old",
			hasExisting:  true,
			lines:        []string{"a", "b"},
			isAppend:     true,
			wantText:     "old\r\na\r\nb",
			wantAppended: true,
		},
		{
			name:         "append without existing downgrades",
			lines:        []string{"a"},
			isAppend:     true,
			wantText:     "a",
			wantAppended: false,
		},
		{
			name:         "append empty existing text is kept",
			existing:     "",
			hasExisting:  true,
			lines:        []string{"a"},
			isAppend:     true,
			wantText:     "\r\na",
			wantAppended: true,
		},
		{
			name:         "append no lines leaves trailing break",
			existing:     "old",
			hasExisting:  true,
			isAppend:     true,
			wantText:     "old\r\n",
			wantAppended: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, appended := AccumulateText(tt.existing, tt.hasExisting, tt.lines, tt.isAppend, "\r\n")
			if text != tt.wantText {
				t.Errorf("AccumulateText() text = %q, want %q", text, tt.wantText)
			}
			if appended != tt.wantAppended {
				t.Errorf("AccumulateText() appended = %v, want %v", appended, tt.wantAppended)
			}
		})
	}
}

func TestFileSet(t *testing.T) {
	s := NewFileSet("/Data/a.txt", "/data/B.txt")

	if s.Add("/DATA/A.TXT") {
		t.Error("Add() of a case-variant path should not grow the set")
	}
	if !s.Add("/data/c.txt") {
		t.Error("Add() of a new path should grow the set")
	}
	if !s.Contains("/data/b.TXT") {
		t.Error("Contains() should ignore case")
	}

	want := []string{"/Data/a.txt", "/data/B.txt", "/data/c.txt"}
	if got := s.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %q, want %q", got, want)
	}
	if s.First() != "/Data/a.txt" || s.Last() != "/data/c.txt" {
		t.Errorf("First(), Last() = %q, %q", s.First(), s.Last())
	}

	empty := NewFileSet()
	if empty.Len() != 0 || empty.First() != "" || empty.Last() != "" {
		t.Error("empty set should have no members")
	}
}
