// Package content implements the set and get clipboard operations on top of
// a clipboard.Backend: text accumulation for append mode, file-drop list
// union, the confirmation gate and parameter validation.
package content

import (
	"strings"

	"clipctl/pkg/utils"
)

// AccumulateText builds the text to publish. In append mode with existing
// clipboard text the new lines are joined after it with lineBreak; otherwise
// only the new lines are used. appended reports whether existing text was
// kept, so isAppend && !appended is a downgrade to a plain set.
func AccumulateText(existing string, hasExisting bool, lines []string, isAppend bool, lineBreak string) (text string, appended bool) {
	joined := strings.Join(lines, lineBreak)
	if isAppend && hasExisting {
		return existing + lineBreak + joined, true
	}
	return joined, false
}

// FileSet is an insertion-ordered set of paths compared case-insensitively.
type FileSet struct {
	paths []string
	index map[string]struct{}
}

func NewFileSet(paths ...string) *FileSet {
	s := &FileSet{index: make(map[string]struct{})}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts path unless an equal path is present. It reports whether the
// set grew.
func (s *FileSet) Add(path string) bool {
	key := utils.FoldKey(path)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.paths = append(s.paths, path)
	return true
}

func (s *FileSet) Contains(path string) bool {
	_, ok := s.index[utils.FoldKey(path)]
	return ok
}

func (s *FileSet) Len() int {
	return len(s.paths)
}

// Paths returns the members in insertion order.
func (s *FileSet) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// First and Last return "" on an empty set.
func (s *FileSet) First() string {
	if len(s.paths) == 0 {
		return ""
	}
	return s.paths[0]
}

func (s *FileSet) Last() string {
	if len(s.paths) == 0 {
		return ""
	}
	return s.paths[len(s.paths)-1]
}
