package cfhtml

import "strings"

// The scanner below is a tolerant tag finder, not an HTML parser. It matches
// a tag name case-insensitively and skips ASCII whitespace after '<', around
// the '/' of a closing tag, and between every letter of the name, so that
// "< B o D y" and "<BODY" are both found.

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

// matchTagName reports whether the tag name (lower case) starts at s[i],
// with optional whitespace before it and between its letters.
func matchTagName(s string, i int, name string, closing bool) bool {
	i = skipSpace(s, i)
	if closing {
		if i >= len(s) || s[i] != '/' {
			return false
		}
		i = skipSpace(s, i+1)
	}
	for k := 0; k < len(name); k++ {
		if k > 0 {
			i = skipSpace(s, i)
		}
		if i >= len(s) || lower(s[i]) != name[k] {
			return false
		}
		i++
	}
	return true
}

// indexTag returns the byte index of the '<' opening the first tag called
// name at or after from, or -1.
func indexTag(s string, from int, name string, closing bool) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s); i++ {
		if s[i] == '<' && matchTagName(s, i+1, name, closing) {
			return i
		}
	}
	return -1
}

// openTagEnd returns the index just past the '>' that ends the first opening
// tag called name at or after from. A tag that is never closed by '>' counts
// as not found.
func openTagEnd(s string, from int, name string) int {
	start := indexTag(s, from, name, false)
	if start < 0 {
		return -1
	}
	gt := strings.IndexByte(s[start:], '>')
	if gt < 0 {
		return -1
	}
	return start + gt + 1
}

// indexFold is strings.Index with ASCII case folding.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for k := 0; k < n; k++ {
			if lower(s[i+k]) != lower(substr[k]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
