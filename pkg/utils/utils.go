package utils

import (
	"strings"
)

// Preview returns the first n characters of s followed by " ..." when s has
// n or more characters.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) >= n {
		return string(runes[:n]) + " ..."
	}
	return s
}

// SplitNonEmptyLines splits s on LF or CRLF and drops empty lines.
func SplitNonEmptyLines(s string) []string {
	result := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// FoldKey returns a key under which strings equal ignoring case collide.
func FoldKey(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}

// LineBreak maps a configured line break style to its characters.
func LineBreak(style string, native string) string {
	switch strings.ToLower(style) {
	case "crlf":
		return "\r\n"
	case "lf":
		return "\n"
	default:
		return native
	}
}
