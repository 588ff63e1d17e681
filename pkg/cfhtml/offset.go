package cfhtml

import "unicode/utf8"

// ByteLength returns the number of bytes the UTF-8 encoding of buf[start:end]
// occupies. Encode counts bytes as it writes and does not call it. It is the
// reference count for callers that hold decoded text, and the check the
// header offsets are tested against. A negative end means len(buf). Runes that cannot be encoded
// (surrogate halves, values past U+10FFFF) count as the three bytes of
// utf8.RuneError, which is what encoding them produces.
func ByteLength(buf []rune, start, end int) int {
	if end < 0 || end > len(buf) {
		end = len(buf)
	}
	if start < 0 {
		start = 0
	}

	n := 0
	for i := start; i < end; i++ {
		size := utf8.RuneLen(buf[i])
		if size < 0 {
			size = utf8.RuneLen(utf8.RuneError)
		}
		n += size
	}
	return n
}
