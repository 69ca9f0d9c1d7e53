// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// replacement is the UTF-8 encoding of utf8.RuneError.
const replacement = "\uFFFD"

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Only the characters that JSON requires to be escaped are escaped: the
// quotation mark, the backslash, and control characters below U+0020. The
// controls with a short form (\b \f \n \r \t) use it; the rest use \u00XX.
// All other text, including "/" and non-ASCII, is copied verbatim. Bytes
// that are not valid UTF-8 are replaced by U+FFFD.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		// Copy the longest prefix that needs no escaping in one step.
		i := 0
		for i < src.Len() {
			b := src.At(i)
			if b < ' ' || b == '"' || b == '\\' || b >= utf8.RuneSelf {
				break
			}
			i++
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i)
		if src.Len() == 0 {
			break
		}

		r, n := mem.DecodeRune(src)
		switch {
		case r == utf8.RuneError && n <= 1:
			dst = append(dst, replacement...)
			n = 1
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '"' || r == '\\':
			dst = append(dst, '\\', byte(r))
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// Quote encodes src as a quoted JSON string. See AppendQuote.
func Quote(src mem.RO) []byte {
	return AppendQuote(make([]byte, 0, src.Len()+2), src)
}
