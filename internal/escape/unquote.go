// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var (
	// ErrIncomplete is reported for an escape sequence cut off by the end of
	// the input.
	ErrIncomplete = errors.New("incomplete escape sequence")

	// ErrInvalidEscape is reported for a backslash followed by a character
	// that does not begin a valid JSON escape.
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrInvalidHex is reported for a \u escape whose four following
	// characters are not all hexadecimal digits.
	ErrInvalidHex = errors.New("invalid hex digit in Unicode escape")

	// ErrUnpairedSurrogate is reported in strict mode for a \u escape that
	// encodes half of a UTF-16 surrogate pair without its partner.
	ErrUnpairedSurrogate = errors.New("unpaired surrogate in Unicode escape")
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// for a high surrogate immediately followed by a \u escape for a low
// surrogate is combined into a single code point. If strict is false, an
// unpaired surrogate is replaced by U+FFFD; otherwise Unquote reports
// ErrUnpairedSurrogate. Any other malformed escape is an error.
func Unquote(src mem.RO, strict bool) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, ErrIncomplete
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, err := parseHex4(src)
			if err != nil {
				return nil, err
			}
			src = src.SliceFrom(4)
			if !utf16.IsSurrogate(r) {
				putRune(r)
				break
			}

			// A high surrogate may be completed by a following \u escape.
			if r < 0xdc00 && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				if lo, err := parseHex4(src.SliceFrom(2)); err == nil {
					if cr := utf16.DecodeRune(r, lo); cr != utf8.RuneError {
						putRune(cr)
						src = src.SliceFrom(6)
						break
					}
				}
			}
			if strict {
				return nil, fmt.Errorf("%w: \\u%04x", ErrUnpairedSurrogate, r)
			}
			putRune(utf8.RuneError)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidEscape, c)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}

// parseHex4 decodes the 4 hexadecimal digits at the front of data.
func parseHex4(data mem.RO) (rune, error) {
	if data.Len() < 4 {
		return 0, ErrIncomplete
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHex, b)
		}
	}
	return v, nil
}
