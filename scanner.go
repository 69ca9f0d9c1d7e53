// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jcodec/internal/escape"
	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an in-memory JSON text.  Each call to
// Next advances the scanner to the next token, or reports an error.
//
// The scanner does not copy its input. The slices returned by Text are views
// of the input buffer.
type Scanner struct {
	src []byte
	tok Token
	err error

	pos, end int // start and end offsets of current token
}

// NewScanner constructs a new lexical scanner that consumes input from src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// Reset discards the state of s and prepares it to scan src.
func (s *Scanner) Reset(src []byte) { *s = Scanner{src: src} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Lexical errors have concrete
// type *ParseError.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	for s.end < len(s.src) && isSpace(s.src[s.end]) {
		s.end++
	}
	s.pos = s.end
	if s.end == len(s.src) {
		return s.setErr(io.EOF)
	}

	ch := s.src[s.end]

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.end++
		s.tok = t
		return nil
	}

	// Handle numbers.
	if isNumStart(ch) {
		return s.scanNumber()
	}

	// Handle string values.
	if ch == '"' {
		return s.scanString()
	}

	// Handle constants: true, false, null
	if isNameByte(ch) {
		return s.scanName()
	}

	r, _ := utf8.DecodeRune(s.src[s.pos:])
	return s.failf(s.pos, UnexpectedToken, "unexpected %q", r)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// a view of the input and is only valid as long as the input is unmodified.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end] }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.Text()...) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: lineColAt(s.src, s.pos),
		Last:  lineColAt(s.src, s.end),
	}
}

// Int64 returns the value of the current token as a signed integer.  It
// reports an error if the token is not an Integer, or if its value does not
// fit in an int64.
func (s *Scanner) Int64() (int64, error) {
	if s.tok != Integer {
		return 0, fmt.Errorf("token is %v, not %v", s.tok, Integer)
	}
	return mem.ParseInt(mem.B(s.Text()), 10, 64)
}

// Float64 returns the value of the current token as a floating-point number.
// It reports an error if the token is not an Integer or a Number, or if its
// magnitude is too large to represent.
func (s *Scanner) Float64() (float64, error) {
	if s.tok != Integer && s.tok != Number {
		return 0, fmt.Errorf("token is %v, not a number", s.tok)
	}
	return mem.ParseFloat(mem.B(s.Text()), 64)
}

// Unquote returns the decoded contents of the current String token, without
// its quotation marks. If strict is true, an unpaired UTF-16 surrogate escape
// is reported as an error; otherwise it decodes as U+FFFD.
func (s *Scanner) Unquote(strict bool) ([]byte, error) {
	if s.tok != String {
		return nil, fmt.Errorf("token is %v, not %v", s.tok, String)
	}
	text := s.Text()
	return escape.Unquote(mem.B(text[1:len(text)-1]), strict)
}

func (s *Scanner) scanString() error {
	i := s.pos + 1
	for i < len(s.src) {
		ch := s.src[i]
		switch {
		case ch == '"':
			s.end = i + 1
			s.tok = String
			return nil

		case ch == '\\':
			if i+1 == len(s.src) {
				return s.failf(i, UnexpectedToken, "incomplete escape sequence")
			}
			switch esc := s.src[i+1]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if !isHex4(s.src[i+2:]) {
					seq := s.src[i:min(i+6, len(s.src))]
					return s.failf(i, InvalidUnicodeEscape, "invalid Unicode escape %q", seq)
				}
				i += 6
			default:
				return s.failf(i, UnexpectedToken, "invalid %q after escape", esc)
			}

		case ch < ' ':
			return s.failf(i, UnexpectedToken, "unescaped control %q", ch)

		case ch < utf8.RuneSelf:
			i++

		default:
			r, n := utf8.DecodeRune(s.src[i:])
			if r == utf8.RuneError && n == 1 {
				return s.failf(i, UnexpectedToken, "invalid UTF-8 byte %#x in string", ch)
			}
			i += n
		}
	}
	return s.failf(s.pos, UnexpectedToken, "unterminated string")
}

func (s *Scanner) scanNumber() error {
	i := s.pos
	if s.src[i] == '-' {
		// If there is a leading sign, we need at least one digit.
		i++
		if i == len(s.src) || !isDigit(s.src[i]) {
			return s.failf(i, UnexpectedToken, "want digit after sign")
		}
	}

	// Consume the remainder of an integer.
	start := i
	i = s.readWhile(i, isDigit)

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if s.src[start] == '0' && i-start > 1 {
		return s.failf(start, UnexpectedToken, "extra leading zeroes")
	}
	tok := Integer

	// If a decimal point follows, consume a fractional part.
	if i < len(s.src) && s.src[i] == '.' {
		i++
		next := s.readWhile(i, isDigit)
		if next == i {
			return s.failf(i, UnexpectedToken, "no digits after decimal point")
		}
		i, tok = next, Number
	}

	// If an exponent follows, consume it.
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		next := s.readWhile(i, isDigit)
		if next == i {
			return s.failf(i, UnexpectedToken, "missing exponent digits")
		}
		i, tok = next, Number
	}

	s.end = i
	s.tok = tok
	return nil
}

var (
	constTrue  = mem.S("true")
	constFalse = mem.S("false")
	constNull  = mem.S("null")
)

func (s *Scanner) scanName() error {
	s.end = s.readWhile(s.pos, isNameByte)
	switch got := mem.B(s.Text()); {
	case got.Equal(constTrue):
		s.tok = True
	case got.Equal(constFalse):
		s.tok = False
	case got.Equal(constNull):
		s.tok = Null
	default:
		return s.failf(s.pos, UnexpectedToken, "unknown constant %q", got.StringCopy())
	}
	return nil
}

// readWhile returns the offset of the first byte at or after i that does not
// satisfy f, or len(s.src) if all the remaining bytes do.
func (s *Scanner) readWhile(i int, f func(byte) bool) int {
	for i < len(s.src) && f(s.src[i]) {
		i++
	}
	return i
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(pos int, kind ErrorKind, msg string, args ...any) error {
	return s.setErr(newParseError(s.src, pos, kind, nil, msg, args...))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isHex4 reports whether buf begins with 4 hexadecimal digits.
func isHex4(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	for _, b := range buf[:4] {
		if !isHexDigit(b) {
			return false
		}
	}
	return true
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
