// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "fmt"

// ErrorKind classifies the errors reported by the Decoder. An ErrorKind is
// itself an error, so callers may test a parse error for its kind with
// errors.Is:
//
//	if errors.Is(err, jcodec.TrailingData) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedToken      ErrorKind = iota // grammar violation or malformed token
	EmptyInput                            // input is empty or only whitespace
	TrailingData                          // non-whitespace after the top-level value
	InvalidUnicodeEscape                  // malformed \u escape or rejected surrogate
	DepthExceeded                         // nesting deeper than the configured limit
)

var kindStr = [...]string{
	UnexpectedToken:      "unexpected token",
	EmptyInput:           "empty input",
	TrailingData:         "trailing data",
	InvalidUnicodeEscape: "invalid Unicode escape",
	DepthExceeded:        "nesting depth exceeded",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// ParseError is the concrete type of errors reported by the Decoder for
// input that is not valid JSON.
type ParseError struct {
	Kind     ErrorKind
	Offset   int     // byte offset of the error in the input, 0-based
	Location LineCol // line and column of Offset
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

// Is reports whether target is the ErrorKind of e.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// newParseError constructs a *ParseError of the given kind at offset pos in
// src.
func newParseError(src []byte, pos int, kind ErrorKind, err error, msg string, args ...any) *ParseError {
	return &ParseError{
		Kind:     kind,
		Offset:   pos,
		Location: lineColAt(src, pos),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}
