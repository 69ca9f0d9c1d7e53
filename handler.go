// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

// A Handler handles events from decoding a JSON value. If a method reports
// an error, decoding stops and that error is returned to the caller.
//
// The Decoder calls exactly one method per construct in the input, in
// document order. Containers are reported in pre-order: the Begin method
// before any of the contents, the End method after all of them. The Decoder
// ensures objects and arrays are correctly balanced, and that each object
// member is reported as a SetKey call followed by exactly one value.
type Handler interface {
	// Begin a new object.
	BeginObject() error

	// Report the key of the next member of the current object. The key is
	// the decoded string, with escapes already processed.
	SetKey(key string) error

	// End the most-recently-opened object.
	EndObject() error

	// Begin a new array.
	BeginArray() error

	// End the most-recently-opened array.
	EndArray() error

	// Report a string value, with escapes already processed.
	SetString(value string) error

	// Report a number with no fraction or exponent that fits in an int64.
	SetInteger(value int64) error

	// Report a number with a fraction or exponent, or an integer too large
	// for an int64.
	SetFloat(value float64) error

	// Report a Boolean constant.
	SetBool(value bool) error

	// Report the null constant.
	SetNull() error
}

// Resetter is an optional interface that a Handler may implement to discard
// its accumulated state. If a handler implements this method, the Decoder
// calls Reset at the beginning of each call to Deserialize, so that the same
// Decoder and handler can be reused for multiple inputs.
type Resetter interface {
	Reset()
}

// Discard is a Handler that ignores all events. Decoding with Discard checks
// the syntax of the input without constructing anything.
var Discard Handler = discard{}

type discard struct{}

func (discard) BeginObject() error     { return nil }
func (discard) SetKey(string) error    { return nil }
func (discard) EndObject() error       { return nil }
func (discard) BeginArray() error      { return nil }
func (discard) EndArray() error        { return nil }
func (discard) SetString(string) error { return nil }
func (discard) SetInteger(int64) error { return nil }
func (discard) SetFloat(float64) error { return nil }
func (discard) SetBool(bool) error     { return nil }
func (discard) SetNull() error         { return nil }

// Valid reports whether data is a single valid JSON value. It returns nil if
// so; otherwise it returns a *ParseError describing the first problem.
func Valid(data []byte) error { return NewDecoder(Discard).Deserialize(data) }
