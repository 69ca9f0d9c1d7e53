// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/creachadair/jcodec/internal/escape"
	"go4.org/mem"
)

// An Encoder is a Handler that renders the events it receives as canonical
// JSON text: no insignificant whitespace, minimal string escapes, and
// shortest round-trip number formatting. Object members are written in the
// order they are reported, including duplicate keys.
//
// Decoding canonical input into an Encoder reproduces it byte for byte.
//
// The Decoder only reports well-formed event sequences. An Encoder used
// directly panics if its methods are called out of order, for example EndArray
// without a matching BeginArray, or SetKey outside an object.
type Encoder struct {
	buf  []byte
	stk  []frame
	done bool // a complete top-level value has been written
}

type frameKind byte

const (
	inArray frameKind = iota
	inObject
)

// A frame records the state of one open object or array.
type frame struct {
	kind       frameKind
	wroteFirst bool // at least one element (or key) has been written
	wantValue  bool // objects only: a key has been written, awaiting its value
}

// NewEncoder constructs a new empty Encoder.
func NewEncoder() *Encoder { return new(Encoder) }

// Reset discards the accumulated output of e. It implements Resetter.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.stk = e.stk[:0]
	e.done = false
}

// Serialize returns a copy of the JSON text accumulated by e. Before any
// events have been delivered, it returns an empty slice.
func (e *Encoder) Serialize() []byte { return append([]byte{}, e.buf...) }

// String returns the JSON text accumulated by e as a string.
func (e *Encoder) String() string { return string(e.buf) }

// Len reports the length in bytes of the accumulated text.
func (e *Encoder) Len() int { return len(e.buf) }

// Depth reports the number of objects and arrays currently open.
func (e *Encoder) Depth() int { return len(e.stk) }

// Complete reports whether e holds a complete JSON value.
func (e *Encoder) Complete() bool { return e.done }

// BeginObject implements part of the Handler interface.
func (e *Encoder) BeginObject() error {
	e.beginValue("BeginObject")
	e.buf = append(e.buf, '{')
	e.stk = append(e.stk, frame{kind: inObject})
	return nil
}

// SetKey implements part of the Handler interface.
func (e *Encoder) SetKey(key string) error {
	top := e.top("SetKey")
	if top.kind != inObject || top.wantValue {
		panic("jcodec: SetKey without a matching value slot")
	}
	if top.wroteFirst {
		e.buf = append(e.buf, ',')
	}
	top.wroteFirst = true
	top.wantValue = true
	e.buf = escape.AppendQuote(e.buf, mem.S(key))
	e.buf = append(e.buf, ':')
	return nil
}

// EndObject implements part of the Handler interface.
func (e *Encoder) EndObject() error {
	e.end(inObject, '}', "EndObject")
	return nil
}

// BeginArray implements part of the Handler interface.
func (e *Encoder) BeginArray() error {
	e.beginValue("BeginArray")
	e.buf = append(e.buf, '[')
	e.stk = append(e.stk, frame{kind: inArray})
	return nil
}

// EndArray implements part of the Handler interface.
func (e *Encoder) EndArray() error {
	e.end(inArray, ']', "EndArray")
	return nil
}

// SetString implements part of the Handler interface.
func (e *Encoder) SetString(value string) error {
	e.beginValue("SetString")
	e.buf = escape.AppendQuote(e.buf, mem.S(value))
	e.endValue()
	return nil
}

// SetInteger implements part of the Handler interface.
func (e *Encoder) SetInteger(value int64) error {
	e.beginValue("SetInteger")
	e.buf = strconv.AppendInt(e.buf, value, 10)
	e.endValue()
	return nil
}

// SetFloat implements part of the Handler interface.  It reports an error
// without writing anything if value is NaN or infinite, since JSON has no
// representation for those values.
func (e *Encoder) SetFloat(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("jcodec: unsupported value %v", value)
	}
	e.beginValue("SetFloat")
	e.buf = AppendFloat(e.buf, value)
	e.endValue()
	return nil
}

// SetBool implements part of the Handler interface.
func (e *Encoder) SetBool(value bool) error {
	e.beginValue("SetBool")
	e.buf = strconv.AppendBool(e.buf, value)
	e.endValue()
	return nil
}

// SetNull implements part of the Handler interface.
func (e *Encoder) SetNull() error {
	e.beginValue("SetNull")
	e.buf = append(e.buf, "null"...)
	e.endValue()
	return nil
}

// beginValue checks that a value may be written in the current context, and
// writes a separating comma if one is needed.
func (e *Encoder) beginValue(op string) {
	if len(e.stk) == 0 {
		if e.done {
			panic("jcodec: " + op + " after a complete value")
		}
		return
	}
	top := &e.stk[len(e.stk)-1]
	switch top.kind {
	case inObject:
		if !top.wantValue {
			panic("jcodec: " + op + " in object without a key")
		}
		top.wantValue = false // the comma, if any, preceded the key
	case inArray:
		if top.wroteFirst {
			e.buf = append(e.buf, ',')
		}
		top.wroteFirst = true
	}
}

// endValue records the completion of a scalar value.
func (e *Encoder) endValue() {
	if len(e.stk) == 0 {
		e.done = true
	}
}

// end closes the innermost container, which must be of the given kind.
func (e *Encoder) end(kind frameKind, closer byte, op string) {
	top := e.top(op)
	if top.kind != kind || top.wantValue {
		panic("jcodec: unbalanced " + op)
	}
	e.stk = e.stk[:len(e.stk)-1]
	e.buf = append(e.buf, closer)
	e.endValue()
}

func (e *Encoder) top(op string) *frame {
	if len(e.stk) == 0 {
		panic("jcodec: " + op + " outside of any object or array")
	}
	return &e.stk[len(e.stk)-1]
}

// AppendFloat appends the canonical JSON text of v to dst, and returns the
// extended slice. The text is the shortest decimal that round-trips to v,
// in plain notation if 1e-6 ≤ |v| < 1e21 and exponential notation otherwise.
// If the result would have no fraction or exponent, ".0" is appended so
// that it still decodes as a float. The result for NaN or Inf is not valid
// JSON.
func AppendFloat(dst []byte, v float64) []byte {
	abs := math.Abs(v)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	if mem.IndexByte(mem.B(dst[start:]), '.') < 0 {
		dst = append(dst, ".0"...)
	}
	return dst
}

// Canonicalize decodes data as a single JSON value and returns its canonical
// encoding. If data is not valid JSON, the error has concrete type
// *ParseError.
func Canonicalize(data []byte) ([]byte, error) {
	enc := NewEncoder()
	if err := NewDecoder(enc).Deserialize(data); err != nil {
		return nil, err
	}
	return enc.Serialize(), nil
}
