// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, a
// jcodec.Handler that constructs syntax trees from decoder events, and a
// function to replay a tree as events into any other Handler.
package ast

import (
	"fmt"

	"github.com/creachadair/jcodec"
)

// A Value is an arbitrary JSON value. The concrete type is one of *Object,
// *Array, String, Integer, Float, Bool, or Null.
type Value interface {
	// JSON returns the canonical JSON encoding of the value.
	// It panics if the value contains a non-finite Float.
	JSON() string

	emit(h jcodec.Handler) error
}

// An Object is a collection of key-value members, in input order.
// Duplicate keys are preserved as separate members.
type Object struct {
	Members []*Member
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return toJSON(o) }

func (o *Object) emit(h jcodec.Handler) error {
	if err := h.BeginObject(); err != nil {
		return err
	}
	for _, m := range o.Members {
		if err := h.SetKey(m.Key); err != nil {
			return err
		}
		if err := m.Value.emit(h); err != nil {
			return err
		}
	}
	return h.EndObject()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string { return toJSON(a) }

func (a *Array) emit(h jcodec.Handler) error {
	if err := h.BeginArray(); err != nil {
		return err
	}
	for _, v := range a.Values {
		if err := v.emit(h); err != nil {
			return err
		}
	}
	return h.EndArray()
}

// A String is a string value.
type String string

func (s String) JSON() string                { return jcodec.Quote(string(s)) }
func (s String) emit(h jcodec.Handler) error { return h.SetString(string(s)) }

// An Integer is an integer value.
type Integer int64

func (z Integer) JSON() string                { return toJSON(z) }
func (z Integer) emit(h jcodec.Handler) error { return h.SetInteger(int64(z)) }

// A Float is a floating-point value.
type Float float64

func (f Float) JSON() string                { return toJSON(f) }
func (f Float) emit(h jcodec.Handler) error { return h.SetFloat(float64(f)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string                { return toJSON(b) }
func (b Bool) emit(h jcodec.Handler) error { return h.SetBool(bool(b)) }

// Null represents the null constant.
type Null struct{}

func (Null) JSON() string                { return "null" }
func (Null) emit(h jcodec.Handler) error { return h.SetNull() }

// Emit reports the structure of v to h as a sequence of events, in the same
// order the Decoder would report them for the JSON encoding of v. If a
// handler method reports an error, Emit stops and returns that error.
func Emit(v Value, h jcodec.Handler) error {
	if v == nil {
		return fmt.Errorf("ast: cannot emit a nil value")
	}
	return v.emit(h)
}

// Encode returns the canonical JSON encoding of v.
func Encode(v Value) ([]byte, error) {
	enc := jcodec.NewEncoder()
	if err := Emit(v, enc); err != nil {
		return nil, err
	}
	return enc.Serialize(), nil
}

func toJSON(v Value) string {
	text, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return string(text)
}
