// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcodec"
)

// Parse parses and returns a single JSON value from data.
// Errors in the input have concrete type *jcodec.ParseError.
func Parse(data []byte) (Value, error) {
	b := new(Builder)
	if err := jcodec.NewDecoder(b).Deserialize(data); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// A Builder is a jcodec.Handler that constructs a syntax tree from the
// events it receives. The zero value is ready for use.
type Builder struct {
	stk  []Value // open objects and arrays, innermost last
	root Value
}

// Result returns the value constructed by b, or nil if no complete value has
// been received.
func (b *Builder) Result() Value {
	if len(b.stk) != 0 {
		return nil
	}
	return b.root
}

// Reset discards the state of b. It implements jcodec.Resetter.
func (b *Builder) Reset() { b.stk = b.stk[:0]; b.root = nil }

// add attaches v to the innermost open container, or makes it the root.
func (b *Builder) add(v Value) error {
	if len(b.stk) == 0 {
		if b.root != nil {
			return errors.New("ast: value after a complete value")
		}
		b.root = v
		return nil
	}
	switch top := b.top().(type) {
	case *Array:
		top.Values = append(top.Values, v)
	case *Object:
		// The member was added eagerly by SetKey.
		n := len(top.Members)
		if n == 0 || top.Members[n-1].Value != nil {
			return errors.New("ast: object value without a key")
		}
		top.Members[n-1].Value = v
	}
	return nil
}

func (b *Builder) top() Value { return b.stk[len(b.stk)-1] }

func (b *Builder) push(v Value) error {
	if err := b.add(v); err != nil {
		return err
	}
	b.stk = append(b.stk, v)
	return nil
}

func (b *Builder) pop(want string) error {
	if len(b.stk) == 0 {
		return fmt.Errorf("ast: unbalanced end of %s", want)
	}
	switch top := b.top().(type) {
	case *Object:
		if want != "object" {
			return fmt.Errorf("ast: end of %s inside object", want)
		}
		if n := len(top.Members); n != 0 && top.Members[n-1].Value == nil {
			return errors.New("ast: object key without a value")
		}
	case *Array:
		if want != "array" {
			return fmt.Errorf("ast: end of %s inside array", want)
		}
	}
	b.stk = b.stk[:len(b.stk)-1]
	return nil
}

// BeginObject implements part of the jcodec.Handler interface.
func (b *Builder) BeginObject() error { return b.push(new(Object)) }

// SetKey implements part of the jcodec.Handler interface.
func (b *Builder) SetKey(key string) error {
	if len(b.stk) == 0 {
		return errors.New("ast: key outside object")
	}
	obj, ok := b.top().(*Object)
	if !ok {
		return errors.New("ast: key outside object")
	}
	if n := len(obj.Members); n != 0 && obj.Members[n-1].Value == nil {
		return errors.New("ast: object key without a value")
	}
	obj.Members = append(obj.Members, &Member{Key: key})
	return nil
}

// EndObject implements part of the jcodec.Handler interface.
func (b *Builder) EndObject() error { return b.pop("object") }

// BeginArray implements part of the jcodec.Handler interface.
func (b *Builder) BeginArray() error { return b.push(new(Array)) }

// EndArray implements part of the jcodec.Handler interface.
func (b *Builder) EndArray() error { return b.pop("array") }

// SetString implements part of the jcodec.Handler interface.
func (b *Builder) SetString(s string) error { return b.add(String(s)) }

// SetInteger implements part of the jcodec.Handler interface.
func (b *Builder) SetInteger(v int64) error { return b.add(Integer(v)) }

// SetFloat implements part of the jcodec.Handler interface.
func (b *Builder) SetFloat(v float64) error { return b.add(Float(v)) }

// SetBool implements part of the jcodec.Handler interface.
func (b *Builder) SetBool(v bool) error { return b.add(Bool(v)) }

// SetNull implements part of the jcodec.Handler interface.
func (b *Builder) SetNull() error { return b.add(Null{}) }
