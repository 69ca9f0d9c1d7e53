// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
)

// DefaultMaxDepth is the default limit on the nesting depth of objects and
// arrays accepted by a Decoder.
const DefaultMaxDepth = 10000

// A Decoder parses JSON text and delivers events to a Handler corresponding
// with the structure of the input.
//
// A Decoder and its Handler are not safe for concurrent use.
type Decoder struct {
	s     Scanner
	h     Handler
	src   []byte
	depth int

	maxDepth int
	strict   bool // reject unpaired surrogates
	hujson   bool // accept comments and trailing commas
}

// NewDecoder constructs a new Decoder that delivers events to h.
func NewDecoder(h Handler) *Decoder {
	return &Decoder{h: h, maxDepth: DefaultMaxDepth}
}

// Handler returns the handler that receives events from d.
func (d *Decoder) Handler() Handler { return d.h }

// StrictSurrogates configures the decoder to reject (true) or accept (false)
// \u escapes encoding an unpaired UTF-16 surrogate. When accepted, an
// unpaired surrogate decodes as U+FFFD. The default is to accept them.
func (d *Decoder) StrictSurrogates(ok bool) { d.strict = ok }

// MaxDepth sets the maximum nesting depth of objects and arrays.  Input that
// nests more deeply is rejected with an error of kind DepthExceeded.  If
// n ≤ 0, DefaultMaxDepth is used.
func (d *Decoder) MaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	d.maxDepth = n
}

// AllowHuJSON configures the decoder to accept (true) or reject (false)
// HuJSON input, that is JSON with comments and trailing commas.  When
// enabled, comments and trailing commas are treated as whitespace.
func (d *Decoder) AllowHuJSON(ok bool) { d.hujson = ok }

func (d *Decoder) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *ParseError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}

// Deserialize parses data as exactly one JSON value, optionally surrounded by
// whitespace, and delivers events for it to the handler.
//
// If data is not valid JSON, the error has concrete type *ParseError; events
// for the input preceding the error have already been delivered. If a
// handler method reports an error, decoding stops and that error is returned
// unmodified.
//
// If the handler implements Resetter, its Reset method is called first.
// The decoder does not retain data after Deserialize returns.
func (d *Decoder) Deserialize(data []byte) (err error) {
	defer d.recoverParseError(&err)
	defer d.release()

	if r, ok := d.h.(Resetter); ok {
		r.Reset()
	}
	if d.hujson {
		// The hujson parser recurses without a limit, so check the nesting
		// depth before handing it the input.
		if pos := depthExceeded(data, d.maxDepth); pos >= 0 {
			panic(newParseError(data, pos, DepthExceeded, nil, "nesting depth exceeds %d", d.maxDepth))
		}

		// Standardize rewrites its argument in place, so give it a copy.
		// If standardization fails, parse the original input so that the
		// error is reported in terms of strict JSON.
		if std, err := hujson.Standardize(bytes.Clone(data)); err == nil {
			data = std
		}
	}
	d.src = data
	d.s.Reset(data)
	d.depth = 0

	if err := d.s.Next(); err == io.EOF {
		d.syntaxError(EmptyInput, nil, "no value in input")
	} else if err != nil {
		panic(err)
	}
	d.parseElement()

	if err := d.s.Next(); err != io.EOF {
		d.syntaxError(TrailingData, nil, "unexpected data after value")
	}
	return nil
}

// release drops the references to the most recent input.
func (d *Decoder) release() {
	d.src = nil
	d.s.Reset(nil)
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (d *Decoder) parseElement() {
	switch tok := d.s.Token(); tok {
	case LBrace:
		d.enter()
		d.checkError(d.h.BeginObject())
		d.parseMembers()
		d.checkError(d.h.EndObject())
		d.depth--
	case LSquare:
		d.enter()
		d.checkError(d.h.BeginArray())
		d.parseElements()
		d.checkError(d.h.EndArray())
		d.depth--
	case String:
		d.checkError(d.h.SetString(d.unquote()))
	case Integer:
		if v, err := d.s.Int64(); err == nil {
			d.checkError(d.h.SetInteger(v))
		} else {
			// The literal is a valid integer that does not fit in an int64.
			d.checkError(d.h.SetFloat(d.parseFloat()))
		}
	case Number:
		d.checkError(d.h.SetFloat(d.parseFloat()))
	case True, False:
		d.checkError(d.h.SetBool(tok == True))
	case Null:
		d.checkError(d.h.SetNull())
	default:
		d.syntaxError(UnexpectedToken, nil, "unexpected %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (d *Decoder) parseMembers() {
	tok := d.advance(RBrace, String)
	if tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		d.checkError(d.h.SetKey(d.unquote()))
		d.advance(Colon)
		d.advance()
		d.parseElement()

		// Check whether we have more members (",") or are done ("}").
		if tok := d.advance(RBrace, Comma); tok == RBrace {
			return // end of object
		}
		d.advance(String) // advance to next key
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (d *Decoder) parseElements() {
	if tok := d.advance(); tok == RSquare {
		return // end of array
	}
	d.parseElement()
	for {
		if tok := d.advance(RSquare, Comma); tok == RSquare {
			return // end of array
		}
		d.advance()
		d.parseElement()
	}
}

// enter records entry into a new object or array.
func (d *Decoder) enter() {
	d.depth++
	if d.depth > d.maxDepth {
		d.syntaxError(DepthExceeded, nil, "nesting depth exceeds %d", d.maxDepth)
	}
}

// advance moves to the next token, which must be one of tokens if any are
// given, and returns its type.
func (d *Decoder) advance(tokens ...Token) Token {
	if err := d.s.Next(); err == io.EOF {
		d.syntaxError(UnexpectedToken, err, "%v", tokLabel(tokens, "end of input"))
	} else if err != nil {
		panic(err)
	}
	tok := d.s.Token()
	if len(tokens) != 0 && !tokOneOf(tok, tokens) {
		d.syntaxError(UnexpectedToken, nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (d *Decoder) unquote() string {
	dec, err := d.s.Unquote(d.strict)
	if err != nil {
		d.syntaxError(InvalidUnicodeEscape, err, "%v", err)
	}
	return string(dec)
}

func (d *Decoder) parseFloat() float64 {
	v, err := d.s.Float64()
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			d.syntaxError(UnexpectedToken, err, "number %s out of range", d.s.Text())
		}
		d.syntaxError(UnexpectedToken, err, "invalid number: %v", err)
	}
	return v
}

// depthExceeded reports the offset of the first bracket in data that opens
// a container nested more than limit levels deep, or -1 if there is none.
// Strings and HuJSON comments are skipped. Malformed input is not diagnosed
// here; an unterminated string or comment ends the scan.
func depthExceeded(data []byte, limit int) int {
	depth := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '[', '{':
			depth++
			if depth > limit {
				return i
			}
		case ']', '}':
			depth--
		case '"':
			for i++; i < len(data) && data[i] != '"'; i++ {
				if data[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 >= len(data) {
				return -1
			}
			switch data[i+1] {
			case '/':
				n := bytes.IndexByte(data[i:], '\n')
				if n < 0 {
					return -1
				}
				i += n
			case '*':
				n := bytes.Index(data[i+2:], []byte("*/"))
				if n < 0 {
					return -1
				}
				i += n + 3
			}
		}
	}
	return -1
}

// syntaxError aborts the parse with an error at the current token.
func (d *Decoder) syntaxError(kind ErrorKind, err error, msg string, args ...any) {
	panic(newParseError(d.src, d.s.Span().Pos, kind, err, msg, args...))
}

func (d *Decoder) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected value, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// tokOneOf reports whether cur is an element of tokens.
func tokOneOf(cur Token, tokens []Token) bool {
	return slices.Contains(tokens, cur)
}
