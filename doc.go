// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jcodec implements an event-driven JSON decoder, and an encoder
// that renders decoder events as canonical JSON text.
//
// # Decoding
//
// The Decoder type parses a complete JSON value from a byte slice and
// reports its structure by calling methods on a Handler. Construct a Decoder
// for a handler and call its Deserialize method:
//
//	dec := jcodec.NewDecoder(handler)
//	if err := dec.Deserialize(input); err != nil {
//	   log.Fatalf("Deserialize failed: %v", err)
//	}
//
// The input must hold exactly one value, optionally surrounded by
// whitespace. If the input is not valid JSON, the error has concrete type
// *jcodec.ParseError, whose Kind classifies the problem:
//
//	if errors.Is(err, jcodec.TrailingData) {
//	   log.Print("Extra data after value")
//	}
//
// # Handlers
//
// The Handler interface accepts events from a Decoder. The methods of a
// handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	member     | SetKey                    | "key": (followed by one value)
//	array      | BeginArray, EndArray      | [ ... ]
//	string     | SetString                 | "text", escapes decoded
//	number     | SetInteger, SetFloat      | 15, -3 / 1.5, 2e10
//	constant   | SetBool, SetNull          | true, false / null
//
// Numbers with neither a fraction nor an exponent are reported by SetInteger,
// unless they do not fit in an int64; all other numbers are reported by
// SetFloat.
//
// # Encoding
//
// The Encoder type is a Handler that writes the events it receives as
// canonical JSON text. Decoding into an Encoder canonicalizes the input:
//
//	enc := jcodec.NewEncoder()
//	if err := jcodec.NewDecoder(enc).Deserialize(input); err != nil {
//	   log.Fatalf("Deserialize failed: %v", err)
//	}
//	fmt.Println(enc.String())
//
// Canonical text has no insignificant whitespace, escapes only the
// characters JSON requires, and formats floating-point values in the shortest
// form that round-trips. Input that is already canonical is reproduced
// exactly.
package jcodec
