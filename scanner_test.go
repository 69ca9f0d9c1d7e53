// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/jcodec"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jcodec.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jcodec.Token{jcodec.True, jcodec.False, jcodec.Null}},

		// Punctuation
		{"{ [ ] } , :", []jcodec.Token{
			jcodec.LBrace, jcodec.LSquare, jcodec.RSquare, jcodec.RBrace, jcodec.Comma, jcodec.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jcodec.Token{jcodec.String, jcodec.String, jcodec.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jcodec.Token{jcodec.String}},
		{`"\u0000\u01fc\uAA9c"`, []jcodec.Token{jcodec.String}},
		{`"Полтора Землекопа"`, []jcodec.Token{jcodec.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100 1e5`, []jcodec.Token{
			jcodec.Integer, jcodec.Integer, jcodec.Integer,
			jcodec.Number, jcodec.Number, jcodec.Number, jcodec.Number, jcodec.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jcodec.Token{
			jcodec.LBrace, jcodec.True, jcodec.Comma, jcodec.String, jcodec.Colon,
			jcodec.Integer, jcodec.Null, jcodec.LSquare, jcodec.RSquare, jcodec.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jcodec.Token{
			jcodec.LBrace,
			jcodec.String, jcodec.Colon, jcodec.True, jcodec.Comma,
			jcodec.String, jcodec.Colon,
			jcodec.LSquare,
			jcodec.Null, jcodec.Comma, jcodec.Integer, jcodec.Comma, jcodec.Number,
			jcodec.RSquare,
			jcodec.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jcodec.Token{
			jcodec.String, jcodec.Comma, jcodec.Integer, jcodec.Comma, jcodec.True,
			jcodec.False, jcodec.LSquare, jcodec.String, jcodec.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jcodec.Token
		s := jcodec.NewScanner([]byte(test.input))
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  jcodec.ErrorKind
		estr  string
	}{
		{`"what did you`, jcodec.UnexpectedToken, `at 1:0: unterminated string`},
		{`"abc\`, jcodec.UnexpectedToken, `at 1:4: incomplete escape sequence`},
		{`"\x"`, jcodec.UnexpectedToken, `at 1:1: invalid 'x' after escape`},
		{`"\u12G4"`, jcodec.InvalidUnicodeEscape, `at 1:1: invalid Unicode escape "\\u12G4"`},
		{`"\u12`, jcodec.InvalidUnicodeEscape, `at 1:1: invalid Unicode escape "\\u12"`},
		{"\"a\x01\"", jcodec.UnexpectedToken, `at 1:2: unescaped control '\x01'`},
		{"\"a\xffb\"", jcodec.UnexpectedToken, `at 1:2: invalid UTF-8 byte 0xff in string`},
		{`tru`, jcodec.UnexpectedToken, `at 1:0: unknown constant "tru"`},
		{`nullify`, jcodec.UnexpectedToken, `at 1:0: unknown constant "nullify"`},
		{`True`, jcodec.UnexpectedToken, `at 1:0: unexpected 'T'`},
		{`01`, jcodec.UnexpectedToken, `at 1:0: extra leading zeroes`},
		{`-007`, jcodec.UnexpectedToken, `at 1:1: extra leading zeroes`},
		{`-`, jcodec.UnexpectedToken, `at 1:1: want digit after sign`},
		{`-x`, jcodec.UnexpectedToken, `at 1:1: want digit after sign`},
		{`1.`, jcodec.UnexpectedToken, `at 1:2: no digits after decimal point`},
		{`1.e5`, jcodec.UnexpectedToken, `at 1:2: no digits after decimal point`},
		{`1e+`, jcodec.UnexpectedToken, `at 1:3: missing exponent digits`},
		{`2E`, jcodec.UnexpectedToken, `at 1:2: missing exponent digits`},
		{"\n  @", jcodec.UnexpectedToken, `at 2:2: unexpected '@'`},
	}
	for _, test := range tests {
		s := jcodec.NewScanner([]byte(test.input))
		err := s.Next()
		var perr *jcodec.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Input %#q: got error %v, want *ParseError", test.input, err)
			continue
		}
		if perr.Kind != test.kind {
			t.Errorf("Input %#q: got kind %v, want %v", test.input, perr.Kind, test.kind)
		}
		if got := err.Error(); got != test.estr {
			t.Errorf("Input %#q:\n got: %s\nwant: %s", test.input, got, test.estr)
		}
		if s.Err() != err {
			t.Errorf("Err: got %v, want %v", s.Err(), err)
		}
	}
}

func TestScanner_decodeAs(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jcodec.Token) *jcodec.Scanner {
		t.Helper()
		s := jcodec.NewScanner([]byte(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		s := mustScan(t, `-15`, jcodec.Integer)
		if v, err := s.Int64(); err != nil || v != -15 {
			t.Errorf("Int64: got (%v, %v), want (-15, nil)", v, err)
		}
		if v, err := s.Float64(); err != nil || v != -15 {
			t.Errorf("Float64: got (%v, %v), want (-15, nil)", v, err)
		}
	})
	t.Run("BigInteger", func(t *testing.T) {
		s := mustScan(t, `18446744073709551616`, jcodec.Integer)
		if v, err := s.Int64(); err == nil {
			t.Errorf("Int64: got %v, want error", v)
		}
		if v, err := s.Float64(); err != nil || v != 18446744073709551616 {
			t.Errorf("Float64: got (%v, %v), want (1<<64, nil)", v, err)
		}
	})
	t.Run("Number", func(t *testing.T) {
		s := mustScan(t, `3.25e-5`, jcodec.Number)
		if v, err := s.Float64(); err != nil || v != 3.25e-5 {
			t.Errorf("Float64: got (%v, %v), want (3.25e-5, nil)", v, err)
		}
		if v, err := s.Int64(); err == nil {
			t.Errorf("Int64: got %v, want error", v)
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jcodec.True)
		mustScan(t, `false`, jcodec.False)
		mustScan(t, `null`, jcodec.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb\u0020c\n"` // as written, with quotes
		const wantDec = "a\tb c\n"         // with escapes undone
		s := mustScan(t, `"a\tb\u0020c\n"`, jcodec.String)
		text := s.Text()
		if got := string(text); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if got := string(s.Copy()); got != wantText {
			t.Errorf("Copy: got %#q, want %#q", got, wantText)
		}
		if u, err := s.Unquote(true); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if got := string(u); got != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
		}
		if u, err := jcodec.Unquote(text); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if got := string(u); got != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
		}
	})
	t.Run("Surrogates", func(t *testing.T) {
		s := mustScan(t, `"\ud83d!"`, jcodec.String)
		if u, err := s.Unquote(false); err != nil {
			t.Errorf("Unquote(false) failed: %v", err)
		} else if got := string(u); got != "\ufffd!" {
			t.Errorf("Unquote(false): got %q, want %q", got, "\ufffd!")
		}
		if u, err := s.Unquote(true); err == nil {
			t.Errorf("Unquote(true): got %q, want error", u)
		}
	})
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jcodec.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jcodec.LBrace, "1:0-1"}, {jcodec.RBrace, "1:2-3"}}},
		{`"foo" 12.5`, []tokPos{{jcodec.String, "1:0-5"}, {jcodec.Number, "1:6-10"}}},
		{"\ntrue\n false\n", []tokPos{{jcodec.True, "2:0-4"}, {jcodec.False, "3:1-6"}}},
		{"[1,\n 2\n]", []tokPos{
			{jcodec.LSquare, "1:0-1"}, {jcodec.Integer, "1:1-2"}, {jcodec.Comma, "1:2-3"},
			{jcodec.Integer, "2:1-2"}, {jcodec.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jcodec.NewScanner([]byte(tc.input))
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"a/b", `"a/b"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"Землекоп", `"Землекоп"`},
	}
	for _, test := range tests {
		got := jcodec.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\ud834\udd1e"`, "𝄞", false},        // surrogate pair
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, ``, true},                // invalid Unicode escape
		{`"\q"`, ``, true},                    // invalid escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok
	}

	for _, test := range tests {
		got, err := jcodec.Unquote([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}
