// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package trace implements a jcodec.Handler that logs each event it receives
// before forwarding it to another handler.
//
// Example:
//
//	logger := log.NewLogfmtLogger(os.Stderr)
//	enc := jcodec.NewEncoder()
//	dec := jcodec.NewDecoder(trace.New(logger, enc))
//	if err := dec.Deserialize(input); err != nil {
//	   return err
//	}
package trace

import (
	"github.com/creachadair/jcodec"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Handler is a jcodec.Handler that logs events to a logger at debug level.
type Handler struct {
	logger log.Logger
	next   jcodec.Handler
	depth  int
}

// New constructs a Handler that logs events to logger and forwards them to
// next. If next == nil, events are only logged. If logger == nil, events are
// only forwarded.
func New(logger log.Logger, next jcodec.Handler) *Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if next == nil {
		next = jcodec.Discard
	}
	return &Handler{logger: level.Debug(logger), next: next}
}

// Depth reports the current container nesting depth seen by h.
func (h *Handler) Depth() int { return h.depth }

// Reset resets the depth counter of h, and resets the wrapped handler if it
// implements jcodec.Resetter.
func (h *Handler) Reset() {
	h.depth = 0
	if r, ok := h.next.(jcodec.Resetter); ok {
		r.Reset()
	}
}

func (h *Handler) log(event string, kv ...any) {
	h.logger.Log(append([]any{"event", event, "depth", h.depth}, kv...)...)
}

// BeginObject implements part of jcodec.Handler.
func (h *Handler) BeginObject() error {
	h.log("begin-object")
	h.depth++
	return h.next.BeginObject()
}

// SetKey implements part of jcodec.Handler.
func (h *Handler) SetKey(key string) error {
	h.log("key", "key", key)
	return h.next.SetKey(key)
}

// EndObject implements part of jcodec.Handler.
func (h *Handler) EndObject() error {
	h.depth--
	h.log("end-object")
	return h.next.EndObject()
}

// BeginArray implements part of jcodec.Handler.
func (h *Handler) BeginArray() error {
	h.log("begin-array")
	h.depth++
	return h.next.BeginArray()
}

// EndArray implements part of jcodec.Handler.
func (h *Handler) EndArray() error {
	h.depth--
	h.log("end-array")
	return h.next.EndArray()
}

// SetString implements part of jcodec.Handler.
func (h *Handler) SetString(s string) error {
	h.log("string", "value", s)
	return h.next.SetString(s)
}

// SetInteger implements part of jcodec.Handler.
func (h *Handler) SetInteger(v int64) error {
	h.log("integer", "value", v)
	return h.next.SetInteger(v)
}

// SetFloat implements part of jcodec.Handler.
func (h *Handler) SetFloat(v float64) error {
	h.log("float", "value", v)
	return h.next.SetFloat(v)
}

// SetBool implements part of jcodec.Handler.
func (h *Handler) SetBool(v bool) error {
	h.log("bool", "value", v)
	return h.next.SetBool(v)
}

// SetNull implements part of jcodec.Handler.
func (h *Handler) SetNull() error {
	h.log("null")
	return h.next.SetNull()
}
