// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shim

import (
	"sync"
	"unicode/utf8"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// ErrorCapacity is the size of the host-visible last-error buffer, including
// its NUL terminator.
const ErrorCapacity = 512

// ErrorSlot holds the most recent error message for hosts that read it
// through a separate accessor. It is safe for concurrent use, but a slot
// shared by several threads can still hand one caller another's message.
type ErrorSlot struct {
	mu  sync.Mutex
	msg string
}

// Clear empties the slot.
func (e *ErrorSlot) Clear() {
	e.mu.Lock()
	e.msg = ""
	e.mu.Unlock()
}

// Set stores msg, cut to ErrorCapacity-1 bytes on a rune boundary.
func (e *ErrorSlot) Set(msg string) {
	msg = Bound(msg, ErrorCapacity-1)
	e.mu.Lock()
	e.msg = msg
	e.mu.Unlock()
}

// Get returns the stored message.
func (e *ErrorSlot) Get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msg
}

// Record stores res.Message when it is non-empty and returns res unchanged,
// so entry points can write `return slot.Record(s.Convert(...))`.
func (e *ErrorSlot) Record(res types.Result) types.Result {
	if res.Message != "" {
		e.Set(res.Message)
	}
	return res
}

// Bound returns s cut to at most limit bytes without splitting a UTF-8
// sequence.
func Bound(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
