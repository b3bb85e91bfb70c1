// Package squash implements a bzip-family, block-sorting, lossless
// byte-stream compressor: a suffix-array Burrows-Wheeler transform, move-
// to-front recoding, a bijective zero-run length code, and an adaptive
// order-0 arithmetic coder, framed into independent fixed-size blocks.
package squash

import (
	"fmt"
	"runtime"
)

// Error is the type of all errors produced by this package. It distinguishes
// package errors from runtime errors and panics caused by bugs elsewhere.
type Error string

func (e Error) Error() string { return "squash: " + string(e) }

// Sentinel errors reported to callers of Writer and Reader.
var (
	// ErrClosed indicates that a Writer or Reader method was called after
	// Close.
	ErrClosed error = Error("stream closed")

	// ErrCorrupt indicates that the input stream is not a valid squash
	// stream, or that its contents violate a structural invariant of the
	// format.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrConfigMismatch indicates that a stream's coder configuration does
	// not match the configuration the Reader was constructed with.
	ErrConfigMismatch error = Error("coder configuration mismatch")
)

func errorf(format string, args ...interface{}) error {
	return Error(fmt.Sprintf(format, args...))
}

func panicf(format string, args ...interface{}) {
	panic(errorf(format, args...))
}

// errRecover is called in a deferred context to convert a panic carrying an
// Error (or plain error) value into a returned error, while letting runtime
// errors (nil pointer dereference, index out of range, and the like) and any
// other unexpected panic continue to propagate as a genuine crash.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// No panic occurred.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// CoderConfig carries the three tunable parameters of the adaptive
// arithmetic coder (C7). These are written into every stream's header so
// that a Reader can detect a configuration mismatch instead of silently
// producing garbage.
type CoderConfig struct {
	// FrequencyMemory is the number of most-recently coded symbols kept in
	// the sliding frequency window.
	FrequencyMemory uint32

	// FrequencyPadding is the floor added to every symbol's frequency count,
	// guaranteeing no symbol is ever assigned zero probability.
	FrequencyPadding uint32

	// RecalculationFrequency is the number of symbols between rebuilds of
	// the cumulative frequency map.
	RecalculationFrequency uint32
}

// DefaultCoderConfig is the configuration used by NewWriter.
var DefaultCoderConfig = CoderConfig{
	FrequencyMemory:        10000,
	FrequencyPadding:       50,
	RecalculationFrequency: 50,
}

// alphabetSize is the number of distinct symbols the arithmetic coder deals
// in: the 256 literal byte values plus code 256 for the RUNB run digit
// (the RUNA run digit shares code 0, which no literal uses).
const alphabetSize = 257

// blockSize is the number of plaintext bytes placed into each block before
// it is run through the BWT/MTF/RLE/arithmetic pipeline independently of
// every other block.
const blockSize = 1 << 18

// Stream framing constants (spec section 6).
const (
	magicNumber  uint32 = 0xca55e77e
	fileVersion  uint8  = 1
	sentinelByte byte   = 0x24 // '$'
)
