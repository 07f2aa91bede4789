/*
Copyright 2023-2026 the rans-go authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package rans defines the top level interfaces and configuration used in the
// rans-go lossless entropy coding library.
//
// The library implements the range variant of Asymmetric Numeral Systems
// (rANS). Symbol statistics are collected into a histogram, rescaled to an
// exact power-of-two total (the renormalization precision), and turned into
// symbol and decoder lookup tables consumed by multi-stream encoder and
// decoder state machines.
//
// The implementations of these interfaces are available in the sub-packages
// histogram and coder. A typical pipeline is
//
//	samples -> histogram -> renormalization -> tables -> encode/decode
//
// See "Asymmetric Numeral System" by Jarek Duda at http://arxiv.org/abs/0902.0271
package rans

import "fmt"

const (
	ERR_EMPTY_INPUT            = 1
	ERR_INVALID_RANGE          = 2
	ERR_PRECISION_OUT_OF_RANGE = 3
	ERR_SYMBOL_NOT_FOUND       = 4
	ERR_SLOT_RESOLUTION        = 5
	ERR_INVALID_PARAM          = 6
	ERR_CORRUPT_STREAM         = 7
	ERR_UNKNOWN                = 127
)

const (
	// MinPrecision is the smallest supported renormalization precision in bits.
	MinPrecision = uint(2)

	// MaxPrecision is the largest supported renormalization precision in bits.
	// It caps the cumulative frequency domain and therefore the decoder
	// table memory.
	MaxPrecision = uint(24)

	// MaxStreams is the largest supported number of interleaved coder streams.
	MaxStreams = 32
)

// Entry associates a symbol value with a non-negative occurrence count.
type Entry struct {
	Value int32
	Count uint32
}

// Histogram counts symbol occurrences over a bounded integer domain.
// Four interchangeable representations are provided in the histogram
// sub-package, trading memory for alphabet sparsity and size. A histogram is
// created empty, populated by one or more AddSamples calls or merges, then
// consumed by the renormalizer.
type Histogram interface {
	// AddSamples accumulates occurrence counts for the provided samples.
	AddSamples(samples []int32) error

	// AddSamplesInRange accumulates occurrence counts for the samples that
	// fall inside [min..max], ignoring the others. Returns an error with
	// code ERR_INVALID_RANGE when min > max.
	AddSamplesInRange(samples []int32, min, max int32) error

	// Merge adds the counts of the other histogram into this one.
	// The operation is commutative and associative, allowing partitioned
	// sample ranges to be counted independently and joined.
	Merge(other Histogram) error

	// Frequency returns the occurrence count recorded for the given value,
	// 0 when the value was never seen.
	Frequency(value int32) uint32

	// Total returns the total number of recorded occurrences.
	Total() uint64

	// Entries returns the non-zero (value, count) pairs in ascending value
	// order.
	Entries() []Entry
}

// CoderConfig selects the coder geometry at construction time. The state
// register width (64 bits), the renormalization word width (32 bits) and the
// renormalization lower bound are fixed pairing contracts between encoder and
// decoder; only the number of interleaved streams varies.
type CoderConfig struct {
	// NStreams is the number of independent interleaved coder states.
	// It must be a power of two in [1..MaxStreams]. More streams expose
	// more instruction level parallelism at the cost of a longer stream
	// header (one terminal state per stream).
	NStreams int
}

// DefaultCoderConfig returns a configuration with a stream count suited to
// the SIMD capabilities of the host CPU.
func DefaultCoderConfig() CoderConfig {
	return CoderConfig{NStreams: defaultStreams}
}

// Error is an extended error containing a message and a code value
type Error struct {
	msg  string
	code int
}

// NewError creates a new instance of Error
func NewError(msg string, code int) *Error {
	return &Error{msg: msg, code: code}
}

// Errorf creates a new instance of Error with a formatted message
func Errorf(code int, format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), code: code}
}

// Error returns the underlying error message
func (this *Error) Error() string {
	return fmt.Sprintf("%v (code %v)", this.msg, this.code)
}

// Message returns the message string associated with the error
func (this *Error) Message() string {
	return this.msg
}

// ErrorCode returns the code value associated with the error
func (this *Error) ErrorCode() int {
	return this.code
}

// ErrorCode extracts the code from an error created by this library.
// Returns ERR_UNKNOWN for foreign errors.
func ErrorCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.ErrorCode()
	}

	return ERR_UNKNOWN
}
