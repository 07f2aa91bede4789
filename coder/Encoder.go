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

package coder

import (
	rans "github.com/ohmdal/rans-go"
	internal "github.com/ohmdal/rans-go/internal"
)

const (
	// Coder geometry shared by encoder and decoder: 64 bit state
	// registers renormalized against 32 bit stream words. The lower bound
	// keeps every state in [_RANS_LOWER_BOUND..1<<63) between symbols.
	_RANS_LOWER_BOUND = uint64(1) << 31
	_WORD_BITS        = 32
)

// Coding operation phases. Each Encode/Decode call walks
// idle -> streaming -> finalizing; finalizing is terminal for the operation
// and the state registers are re-initialized by the next call.
const (
	_IDLE = iota
	_STREAMING
	_FINALIZING
)

func checkConfig(cfg rans.CoderConfig) error {
	n := cfg.NStreams

	if n < 1 || n > rans.MaxStreams || !internal.IsPowerOf2(int32(n)) {
		return rans.Errorf(rans.ERR_INVALID_PARAM, "Invalid number of streams: %d (must be a power of 2 in [1..%d])", n, rans.MaxStreams)
	}

	return nil
}

// Encoder converts a symbol sequence into a stream of renormalization words
// using nStreams interleaved rANS states. An instance owns its state
// registers exclusively; the symbol table it reads is immutable and may be
// shared across encoders.
type Encoder struct {
	table    SymbolTable
	states   []uint64
	nStreams int
	phase    int
}

// NewEncoder creates an Encoder reading the given symbol table
func NewEncoder(table SymbolTable, cfg rans.CoderConfig) (*Encoder, error) {
	if table == nil {
		return nil, rans.NewError("Invalid null symbol table parameter", rans.ERR_INVALID_PARAM)
	}

	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	return &Encoder{
		table:    table,
		states:   make([]uint64, cfg.NStreams),
		nStreams: cfg.NStreams,
	}, nil
}

// NStreams returns the number of interleaved coder states
func (this *Encoder) NStreams() int {
	return this.nStreams
}

// Encode codes the symbol sequence into a word stream and returns it.
// Symbols are assigned to streams round-robin and processed in reverse order,
// a structural requirement of rANS: the decoder reads symbols front to back.
//
// Layout of the returned stream: 2 words of terminal state per stream
// (high word then low word, stream 0 first) followed by the renormalization
// words already in decoder read order. The stream carries no copy of the
// probability model.
//
// Fails with code ERR_SYMBOL_NOT_FOUND when fed a symbol absent from the
// model.
func (this *Encoder) Encode(src []int32) ([]uint32, error) {
	this.phase = _IDLE
	n := this.nStreams
	precision := this.table.Precision()

	for i := range this.states {
		this.states[i] = _RANS_LOWER_BOUND
	}

	// At most one renormalization word is emitted per symbol: a single
	// 32 bit shift always brings the state below the emission threshold
	buf := make([]uint32, len(src))
	pos := len(buf)
	this.phase = _STREAMING

	for i := len(src) - 1; i >= 0; i-- {
		sym, err := this.table.Lookup(src[i])

		if err != nil {
			return nil, err
		}

		j := i & (n - 1)
		x := this.states[j]
		freq := uint64(sym.freq)
		xMax := ((_RANS_LOWER_BOUND >> precision) << _WORD_BITS) * freq

		for x >= xMax {
			pos--
			buf[pos] = uint32(x)
			x >>= _WORD_BITS
		}

		// C(s,x) = (x/f)*2^precision + mod(x,f) + cumFreq
		this.states[j] = (x/freq)<<precision + x%freq + uint64(sym.cumFreq)
	}

	// Flush the terminal state of every stream
	this.phase = _FINALIZING
	out := make([]uint32, 2*n+len(buf)-pos)

	for j := 0; j < n; j++ {
		out[2*j] = uint32(this.states[j] >> _WORD_BITS)
		out[2*j+1] = uint32(this.states[j])
	}

	copy(out[2*n:], buf[pos:])
	return out, nil
}
