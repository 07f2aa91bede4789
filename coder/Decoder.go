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
)

// Decoder reverses the Encoder: it reconstructs the original symbol sequence
// from a word stream and the same renormalized model. The decoder must be
// configured with the stream count used at encode time; the pairing contract
// (register width, word width, precision, stream count) is agreed out of
// band.
type Decoder struct {
	table    *DecoderTable
	states   []uint64
	nStreams int
	phase    int
}

// NewDecoder creates a Decoder reading the given decoder table
func NewDecoder(table *DecoderTable, cfg rans.CoderConfig) (*Decoder, error) {
	if table == nil {
		return nil, rans.NewError("Invalid null decoder table parameter", rans.ERR_INVALID_PARAM)
	}

	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	return &Decoder{
		table:    table,
		states:   make([]uint64, cfg.NStreams),
		nStreams: cfg.NStreams,
	}, nil
}

// NStreams returns the number of interleaved coder states
func (this *Decoder) NStreams() int {
	return this.nStreams
}

// Decode reconstructs 'count' symbols from the word stream produced by a
// paired Encoder. It consumes exactly the words the encoder emitted, no more,
// no less; any mismatch indicates stream corruption or a model mismatch and
// fails the whole operation.
func (this *Decoder) Decode(words []uint32, count int) ([]int32, error) {
	this.phase = _IDLE
	n := this.nStreams

	if len(words) < 2*n {
		return nil, rans.Errorf(rans.ERR_CORRUPT_STREAM, "Word stream too short: %d words cannot hold %d stream headers", len(words), n)
	}

	if count < 0 {
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Invalid symbol count: %d", count)
	}

	// Read the terminal state of every stream, mirroring encoder
	// finalization
	for j := 0; j < n; j++ {
		this.states[j] = uint64(words[2*j])<<_WORD_BITS | uint64(words[2*j+1])

		if this.states[j] < _RANS_LOWER_BOUND {
			return nil, rans.Errorf(rans.ERR_CORRUPT_STREAM, "Initial state of stream %d below the renormalization lower bound", j)
		}
	}

	in := words[2*n:]
	pos := 0
	precision := this.table.Precision()
	mask := uint64(1)<<precision - 1
	dst := make([]int32, count)
	this.phase = _STREAMING

	for i := 0; i < count; i++ {
		j := i & (n - 1)
		x := this.states[j]
		slot := uint32(x & mask)
		value, sym, err := this.table.Lookup(slot)

		if err != nil {
			return nil, err
		}

		// D(x) = f*(x/2^precision) + mod(x,2^precision) - cumFreq
		x = uint64(sym.freq)*(x>>precision) + uint64(slot) - uint64(sym.cumFreq)

		for x < _RANS_LOWER_BOUND {
			if pos >= len(in) {
				return nil, rans.Errorf(rans.ERR_CORRUPT_STREAM, "Word stream exhausted after %d of %d symbols", i+1, count)
			}

			x = x<<_WORD_BITS | uint64(in[pos])
			pos++
		}

		this.states[j] = x
		dst[i] = value
	}

	this.phase = _FINALIZING

	if pos != len(in) {
		return nil, rans.Errorf(rans.ERR_CORRUPT_STREAM, "%d unconsumed words left in the stream", len(in)-pos)
	}

	return dst, nil
}
