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
	"sort"

	rans "github.com/ohmdal/rans-go"
	"github.com/ohmdal/rans-go/histogram"
	internal "github.com/ohmdal/rans-go/internal"
)

// Slots below the threshold are resolved by direct indexing; the threshold
// is proportional to the alphabet size so the direct array never scales with
// 1<<precision.
const _DIRECT_SLOTS_PER_SYMBOL = 4

type decEntry struct {
	value int32
	sym   Symbol
}

// DecoderTable inverts the cumulative frequency space of a renormalized
// histogram: it maps any slot in [0..1<<precision) back to the symbol whose
// cumulative range contains it. Low slots are resolved through a direct
// array sized by alphabet cardinality; the remaining slots go through a
// binary search over cumulative boundaries, keeping memory at O(alphabet
// size) instead of O(1<<precision). Immutable and safe for concurrent
// readers once built.
type DecoderTable struct {
	entries   []decEntry
	low       []uint32 // slot -> index into entries, for slots below threshold
	highCums  []uint32 // cumulative starts of the entries reaching past the threshold
	highIdx   []uint32 // entry index for each element of highCums
	threshold uint32
	precision uint
}

// NewDecoderTable creates a DecoderTable from the renormalized histogram
func NewDecoderTable(r *histogram.RenormedHistogram) (*DecoderTable, error) {
	entries := r.Entries()
	scale := r.Scale()
	threshold := scale

	if t := internal.RoundUpPowerOfTwo(int32(_DIRECT_SLOTS_PER_SYMBOL * len(entries))); uint32(t) < scale {
		threshold = uint32(t)
	}

	this := &DecoderTable{
		entries:   make([]decEntry, len(entries)),
		low:       make([]uint32, threshold),
		threshold: threshold,
		precision: r.Precision(),
	}

	cum := uint32(0)

	for i, e := range entries {
		this.entries[i] = decEntry{value: e.Value, sym: Symbol{freq: e.Count, cumFreq: cum}}
		end := cum + e.Count

		if cum < threshold {
			for slot := cum; slot < end && slot < threshold; slot++ {
				this.low[slot] = uint32(i)
			}
		}

		if end > threshold {
			this.highCums = append(this.highCums, cum)
			this.highIdx = append(this.highIdx, uint32(i))
		}

		cum = end
	}

	if cum != scale {
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Frequencies sum to %d instead of %d", cum, scale)
	}

	return this, nil
}

// Lookup resolves a slot in [0..1<<precision) to the owning symbol value and
// its entry. Fails with code ERR_SLOT_RESOLUTION for slots outside the
// domain.
func (this *DecoderTable) Lookup(slot uint32) (int32, Symbol, error) {
	if slot >= uint32(1)<<this.precision {
		return 0, Symbol{}, rans.Errorf(rans.ERR_SLOT_RESOLUTION, "Slot %d outside the cumulative frequency domain [0..%d)", slot, uint32(1)<<this.precision)
	}

	var e decEntry

	if slot < this.threshold {
		e = this.entries[this.low[slot]]
	} else {
		// Last entry starting at or below the slot
		i := sort.Search(len(this.highCums), func(i int) bool { return this.highCums[i] > slot }) - 1

		if i < 0 {
			return 0, Symbol{}, rans.Errorf(rans.ERR_SLOT_RESOLUTION, "No symbol owns slot %d", slot)
		}

		e = this.entries[this.highIdx[i]]
	}

	return e.value, e.sym, nil
}

// Precision returns the renormalization precision of the model
func (this *DecoderTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of symbols in the model
func (this *DecoderTable) AlphabetSize() int {
	return len(this.entries)
}
