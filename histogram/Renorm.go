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

package histogram

import (
	"sort"

	rans "github.com/ohmdal/rans-go"
)

// RenormedHistogram is the canonical probability model shared by encoder and
// decoder: per-symbol frequencies summing exactly to 1<<precision, every
// symbol with non-zero raw count keeping a frequency of at least one.
// It is immutable once built.
type RenormedHistogram struct {
	entries   []rans.Entry
	precision uint
}

// Precision returns the renormalization precision in bits
func (this *RenormedHistogram) Precision() uint {
	return this.precision
}

// Scale returns the total probability mass 1<<precision
func (this *RenormedHistogram) Scale() uint32 {
	return uint32(1) << this.precision
}

// AlphabetSize returns the number of symbols in the model
func (this *RenormedHistogram) AlphabetSize() int {
	return len(this.entries)
}

// Entries returns the renormalized (value, frequency) pairs in ascending
// value order. The returned slice must not be modified.
func (this *RenormedHistogram) Entries() []rans.Entry {
	return this.entries
}

// NewRenormedHistogram builds a RenormedHistogram from externally supplied
// frequencies, for instance a model received through a side channel at decode
// time. The entries must be in ascending value order with frequencies of at
// least one, summing exactly to 1<<precision.
func NewRenormedHistogram(entries []rans.Entry, precision uint) (*RenormedHistogram, error) {
	if precision < rans.MinPrecision || precision > rans.MaxPrecision {
		return nil, rans.Errorf(rans.ERR_PRECISION_OUT_OF_RANGE, "Invalid precision: %d (must be in [%d..%d])", precision, rans.MinPrecision, rans.MaxPrecision)
	}

	if len(entries) == 0 {
		return nil, rans.Errorf(rans.ERR_EMPTY_INPUT, "Cannot build a model from an empty frequency set")
	}

	sum := uint64(0)

	for i, e := range entries {
		if e.Count == 0 {
			return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Invalid null frequency for symbol '%d'", e.Value)
		}

		if i > 0 && entries[i-1].Value >= e.Value {
			return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Frequency entries not in ascending value order at symbol '%d'", e.Value)
		}

		sum += uint64(e.Count)
	}

	if sum != uint64(1)<<precision {
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Frequencies sum to %d instead of %d", sum, uint64(1)<<precision)
	}

	res := make([]rans.Entry, len(entries))
	copy(res, entries)
	return &RenormedHistogram{entries: res, precision: precision}, nil
}

// Correction units are absorbed by symbols in decreasing raw frequency
// order, ties broken by increasing symbol value. The policy is part of the
// wire contract: both coding sides must renormalize identically.
type sortByRawFreq struct {
	raw     []uint32
	order   []int
	entries []rans.Entry
}

func (this sortByRawFreq) Len() int {
	return len(this.order)
}

func (this sortByRawFreq) Less(i, j int) bool {
	oi := this.order[i]
	oj := this.order[j]

	if this.raw[oi] == this.raw[oj] {
		return this.entries[oi].Value < this.entries[oj].Value
	}

	return this.raw[oi] > this.raw[oj]
}

func (this sortByRawFreq) Swap(i, j int) {
	this.order[i], this.order[j] = this.order[j], this.order[i]
}

// Renorm rescales the histogram counts so that they sum exactly to
// 1<<precision while keeping every symbol with non-zero raw count at a
// frequency of at least one.
func Renorm(h rans.Histogram, precision uint) (*RenormedHistogram, error) {
	if precision < rans.MinPrecision || precision > rans.MaxPrecision {
		return nil, rans.Errorf(rans.ERR_PRECISION_OUT_OF_RANGE, "Invalid precision: %d (must be in [%d..%d])", precision, rans.MinPrecision, rans.MaxPrecision)
	}

	raw := h.Entries()

	if len(raw) == 0 {
		return nil, rans.Errorf(rans.ERR_EMPTY_INPUT, "Cannot renormalize an empty histogram")
	}

	scale := uint64(1) << precision

	if uint64(len(raw)) > scale {
		return nil, rans.Errorf(rans.ERR_PRECISION_OUT_OF_RANGE, "Precision %d too small for an alphabet of %d symbols", precision, len(raw))
	}

	entries := make([]rans.Entry, len(raw))
	copy(entries, raw)

	// Shortcut for a degenerate alphabet
	if len(entries) == 1 {
		entries[0].Count = uint32(scale)
		return &RenormedHistogram{entries: entries, precision: precision}, nil
	}

	total := uint64(0)

	for _, e := range raw {
		total += uint64(e.Count)
	}

	// Proportional pass: scaled = max(1, nearest(raw * scale / total))
	rawCounts := make([]uint32, len(raw))
	sumScaled := uint64(0)

	for i := range entries {
		rawCounts[i] = raw[i].Count
		sf := (uint64(raw[i].Count)*scale + total/2) / total

		if sf == 0 {
			sf = 1
		}

		entries[i].Count = uint32(sf)
		sumScaled += sf
	}

	if sumScaled != scale {
		// Correction pass: spread the signed remainder one unit at a
		// time over symbols sorted by decreasing raw frequency, without
		// reducing any frequency below one. Higher frequency symbols
		// absorb the correction first to minimize relative distortion.
		order := make([]int, len(entries))

		for i := range order {
			order[i] = i
		}

		sort.Sort(sortByRawFreq{raw: rawCounts, order: order, entries: entries})

		for sumScaled != scale {
			adjusted := false

			for _, idx := range order {
				if sumScaled < scale {
					entries[idx].Count++
					sumScaled++
					adjusted = true
				} else if entries[idx].Count > 1 {
					entries[idx].Count--
					sumScaled--
					adjusted = true
				}

				if sumScaled == scale {
					break
				}
			}

			if !adjusted {
				// Cannot happen while scale >= alphabet size
				return nil, rans.Errorf(rans.ERR_UNKNOWN, "Renormalization failed to converge at precision %d", precision)
			}
		}
	}

	return &RenormedHistogram{entries: entries, precision: precision}, nil
}

// RenormAuto rescales the histogram counts to a precision chosen from the
// distribution metrics.
func RenormAuto(h rans.Histogram) (*RenormedHistogram, error) {
	return Renorm(h, Estimate(h).SuggestedPrecision())
}
