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
	"math"

	rans "github.com/ohmdal/rans-go"
	internal "github.com/ohmdal/rans-go/internal"
)

// Metrics summarizes the shape of a distribution. It is consumed by the
// renormalizer to pick a precision under the Auto policy, balancing model
// fidelity against table size.
type Metrics struct {
	// AlphabetSize is the number of distinct symbols with non-zero count.
	AlphabetSize int

	// EntropyBits1024 is the zero order entropy of the distribution in
	// bits, scaled by 1024.
	EntropyBits1024 uint32

	// TotalSamples is the total number of recorded occurrences.
	TotalSamples uint64
}

// Estimate computes distribution metrics for the given histogram using fixed
// point arithmetic (max error around 0.1%).
func Estimate(h rans.Histogram) Metrics {
	entries := h.Entries()
	m := Metrics{AlphabetSize: len(entries)}

	if len(entries) == 0 {
		return m
	}

	total := uint64(0)

	for _, e := range entries {
		total += uint64(e.Count)
	}

	m.TotalSamples = total

	// The fixed point log helper takes 32 bit inputs. Totals beyond that
	// are clamped, which only flattens the estimate for absurdly large
	// sample batches.
	t := total

	if t > math.MaxUint32 {
		t = math.MaxUint32
	}

	logTotal1024, _ := internal.Log2_1024(uint32(t))
	sum := uint64(0)

	for _, e := range entries {
		logCount1024, _ := internal.Log2_1024(e.Count)
		sum += uint64(e.Count) * uint64(logTotal1024-logCount1024)
	}

	m.EntropyBits1024 = uint32(sum / total)
	return m
}

// SuggestedPrecision returns the renormalization precision the Auto policy
// derives from these metrics: enough bits to give every symbol a slot, plus
// headroom above the estimated entropy, clamped to the supported bounds.
func (this Metrics) SuggestedPrecision() uint {
	if this.AlphabetSize == 0 {
		return rans.MinPrecision
	}

	alphabetBits := uint(internal.Log2NoCheck(uint32(this.AlphabetSize)))

	if !internal.IsPowerOf2(int32(this.AlphabetSize)) {
		alphabetBits++
	}

	entropyBits := uint((this.EntropyBits1024 + 1023) >> 10)
	p := alphabetBits + 1

	if entropyBits+2 > p {
		p = entropyBits + 2
	}

	if p < rans.MinPrecision {
		p = rans.MinPrecision
	}

	if p > rans.MaxPrecision {
		p = rans.MaxPrecision
	}

	return p
}
