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

// HashHistogram counts symbol occurrences in a map keyed by symbol value.
// Memory scales with the number of distinct symbols, making it the fallback
// for large alphabets with unpredictable structure.
type HashHistogram struct {
	counts map[int32]uint32
	total  uint64
}

// NewHashHistogram creates an empty HashHistogram
func NewHashHistogram() *HashHistogram {
	return &HashHistogram{counts: make(map[int32]uint32)}
}

// AddSamples accumulates occurrence counts for the provided samples
func (this *HashHistogram) AddSamples(samples []int32) error {
	for _, s := range samples {
		this.counts[s]++
	}

	this.total += uint64(len(samples))
	return nil
}

// AddSamplesInRange accumulates occurrence counts for the samples inside
// [min..max] and ignores the others
func (this *HashHistogram) AddSamplesInRange(samples []int32, min, max int32) error {
	if min > max {
		return rans.Errorf(rans.ERR_INVALID_RANGE, "Invalid histogram range: min %d > max %d", min, max)
	}

	for _, s := range samples {
		if s < min || s > max {
			continue
		}

		this.counts[s]++
		this.total++
	}

	return nil
}

// Merge adds the counts of the other histogram into this one
func (this *HashHistogram) Merge(other rans.Histogram) error {
	for _, e := range other.Entries() {
		this.counts[e.Value] += e.Count
		this.total += uint64(e.Count)
	}

	return nil
}

// Frequency returns the occurrence count recorded for the given value
func (this *HashHistogram) Frequency(value int32) uint32 {
	return this.counts[value]
}

// Total returns the total number of recorded occurrences
func (this *HashHistogram) Total() uint64 {
	return this.total
}

// Entries returns the non-zero (value, count) pairs in ascending value order
func (this *HashHistogram) Entries() []rans.Entry {
	entries := make([]rans.Entry, 0, len(this.counts))

	for v, c := range this.counts {
		entries = append(entries, rans.Entry{Value: v, Count: c})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	return entries
}
