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

const (
	_BUCKET_BITS = 8
	_BUCKET_SIZE = 1 << _BUCKET_BITS
	_BUCKET_MASK = _BUCKET_SIZE - 1
)

// SparseHistogram counts symbol occurrences in lazily allocated fixed-size
// buckets keyed by the high bits of the symbol value. Suited for alphabets
// with localized sparsity: a handful of populated value neighborhoods spread
// over a wide domain.
type SparseHistogram struct {
	buckets map[int32]*[_BUCKET_SIZE]uint32
	total   uint64
}

// NewSparseHistogram creates an empty SparseHistogram
func NewSparseHistogram() *SparseHistogram {
	return &SparseHistogram{buckets: make(map[int32]*[_BUCKET_SIZE]uint32)}
}

func (this *SparseHistogram) bucket(value int32) *[_BUCKET_SIZE]uint32 {
	// Arithmetic shift keeps negative values in order, the low bits index
	// inside the bucket
	key := value >> _BUCKET_BITS
	b := this.buckets[key]

	if b == nil {
		b = new([_BUCKET_SIZE]uint32)
		this.buckets[key] = b
	}

	return b
}

// AddSamples accumulates occurrence counts for the provided samples
func (this *SparseHistogram) AddSamples(samples []int32) error {
	for _, s := range samples {
		this.bucket(s)[s&_BUCKET_MASK]++
	}

	this.total += uint64(len(samples))
	return nil
}

// AddSamplesInRange accumulates occurrence counts for the samples inside
// [min..max] and ignores the others
func (this *SparseHistogram) AddSamplesInRange(samples []int32, min, max int32) error {
	if min > max {
		return rans.Errorf(rans.ERR_INVALID_RANGE, "Invalid histogram range: min %d > max %d", min, max)
	}

	for _, s := range samples {
		if s < min || s > max {
			continue
		}

		this.bucket(s)[s&_BUCKET_MASK]++
		this.total++
	}

	return nil
}

// Merge adds the counts of the other histogram into this one
func (this *SparseHistogram) Merge(other rans.Histogram) error {
	for _, e := range other.Entries() {
		this.bucket(e.Value)[e.Value&_BUCKET_MASK] += e.Count
		this.total += uint64(e.Count)
	}

	return nil
}

// Frequency returns the occurrence count recorded for the given value
func (this *SparseHistogram) Frequency(value int32) uint32 {
	if b := this.buckets[value>>_BUCKET_BITS]; b != nil {
		return b[value&_BUCKET_MASK]
	}

	return 0
}

// Total returns the total number of recorded occurrences
func (this *SparseHistogram) Total() uint64 {
	return this.total
}

// Entries returns the non-zero (value, count) pairs in ascending value order
func (this *SparseHistogram) Entries() []rans.Entry {
	keys := make([]int32, 0, len(this.buckets))

	for k := range this.buckets {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	entries := make([]rans.Entry, 0, len(keys))

	for _, k := range keys {
		b := this.buckets[k]

		for i, c := range b {
			if c == 0 {
				continue
			}

			entries = append(entries, rans.Entry{Value: k<<_BUCKET_BITS + int32(i), Count: c})
		}
	}

	return entries
}
