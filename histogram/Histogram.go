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

// Package histogram provides the symbol statistics side of the rANS pipeline:
// four histogram representations (dense, sparse, hash, set) sharing one
// counting contract, distribution metrics, and the renormalization transform
// producing the exact power-of-two probability model consumed by the coder
// package.
package histogram

import (
	"sync"

	rans "github.com/ohmdal/rans-go"
)

// A dense histogram stores one counter per value of its support range.
// Growing the range by a huge distance would allocate accordingly, so the
// span is capped; wider alphabets belong in the sparse or hash variants.
const _MAX_DENSE_RANGE = 1 << 26

// DenseHistogram counts symbol occurrences in a flat array indexed by symbol
// value minus the smallest observed value. Best suited for small, dense
// alphabets.
type DenseHistogram struct {
	counts []uint32
	offset int32
	total  uint64
}

// NewDenseHistogram creates an empty DenseHistogram
func NewDenseHistogram() *DenseHistogram {
	return &DenseHistogram{}
}

// grow extends the support range to cover [minV..maxV]
func (this *DenseHistogram) grow(minV, maxV int32) error {
	if len(this.counts) != 0 {
		if this.offset < minV {
			minV = this.offset
		}

		if last := this.offset + int32(len(this.counts)-1); last > maxV {
			maxV = last
		}
	}

	size := int64(maxV) - int64(minV) + 1

	if size > _MAX_DENSE_RANGE {
		return rans.Errorf(rans.ERR_INVALID_RANGE, "Dense histogram range too large: %d (max %d)", size, _MAX_DENSE_RANGE)
	}

	if len(this.counts) == 0 {
		this.counts = make([]uint32, size)
		this.offset = minV
		return nil
	}

	if minV == this.offset && size == int64(len(this.counts)) {
		return nil
	}

	counts := make([]uint32, size)
	copy(counts[this.offset-minV:], this.counts)
	this.counts = counts
	this.offset = minV
	return nil
}

// AddSamples accumulates occurrence counts for the provided samples
func (this *DenseHistogram) AddSamples(samples []int32) error {
	if len(samples) == 0 {
		return nil
	}

	minV, maxV := samples[0], samples[0]

	for _, s := range samples[1:] {
		if s < minV {
			minV = s
		} else if s > maxV {
			maxV = s
		}
	}

	if err := this.grow(minV, maxV); err != nil {
		return err
	}

	base := this.offset

	for _, s := range samples {
		this.counts[s-base]++
	}

	this.total += uint64(len(samples))
	return nil
}

// AddSamplesInRange accumulates occurrence counts for the samples inside
// [min..max] and ignores the others
func (this *DenseHistogram) AddSamplesInRange(samples []int32, min, max int32) error {
	if min > max {
		return rans.Errorf(rans.ERR_INVALID_RANGE, "Invalid histogram range: min %d > max %d", min, max)
	}

	if len(samples) == 0 {
		return nil
	}

	if err := this.grow(min, max); err != nil {
		return err
	}

	base := this.offset

	for _, s := range samples {
		if s < min || s > max {
			continue
		}

		this.counts[s-base]++
		this.total++
	}

	return nil
}

// Merge adds the counts of the other histogram into this one
func (this *DenseHistogram) Merge(other rans.Histogram) error {
	entries := other.Entries()

	if len(entries) == 0 {
		return nil
	}

	if err := this.grow(entries[0].Value, entries[len(entries)-1].Value); err != nil {
		return err
	}

	base := this.offset

	for _, e := range entries {
		this.counts[e.Value-base] += e.Count
		this.total += uint64(e.Count)
	}

	return nil
}

// Frequency returns the occurrence count recorded for the given value
func (this *DenseHistogram) Frequency(value int32) uint32 {
	idx := int64(value) - int64(this.offset)

	if idx < 0 || idx >= int64(len(this.counts)) {
		return 0
	}

	return this.counts[idx]
}

// Total returns the total number of recorded occurrences
func (this *DenseHistogram) Total() uint64 {
	return this.total
}

// Entries returns the non-zero (value, count) pairs in ascending value order
func (this *DenseHistogram) Entries() []rans.Entry {
	entries := make([]rans.Entry, 0, len(this.counts))

	for i, c := range this.counts {
		if c == 0 {
			continue
		}

		entries = append(entries, rans.Entry{Value: this.offset + int32(i), Count: c})
	}

	return entries
}

// FromSamples builds a DenseHistogram from the provided samples
func FromSamples(samples []int32) (*DenseHistogram, error) {
	h := NewDenseHistogram()

	if err := h.AddSamples(samples); err != nil {
		return nil, err
	}

	return h, nil
}

// FromSamplesInRange builds a DenseHistogram restricted to [min..max]
func FromSamplesInRange(samples []int32, min, max int32) (*DenseHistogram, error) {
	h := NewDenseHistogram()

	if err := h.AddSamplesInRange(samples, min, max); err != nil {
		return nil, err
	}

	return h, nil
}

// FromSamplesParallel builds a DenseHistogram by counting disjoint partitions
// of the samples on 'jobs' goroutines and merging the partial histograms.
// Merging is commutative and associative, so the result is identical to a
// sequential count.
func FromSamplesParallel(samples []int32, jobs int) (*DenseHistogram, error) {
	if jobs <= 0 {
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Invalid number of jobs: %d", jobs)
	}

	if jobs == 1 || len(samples) < 2*jobs {
		return FromSamples(samples)
	}

	parts := make([]*DenseHistogram, jobs)
	errs := make([]error, jobs)
	chunk := (len(samples) + jobs - 1) / jobs
	var wg sync.WaitGroup

	for j := 0; j < jobs; j++ {
		start := j * chunk
		end := start + chunk

		if end > len(samples) {
			end = len(samples)
		}

		wg.Add(1)

		go func(idx int, slice []int32) {
			defer wg.Done()
			parts[idx] = NewDenseHistogram()
			errs[idx] = parts[idx].AddSamples(slice)
		}(j, samples[start:end])
	}

	wg.Wait()
	res := parts[0]

	for j := 0; j < jobs; j++ {
		if errs[j] != nil {
			return nil, errs[j]
		}

		if j > 0 {
			if err := res.Merge(parts[j]); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}
