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
	"math/rand"
	"testing"

	rans "github.com/ohmdal/rans-go"
)

func countingHistograms() map[string]rans.Histogram {
	return map[string]rans.Histogram{
		"dense":  NewDenseHistogram(),
		"sparse": NewSparseHistogram(),
		"hash":   NewHashHistogram(),
	}
}

func sameEntries(a, b []rans.Entry) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestCounting(t *testing.T) {
	samples := []int32{3, -1, 3, 7, 3, -1}

	for name, h := range countingHistograms() {
		if err := h.AddSamples(samples); err != nil {
			t.Fatalf("%v: AddSamples failed: %v", name, err)
		}

		expected := map[int32]uint32{3: 3, -1: 2, 7: 1, 0: 0, 100: 0}

		for v, c := range expected {
			if got := h.Frequency(v); got != c {
				t.Errorf("%v: Frequency(%d) = %d, expected %d", name, v, got, c)
			}
		}

		if h.Total() != 6 {
			t.Errorf("%v: Total() = %d, expected 6", name, h.Total())
		}

		want := []rans.Entry{{Value: -1, Count: 2}, {Value: 3, Count: 3}, {Value: 7, Count: 1}}

		if !sameEntries(h.Entries(), want) {
			t.Errorf("%v: Entries() = %v, expected %v", name, h.Entries(), want)
		}
	}
}

func TestSetHistogram(t *testing.T) {
	h := NewSetHistogram()

	if err := h.AddSamples([]int32{5, 5, 5, -2, 9}); err != nil {
		t.Fatalf("AddSamples failed: %v", err)
	}

	if h.Total() != 3 {
		t.Errorf("Total() = %d, expected 3 distinct symbols", h.Total())
	}

	if h.Frequency(5) != 1 || h.Frequency(-2) != 1 || h.Frequency(0) != 0 {
		t.Errorf("Presence counts incorrect: %v", h.Entries())
	}

	want := []rans.Entry{{Value: -2, Count: 1}, {Value: 5, Count: 1}, {Value: 9, Count: 1}}

	if !sameEntries(h.Entries(), want) {
		t.Errorf("Entries() = %v, expected %v", h.Entries(), want)
	}
}

func TestAddSamplesInRange(t *testing.T) {
	all := map[string]rans.Histogram{
		"dense":  NewDenseHistogram(),
		"sparse": NewSparseHistogram(),
		"hash":   NewHashHistogram(),
		"set":    NewSetHistogram(),
	}

	for name, h := range all {
		if err := h.AddSamplesInRange([]int32{1, 2, 3}, 5, 4); err == nil {
			t.Errorf("%v: expected an error for min > max", name)
		} else if rans.ErrorCode(err) != rans.ERR_INVALID_RANGE {
			t.Errorf("%v: expected code ERR_INVALID_RANGE, got %d", name, rans.ErrorCode(err))
		}

		if err := h.AddSamplesInRange([]int32{1, 2, 3, 10, -5}, 2, 10); err != nil {
			t.Fatalf("%v: AddSamplesInRange failed: %v", name, err)
		}

		if h.Frequency(1) != 0 || h.Frequency(-5) != 0 {
			t.Errorf("%v: out of range samples were counted", name)
		}

		if h.Frequency(2) != 1 || h.Frequency(10) != 1 {
			t.Errorf("%v: in range samples were not counted", name)
		}
	}
}

func TestMergeMatchesConcat(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s1 := make([]int32, 500)
	s2 := make([]int32, 300)

	for i := range s1 {
		s1[i] = int32(r.Intn(64) - 16)
	}

	for i := range s2 {
		s2[i] = int32(r.Intn(64) - 16)
	}

	whole, err := FromSamples(append(append([]int32{}, s1...), s2...))

	if err != nil {
		t.Fatalf("FromSamples failed: %v", err)
	}

	h1, _ := FromSamples(s1)
	h2, _ := FromSamples(s2)

	if err := h1.Merge(h2); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if !sameEntries(h1.Entries(), whole.Entries()) {
		t.Errorf("Merged histogram differs from the histogram of the concatenated samples")
	}

	if h1.Total() != whole.Total() {
		t.Errorf("Merged total = %d, expected %d", h1.Total(), whole.Total())
	}
}

func TestMergeAssociativityAndCommutativity(t *testing.T) {
	s1 := []int32{1, 1, 2}
	s2 := []int32{2, 3}
	s3 := []int32{3, 3, 4, 1}

	left := NewDenseHistogram()
	left.AddSamples(s1)
	m12 := NewDenseHistogram()
	m12.AddSamples(s2)
	left.Merge(m12)
	m3 := NewDenseHistogram()
	m3.AddSamples(s3)
	left.Merge(m3)

	right := NewDenseHistogram()
	right.AddSamples(s2)
	m3b := NewDenseHistogram()
	m3b.AddSamples(s3)
	right.Merge(m3b)
	m1 := NewDenseHistogram()
	m1.AddSamples(s1)
	right.Merge(m1)

	if !sameEntries(left.Entries(), right.Entries()) {
		t.Errorf("Merge is not associative/commutative: %v != %v", left.Entries(), right.Entries())
	}
}

func TestMergeAcrossRepresentations(t *testing.T) {
	dense := NewDenseHistogram()
	dense.AddSamples([]int32{1, 2, 2})
	hash := NewHashHistogram()
	hash.AddSamples([]int32{2, 100000})

	if err := dense.Merge(hash); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if dense.Frequency(2) != 3 || dense.Frequency(100000) != 1 {
		t.Errorf("Cross representation merge incorrect: %v", dense.Entries())
	}
}

func TestParallelCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	samples := make([]int32, 10000)

	for i := range samples {
		samples[i] = int32(r.Intn(1000) - 500)
	}

	serial, err := FromSamples(samples)

	if err != nil {
		t.Fatalf("FromSamples failed: %v", err)
	}

	for _, jobs := range []int{1, 2, 3, 8} {
		parallel, err := FromSamplesParallel(samples, jobs)

		if err != nil {
			t.Fatalf("FromSamplesParallel(%d jobs) failed: %v", jobs, err)
		}

		if !sameEntries(parallel.Entries(), serial.Entries()) {
			t.Errorf("Parallel count with %d jobs differs from the serial count", jobs)
		}
	}

	if _, err := FromSamplesParallel(samples, 0); err == nil {
		t.Errorf("Expected an error for 0 jobs")
	}
}

func TestSparseNegativeBuckets(t *testing.T) {
	h := NewSparseHistogram()
	samples := []int32{-1, -256, -257, 0, 255, 256}
	h.AddSamples(samples)
	entries := h.Entries()
	want := []rans.Entry{
		{Value: -257, Count: 1}, {Value: -256, Count: 1}, {Value: -1, Count: 1},
		{Value: 0, Count: 1}, {Value: 255, Count: 1}, {Value: 256, Count: 1},
	}

	if !sameEntries(entries, want) {
		t.Errorf("Entries() = %v, expected %v", entries, want)
	}
}
