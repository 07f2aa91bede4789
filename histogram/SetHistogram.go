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

// SetHistogram records which symbols occur, not how often. Every present
// symbol reports a frequency of one, so renormalizing it yields a near
// uniform model over the support. Useful when only the support matters, for
// instance to build an escape/default-symbol scheme.
type SetHistogram struct {
	members map[int32]struct{}
}

// NewSetHistogram creates an empty SetHistogram
func NewSetHistogram() *SetHistogram {
	return &SetHistogram{members: make(map[int32]struct{})}
}

// AddSamples records the presence of the provided samples
func (this *SetHistogram) AddSamples(samples []int32) error {
	for _, s := range samples {
		this.members[s] = struct{}{}
	}

	return nil
}

// AddSamplesInRange records the presence of the samples inside [min..max]
// and ignores the others
func (this *SetHistogram) AddSamplesInRange(samples []int32, min, max int32) error {
	if min > max {
		return rans.Errorf(rans.ERR_INVALID_RANGE, "Invalid histogram range: min %d > max %d", min, max)
	}

	for _, s := range samples {
		if s < min || s > max {
			continue
		}

		this.members[s] = struct{}{}
	}

	return nil
}

// Merge adds the support of the other histogram into this one.
// The union keeps presence only, counts are discarded.
func (this *SetHistogram) Merge(other rans.Histogram) error {
	for _, e := range other.Entries() {
		this.members[e.Value] = struct{}{}
	}

	return nil
}

// Frequency returns 1 when the value is present, 0 otherwise
func (this *SetHistogram) Frequency(value int32) uint32 {
	if _, ok := this.members[value]; ok {
		return 1
	}

	return 0
}

// Total returns the number of distinct recorded symbols
func (this *SetHistogram) Total() uint64 {
	return uint64(len(this.members))
}

// Entries returns the present symbols in ascending value order, each with a
// count of one
func (this *SetHistogram) Entries() []rans.Entry {
	entries := make([]rans.Entry, 0, len(this.members))

	for v := range this.members {
		entries = append(entries, rans.Entry{Value: v, Count: 1})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	return entries
}
