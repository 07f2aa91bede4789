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

package benchmark

import (
	"math/rand"
	"testing"

	rans "github.com/ohmdal/rans-go"
	"github.com/ohmdal/rans-go/coder"
	"github.com/ohmdal/rans-go/histogram"
)

func benchmarkData() []int32 {
	r := rand.New(rand.NewSource(0x0badf00d))
	src := make([]int32, 1<<16)

	for i := range src {
		v := r.Intn(256)

		if r.Intn(4) != 0 {
			v &= 31
		}

		src[i] = int32(v)
	}

	return src
}

func benchmarkEncode(b *testing.B, nStreams int) {
	src := benchmarkData()
	h, err := histogram.FromSamples(src)

	if err != nil {
		b.Fatal(err)
	}

	renormed, err := histogram.Renorm(h, 14)

	if err != nil {
		b.Fatal(err)
	}

	enc, err := coder.NewEncoderFromRenormed(renormed, coder.DENSE_TYPE, rans.CoderConfig{NStreams: nStreams})

	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(src); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecode(b *testing.B, nStreams int) {
	src := benchmarkData()
	h, err := histogram.FromSamples(src)

	if err != nil {
		b.Fatal(err)
	}

	renormed, err := histogram.Renorm(h, 14)

	if err != nil {
		b.Fatal(err)
	}

	cfg := rans.CoderConfig{NStreams: nStreams}
	enc, err := coder.NewEncoderFromRenormed(renormed, coder.DENSE_TYPE, cfg)

	if err != nil {
		b.Fatal(err)
	}

	words, err := enc.Encode(src)

	if err != nil {
		b.Fatal(err)
	}

	dec, err := coder.NewDecoderFromRenormed(renormed, cfg)

	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := dec.Decode(words, len(src)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncode1(b *testing.B) {
	benchmarkEncode(b, 1)
}

func BenchmarkEncode4(b *testing.B) {
	benchmarkEncode(b, 4)
}

func BenchmarkEncode16(b *testing.B) {
	benchmarkEncode(b, 16)
}

func BenchmarkDecode1(b *testing.B) {
	benchmarkDecode(b, 1)
}

func BenchmarkDecode4(b *testing.B) {
	benchmarkDecode(b, 4)
}

func BenchmarkDecode16(b *testing.B) {
	benchmarkDecode(b, 16)
}

func BenchmarkHistogram(b *testing.B) {
	src := benchmarkData()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := histogram.FromSamples(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHistogramParallel(b *testing.B) {
	src := benchmarkData()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := histogram.FromSamplesParallel(src, 4); err != nil {
			b.Fatal(err)
		}
	}
}
