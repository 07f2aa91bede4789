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
	"github.com/ohmdal/rans-go/histogram"
)

// NewEncoderFromRenormed creates an encoder over a symbol table of the
// requested representation built from the renormalized histogram
func NewEncoderFromRenormed(r *histogram.RenormedHistogram, tableType uint32, cfg rans.CoderConfig) (*Encoder, error) {
	table, err := NewSymbolTable(r, tableType)

	if err != nil {
		return nil, err
	}

	return NewEncoder(table, cfg)
}

// NewDecoderFromRenormed creates a decoder over a decoder table built from
// the renormalized histogram
func NewDecoderFromRenormed(r *histogram.RenormedHistogram, cfg rans.CoderConfig) (*Decoder, error) {
	table, err := NewDecoderTable(r)

	if err != nil {
		return nil, err
	}

	return NewDecoder(table, cfg)
}

// NewEncoderFromHistogram renormalizes the histogram with the Auto precision
// policy and creates an encoder from it. The renormalized model is returned
// alongside the encoder: the decoding side needs the identical model, and
// the encoded stream does not carry it.
func NewEncoderFromHistogram(h rans.Histogram, tableType uint32, cfg rans.CoderConfig) (*Encoder, *histogram.RenormedHistogram, error) {
	r, err := histogram.RenormAuto(h)

	if err != nil {
		return nil, nil, err
	}

	enc, err := NewEncoderFromRenormed(r, tableType, cfg)

	if err != nil {
		return nil, nil, err
	}

	return enc, r, nil
}

// NewDecoderFromHistogram renormalizes the histogram with the Auto precision
// policy and creates a decoder from it. Given a histogram with the same
// entries it produces a model identical to NewEncoderFromHistogram.
func NewDecoderFromHistogram(h rans.Histogram, cfg rans.CoderConfig) (*Decoder, *histogram.RenormedHistogram, error) {
	r, err := histogram.RenormAuto(h)

	if err != nil {
		return nil, nil, err
	}

	dec, err := NewDecoderFromRenormed(r, cfg)

	if err != nil {
		return nil, nil, err
	}

	return dec, r, nil
}

// NewEncoderFromSamples counts the samples into a dense histogram,
// renormalizes it with the Auto precision policy and creates an encoder
func NewEncoderFromSamples(samples []int32, cfg rans.CoderConfig) (*Encoder, *histogram.RenormedHistogram, error) {
	h, err := histogram.FromSamples(samples)

	if err != nil {
		return nil, nil, err
	}

	return NewEncoderFromHistogram(h, DENSE_TYPE, cfg)
}

// NewDecoderFromSamples counts the samples into a dense histogram,
// renormalizes it with the Auto precision policy and creates a decoder.
// Given the same samples it produces a model identical to
// NewEncoderFromSamples.
func NewDecoderFromSamples(samples []int32, cfg rans.CoderConfig) (*Decoder, *histogram.RenormedHistogram, error) {
	h, err := histogram.FromSamples(samples)

	if err != nil {
		return nil, nil, err
	}

	return NewDecoderFromHistogram(h, cfg)
}
