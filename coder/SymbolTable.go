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

// Package coder implements the encode/decode side of the rANS pipeline:
// symbol tables mapping each symbol to its (frequency, cumulative start)
// entry, the slot-to-symbol decoder table, and the multi-stream encoder and
// decoder state machines.
//
// Encoder and decoder must be built from the same renormalized histogram (or
// two renormalizations of identical input) and agree on the stream count;
// the encoded word stream carries no copy of the probability model.
package coder

import (
	rans "github.com/ohmdal/rans-go"
	"github.com/ohmdal/rans-go/histogram"
)

const (
	DENSE_TYPE  = uint32(0) // Direct array symbol table
	SPARSE_TYPE = uint32(1) // Bucketed symbol table
	HASH_TYPE   = uint32(2) // Map based symbol table
)

const (
	_TABLE_BUCKET_BITS = 8
	_TABLE_BUCKET_SIZE = 1 << _TABLE_BUCKET_BITS
	_TABLE_BUCKET_MASK = _TABLE_BUCKET_SIZE - 1
	_MAX_TABLE_RANGE   = 1 << 26
)

// Symbol is the encode-side view of one model symbol at a given precision.
type Symbol struct {
	freq    uint32
	cumFreq uint32
}

// Frequency returns the renormalized frequency of the symbol
func (this Symbol) Frequency() uint32 {
	return this.freq
}

// CumulativeStart returns the exclusive prefix sum of the frequencies of all
// lower valued symbols
func (this Symbol) CumulativeStart() uint32 {
	return this.cumFreq
}

// SymbolTable maps a symbol value to its Symbol entry. The representation
// variant is chosen at construction; the lookup contract is uniform and a
// table is immutable and safe for concurrent readers once built.
type SymbolTable interface {
	// Lookup returns the entry for the given symbol value. Fails with code
	// ERR_SYMBOL_NOT_FOUND when the value is absent from the model.
	Lookup(value int32) (Symbol, error)

	// Precision returns the renormalization precision of the model
	Precision() uint

	// AlphabetSize returns the number of symbols in the model
	AlphabetSize() int
}

// NewSymbolTable creates a symbol table of the requested representation from
// the renormalized histogram
func NewSymbolTable(r *histogram.RenormedHistogram, tableType uint32) (SymbolTable, error) {
	switch tableType {
	case DENSE_TYPE:
		return NewDenseSymbolTable(r)

	case SPARSE_TYPE:
		return NewSparseSymbolTable(r)

	case HASH_TYPE:
		return NewHashSymbolTable(r)

	default:
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Unsupported symbol table type: '%d'", tableType)
	}
}

func symbolNotFound(value int32) error {
	return rans.Errorf(rans.ERR_SYMBOL_NOT_FOUND, "Symbol '%d' is not part of the model", value)
}

// DenseSymbolTable stores entries in a flat array indexed by symbol value
// minus the smallest model value
type DenseSymbolTable struct {
	symbols   []Symbol
	offset    int32
	precision uint
	alphabet  int
}

// NewDenseSymbolTable creates a DenseSymbolTable from the renormalized
// histogram
func NewDenseSymbolTable(r *histogram.RenormedHistogram) (*DenseSymbolTable, error) {
	entries := r.Entries()
	first := entries[0].Value
	last := entries[len(entries)-1].Value
	size := int64(last) - int64(first) + 1

	if size > _MAX_TABLE_RANGE {
		return nil, rans.Errorf(rans.ERR_INVALID_PARAM, "Model range too large for a dense symbol table: %d (max %d)", size, _MAX_TABLE_RANGE)
	}

	this := &DenseSymbolTable{
		symbols:   make([]Symbol, size),
		offset:    first,
		precision: r.Precision(),
		alphabet:  len(entries),
	}

	cum := uint32(0)

	for _, e := range entries {
		this.symbols[e.Value-first] = Symbol{freq: e.Count, cumFreq: cum}
		cum += e.Count
	}

	return this, nil
}

// Lookup returns the entry for the given symbol value
func (this *DenseSymbolTable) Lookup(value int32) (Symbol, error) {
	idx := int64(value) - int64(this.offset)

	if idx < 0 || idx >= int64(len(this.symbols)) || this.symbols[idx].freq == 0 {
		return Symbol{}, symbolNotFound(value)
	}

	return this.symbols[idx], nil
}

// Precision returns the renormalization precision of the model
func (this *DenseSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of symbols in the model
func (this *DenseSymbolTable) AlphabetSize() int {
	return this.alphabet
}

// SparseSymbolTable stores entries in lazily allocated buckets keyed by the
// high bits of the symbol value
type SparseSymbolTable struct {
	buckets   map[int32]*[_TABLE_BUCKET_SIZE]Symbol
	precision uint
	alphabet  int
}

// NewSparseSymbolTable creates a SparseSymbolTable from the renormalized
// histogram
func NewSparseSymbolTable(r *histogram.RenormedHistogram) (*SparseSymbolTable, error) {
	entries := r.Entries()
	this := &SparseSymbolTable{
		buckets:   make(map[int32]*[_TABLE_BUCKET_SIZE]Symbol),
		precision: r.Precision(),
		alphabet:  len(entries),
	}

	cum := uint32(0)

	for _, e := range entries {
		key := e.Value >> _TABLE_BUCKET_BITS
		b := this.buckets[key]

		if b == nil {
			b = new([_TABLE_BUCKET_SIZE]Symbol)
			this.buckets[key] = b
		}

		b[e.Value&_TABLE_BUCKET_MASK] = Symbol{freq: e.Count, cumFreq: cum}
		cum += e.Count
	}

	return this, nil
}

// Lookup returns the entry for the given symbol value
func (this *SparseSymbolTable) Lookup(value int32) (Symbol, error) {
	b := this.buckets[value>>_TABLE_BUCKET_BITS]

	if b == nil || b[value&_TABLE_BUCKET_MASK].freq == 0 {
		return Symbol{}, symbolNotFound(value)
	}

	return b[value&_TABLE_BUCKET_MASK], nil
}

// Precision returns the renormalization precision of the model
func (this *SparseSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of symbols in the model
func (this *SparseSymbolTable) AlphabetSize() int {
	return this.alphabet
}

// HashSymbolTable stores entries in a map keyed by symbol value
type HashSymbolTable struct {
	symbols   map[int32]Symbol
	precision uint
}

// NewHashSymbolTable creates a HashSymbolTable from the renormalized
// histogram
func NewHashSymbolTable(r *histogram.RenormedHistogram) (*HashSymbolTable, error) {
	entries := r.Entries()
	this := &HashSymbolTable{
		symbols:   make(map[int32]Symbol, len(entries)),
		precision: r.Precision(),
	}

	cum := uint32(0)

	for _, e := range entries {
		this.symbols[e.Value] = Symbol{freq: e.Count, cumFreq: cum}
		cum += e.Count
	}

	return this, nil
}

// Lookup returns the entry for the given symbol value
func (this *HashSymbolTable) Lookup(value int32) (Symbol, error) {
	s, ok := this.symbols[value]

	if !ok {
		return Symbol{}, symbolNotFound(value)
	}

	return s, nil
}

// Precision returns the renormalization precision of the model
func (this *HashSymbolTable) Precision() uint {
	return this.precision
}

// AlphabetSize returns the number of symbols in the model
func (this *HashSymbolTable) AlphabetSize() int {
	return len(this.symbols)
}
