// Package coder implements the per-block coder: the storage-backed,
// field-parameterized symbol and coefficient matrices together with the
// online linear block decoder that reduces them (spec.md §3, §4.3),
// grounded on original_source/src/kodo/linear_block_decoder.hpp and
// deep_symbol_storage.hpp.
//
// A Coder is constructed once per reusable slot (Construct reserves
// capacity) and may be Initialize'd any number of times for successive
// blocks; Initialize never reallocates. It is not safe for concurrent use
// from multiple goroutines — spec.md §5 models coders as single-threaded
// objects; distinct coders for distinct blocks may be driven on separate
// goroutines.
package coder

import (
	"github.com/rolandomar/kodo/bitset"
	"github.com/rolandomar/kodo/field"
	"github.com/rolandomar/kodo/storage"
	"github.com/rolandomar/kodo/vector"
)

// Coder holds one block's payload and coefficient matrices plus the
// decoder's rank/pivot bookkeeping (spec.md §3's "Decoder bookkeeping").
type Coder struct {
	field field.Field
	view  vector.View

	payload *storage.Deep // S x L payload rows
	coeffs  *storage.Deep // S x vector_length coefficient rows, reused
	// as a Storage instance whose "symbol size" is the coefficient
	// vector's packed byte length.

	rank     int
	maxPivot int
	uncoded  *bitset.Set
	coded    *bitset.Set
}

// New constructs a Coder reserving capacity for maxSymbols rows of up to
// maxSymbolSize bytes each, over field f. It must be Initialize'd before
// use.
func New(f field.Field, maxSymbols, maxSymbolSize int) *Coder {
	c := &Coder{field: f, view: vector.New(f)}
	c.Construct(maxSymbols, maxSymbolSize)
	return c
}

// Construct (re)reserves capacity, discarding any prior block state.
func (c *Coder) Construct(maxSymbols, maxSymbolSize int) {
	maxVectorLength := c.field.VectorLength(maxSymbols)
	c.payload = storage.NewDeep(maxSymbols, maxSymbolSize)
	c.coeffs = storage.NewDeep(maxSymbols, maxVectorLength)
	c.uncoded = bitset.New(maxSymbols)
	c.coded = bitset.New(maxSymbols)
	c.rank = 0
	c.maxPivot = 0
}

// Initialize resets the coder for a new block of the given shape. Buffers
// are zeroed, not reallocated (spec.md §5).
func (c *Coder) Initialize(symbols, symbolSize int) {
	c.payload.Initialize(symbols, symbolSize)
	vectorLength := c.field.VectorLength(symbols)
	c.coeffs.Initialize(symbols, vectorLength)
	c.uncoded.Reset(symbols)
	c.coded.Reset(symbols)
	c.rank = 0
	c.maxPivot = 0
}

// Field returns the field this coder operates over.
func (c *Coder) Field() field.Field { return c.field }

// Symbols returns S, the number of source symbols in the current block.
func (c *Coder) Symbols() int { return c.payload.Symbols() }

// SymbolSize returns L, the byte size of one symbol in the current block.
func (c *Coder) SymbolSize() int { return c.payload.SymbolSize() }

// VectorLength returns the packed byte length of a coefficient vector for
// the current block.
func (c *Coder) VectorLength() int { return c.coeffs.SymbolSize() }

// SymbolLength returns the number of field elements per symbol row.
func (c *Coder) SymbolLength() int {
	w := c.field.ElementWidth()
	if w <= 1 {
		return c.SymbolSize() * 8
	}
	return c.SymbolSize() * 8 / w
}

// BlockSize returns S*L, the total byte size of the block.
func (c *Coder) BlockSize() int { return c.payload.BlockSize() }

// Symbol returns a mutable view of payload row i.
func (c *Coder) Symbol(i int) []byte { return c.payload.Symbol(i) }

// RawSymbol returns a read-only view of payload row i.
func (c *Coder) RawSymbol(i int) []byte { return c.payload.RawSymbol(i) }

// Vector returns a mutable view of the coefficient vector for row i.
func (c *Coder) Vector(i int) []byte { return c.coeffs.Symbol(i) }

// SetSymbols loads the whole block's payload from src, the way the object
// encoder's data source populates a freshly built coder.
// Precondition: len(src) == BlockSize().
func (c *Coder) SetSymbols(src []byte) { c.payload.SetSymbols(src) }

// SetSymbol loads a single payload row from src.
func (c *Coder) SetSymbol(i int, src []byte) { c.payload.SetSymbol(i, src) }

// CopySymbols copies the decoded (or loaded) block out into dst.
func (c *Coder) CopySymbols(dst []byte) int { return c.payload.CopySymbols(dst) }

// Data returns a read-only view of the whole payload buffer.
func (c *Coder) Data() []byte { return c.payload.Data() }

// Rank returns the number of occupied pivots.
func (c *Coder) Rank() int { return c.rank }

// IsComplete reports whether every symbol has been recovered.
func (c *Coder) IsComplete() bool { return c.rank == c.Symbols() }

// SymbolExists reports whether row i is occupied, coded or uncoded.
func (c *Coder) SymbolExists(i int) bool {
	return c.coded.Get(i) || c.uncoded.Get(i)
}

// Uncoded reports whether row i holds a fully reduced (systematic) symbol.
func (c *Coder) Uncoded(i int) bool { return c.uncoded.Get(i) }

// CodedRow reports whether row i holds a partially reduced coded symbol.
func (c *Coder) CodedRow(i int) bool { return c.coded.Get(i) }

// MaxPivot returns the largest occupied pivot index (0 if rank is 0).
func (c *Coder) MaxPivot() int { return c.maxPivot }
