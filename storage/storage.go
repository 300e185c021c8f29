// Package storage implements the symbol storage back-end: the
// symbols × symbol_size payload matrix a coder reduces into, in both a
// deep (owning) and shallow (borrowed-buffer) variant, grounded on
// original_source/src/kodo/deep_symbol_storage.hpp.
package storage

// Storage owns or borrows a symbols × symbol_size payload matrix and
// exposes per-row mutable and read-only views. The decoder depends only on
// Symbol and the sizing accessors; SetSymbol/SetSymbols/CopySymbols/Data
// exist for the object encoder and CLI to load and read out whole blocks.
type Storage interface {
	// Symbols returns the current symbol count S.
	Symbols() int

	// SymbolSize returns the current symbol size L in bytes.
	SymbolSize() int

	// Symbol returns a mutable view of row i. Precondition: i < Symbols().
	Symbol(i int) []byte

	// RawSymbol returns a read-only view of row i.
	RawSymbol(i int) []byte

	// SetSymbol copies src into row i. Precondition: len(src) == SymbolSize().
	SetSymbol(i int, src []byte)

	// SetSymbols copies src into the whole matrix.
	// Precondition: len(src) == Symbols()*SymbolSize().
	SetSymbols(src []byte)

	// CopySymbols copies min(len(dst), BlockSize()) bytes out of the
	// backing buffer into dst, returning the number of bytes copied.
	CopySymbols(dst []byte) int

	// Data returns a read-only view of the entire backing buffer.
	Data() []byte

	// BlockSize returns Symbols()*SymbolSize().
	BlockSize() int
}
