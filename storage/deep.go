package storage

// Deep is the deep storage variant: it owns a single contiguous buffer of
// maxSymbols*maxSymbolSize bytes, grounded on deep_symbol_storage.hpp.
// Construct allocates once; Initialize only zeroes and never reallocates,
// matching spec.md §5's "hot path performs zero allocations."
type Deep struct {
	maxSymbols    int
	maxSymbolSize int

	symbols    int
	symbolSize int

	data []byte
}

var _ Storage = (*Deep)(nil)

// NewDeep constructs storage reserving capacity for maxSymbols rows of up
// to maxSymbolSize bytes each.
func NewDeep(maxSymbols, maxSymbolSize int) *Deep {
	d := &Deep{}
	d.Construct(maxSymbols, maxSymbolSize)
	return d
}

// Construct (re)reserves the backing buffer. Safe to call more than once;
// it always reallocates to the new capacity.
func (d *Deep) Construct(maxSymbols, maxSymbolSize int) {
	if maxSymbols <= 0 || maxSymbolSize <= 0 {
		panic("storage: construct requires positive max_symbols and max_symbol_size")
	}
	d.maxSymbols = maxSymbols
	d.maxSymbolSize = maxSymbolSize
	d.data = make([]byte, maxSymbols*maxSymbolSize)
	d.symbols = 0
	d.symbolSize = 0
}

// Initialize resets the storage for a block of the given shape, zeroing the
// buffer but never reallocating.
func (d *Deep) Initialize(symbols, symbolSize int) {
	if symbols > d.maxSymbols || symbolSize > d.maxSymbolSize {
		panic("storage: initialize exceeds reserved capacity")
	}
	d.symbols = symbols
	d.symbolSize = symbolSize
	for i := range d.data {
		d.data[i] = 0
	}
}

func (d *Deep) Symbols() int    { return d.symbols }
func (d *Deep) SymbolSize() int { return d.symbolSize }
func (d *Deep) BlockSize() int  { return d.symbols * d.symbolSize }

func (d *Deep) Symbol(i int) []byte {
	d.checkIndex(i)
	off := i * d.symbolSize
	return d.data[off : off+d.symbolSize]
}

func (d *Deep) RawSymbol(i int) []byte {
	return d.Symbol(i)
}

func (d *Deep) SetSymbol(i int, src []byte) {
	if len(src) != d.symbolSize {
		panic("storage: set_symbol wrong length")
	}
	copy(d.Symbol(i), src)
}

func (d *Deep) SetSymbols(src []byte) {
	if len(src) != d.BlockSize() {
		panic("storage: set_symbols wrong length")
	}
	copy(d.data, src)
}

func (d *Deep) CopySymbols(dst []byte) int {
	n := len(dst)
	if b := d.BlockSize(); n > b {
		n = b
	}
	copy(dst[:n], d.data[:n])
	return n
}

func (d *Deep) Data() []byte {
	return d.data
}

func (d *Deep) checkIndex(i int) {
	if i < 0 || i >= d.symbols {
		panic("storage: symbol index out of range")
	}
}
