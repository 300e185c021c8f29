// Package factory implements the coder factory external interface of
// spec.md §6 ("Coder factory (consumed)"): max_symbols/max_symbol_size
// accessors plus a build operation that returns a coder reserved at the
// factory's maximum capacity and initialized to the requested shape.
package factory

import (
	"sync"

	"github.com/rolandomar/kodo/coder"
	"github.com/rolandomar/kodo/field"
)

// Factory builds coders over a fixed field, each reserving capacity for up
// to MaxSymbols() symbols of up to MaxSymbolSize() bytes.
type Factory interface {
	MaxSymbols() int
	MaxSymbolSize() int
	Build(symbols, symbolSize int) *coder.Coder
}

// Plain is the straightforward factory: every Build call constructs a
// fresh coder. Use Pooled instead when blocks are built and discarded at a
// rate where construct's allocation shows up.
type Plain struct {
	field         field.Field
	maxSymbols    int
	maxSymbolSize int
}

var _ Factory = (*Plain)(nil)

// NewPlain returns a factory building coders over f, each reserving
// capacity for up to maxSymbols symbols of up to maxSymbolSize bytes.
func NewPlain(f field.Field, maxSymbols, maxSymbolSize int) *Plain {
	return &Plain{field: f, maxSymbols: maxSymbols, maxSymbolSize: maxSymbolSize}
}

func (p *Plain) MaxSymbols() int     { return p.maxSymbols }
func (p *Plain) MaxSymbolSize() int  { return p.maxSymbolSize }

func (p *Plain) Build(symbols, symbolSize int) *coder.Coder {
	if symbols > p.maxSymbols || symbolSize > p.maxSymbolSize {
		panic("factory: build exceeds factory capacity")
	}
	c := coder.New(p.field, p.maxSymbols, p.maxSymbolSize)
	c.Initialize(symbols, symbolSize)
	return c
}

// Pooled recycles coders through a sync.Pool instead of constructing one
// per Build call, the concurrency-model counterpart to spec.md §5's
// "drop the coder to abandon a block" cancellation note: a caller done
// with a coder can Release it back instead of letting it be garbage
// collected, so the next Build for a same-shaped block skips Construct's
// allocation entirely.
type Pooled struct {
	field         field.Field
	maxSymbols    int
	maxSymbolSize int
	pool          sync.Pool
}

var _ Factory = (*Pooled)(nil)

// NewPooled returns a pooled factory building coders over f.
func NewPooled(f field.Field, maxSymbols, maxSymbolSize int) *Pooled {
	p := &Pooled{field: f, maxSymbols: maxSymbols, maxSymbolSize: maxSymbolSize}
	p.pool.New = func() interface{} {
		return coder.New(p.field, p.maxSymbols, p.maxSymbolSize)
	}
	return p
}

func (p *Pooled) MaxSymbols() int    { return p.maxSymbols }
func (p *Pooled) MaxSymbolSize() int { return p.maxSymbolSize }

func (p *Pooled) Build(symbols, symbolSize int) *coder.Coder {
	if symbols > p.maxSymbols || symbolSize > p.maxSymbolSize {
		panic("factory: build exceeds factory capacity")
	}
	c := p.pool.Get().(*coder.Coder)
	c.Initialize(symbols, symbolSize)
	return c
}

// Release returns c to the pool for reuse by a future Build call. Callers
// must not touch c after releasing it.
func (p *Pooled) Release(c *coder.Coder) {
	p.pool.Put(c)
}
