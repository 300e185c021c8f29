// Package object implements the object encoder of spec.md §4.5: wraps a
// coder factory and an object data source together with the eagerly
// computed partitioning scheme, grounded on
// original_source/src/kodo/object_encoder.hpp.
package object

import (
	"sync"

	"github.com/rolandomar/kodo/coder"
	"github.com/rolandomar/kodo/factory"
	"github.com/rolandomar/kodo/partition"
)

// DataSource is the object data view external interface of spec.md §6:
// Size reports the object's byte length, Read copies length bytes starting
// at offset into the coder's symbol storage via SetSymbols.
type DataSource interface {
	Size() int
	Read(c *coder.Coder, offset, length int) error
}

// Encoder holds a non-owning reference to a coder factory and an owning
// data source, and computes the partitioning eagerly at construction.
// Precondition: data.Size() > 0.
type Encoder struct {
	factory     factory.Factory
	data        DataSource
	partitioning *partition.Scheme
}

// New constructs an object encoder over f and data. Panics if data is
// empty, matching spec.md §4.5's precondition.
func New(f factory.Factory, data DataSource) *Encoder {
	if data.Size() <= 0 {
		panic("object: data source must be non-empty")
	}
	return &Encoder{
		factory:      f,
		data:         data,
		partitioning: partition.New(f.MaxSymbols(), f.MaxSymbolSize(), data.Size()),
	}
}

// Encoders returns the number of blocks this object was partitioned into.
func (e *Encoder) Encoders() int { return e.partitioning.Blocks() }

// ObjectSize returns the total object size in bytes.
func (e *Encoder) ObjectSize() int { return e.data.Size() }

// ByteOffset returns the byte offset of block b within the object, as
// computed by the partitioning scheme.
func (e *Encoder) ByteOffset(b int) int { return e.partitioning.ByteOffset(b) }

// BytesUsed returns the number of non-padding bytes block b covers.
func (e *Encoder) BytesUsed(b int) int { return e.partitioning.BytesUsed(b) }

// Build constructs a coder for block b via the factory, then reads that
// block's bytes into it. Idempotent modulo factory semantics: repeated
// calls with the same b return independent coders loaded with the same
// bytes (spec.md §4.5).
func (e *Encoder) Build(b int) (*coder.Coder, error) {
	symbols := e.partitioning.Symbols(b)
	symbolSize := e.partitioning.SymbolSize(b)
	c := e.factory.Build(symbols, symbolSize)

	offset := e.partitioning.ByteOffset(b)
	bytesUsed := e.partitioning.BytesUsed(b)
	if err := e.data.Read(c, offset, bytesUsed); err != nil {
		return nil, err
	}
	return c, nil
}

// BuildAll builds every block's coder concurrently, fanning the work out
// across a bounded worker pool of size workers — the same goroutine-
// per-shard pattern as the teacher's pu/vanilla.VanillaPU.Encode, bounded
// here rather than spawned one-per-block since an object may partition
// into far more blocks than a machine has cores. The returned slice is
// indexed by block number; an error from any block build is returned
// alongside a partial slice (coders for blocks that succeeded are non-nil).
func (e *Encoder) BuildAll(workers int) ([]*coder.Coder, error) {
	if workers <= 0 {
		workers = 1
	}
	n := e.Encoders()
	coders := make([]*coder.Coder, n)
	errs := make([]error, n)

	blocks := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for b := range blocks {
				c, err := e.Build(b)
				coders[b] = c
				errs[b] = err
			}
		}()
	}
	for b := 0; b < n; b++ {
		blocks <- b
	}
	close(blocks)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return coders, err
		}
	}
	return coders, nil
}
