package partition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/partition"
)

func TestEvenSplitSingleBlock(t *testing.T) {
	s := partition.New(8, 4, 32)
	require.Equal(t, 1, s.Blocks())
	require.Equal(t, 8, s.Symbols(0))
	require.Equal(t, 4, s.SymbolSize(0))
	require.Equal(t, 0, s.ByteOffset(0))
	require.Equal(t, 32, s.BytesUsed(0))
}

func TestMultipleBlocksRespectMaxSymbols(t *testing.T) {
	s := partition.New(3, 4, 1000)
	for b := 0; b < s.Blocks(); b++ {
		require.LessOrEqual(t, s.Symbols(b), 3)
		require.LessOrEqual(t, s.SymbolSize(b), 4)
	}
}

// P9: byte ranges are contiguous, non-overlapping, and sum to object_size.
func TestPropertyContiguousCoverage(t *testing.T) {
	s := partition.New(3, 4, 1000)
	total := 0
	expectedOffset := 0
	for b := 0; b < s.Blocks(); b++ {
		require.Equal(t, expectedOffset, s.ByteOffset(b))
		total += s.BytesUsed(b)
		expectedOffset += s.BytesUsed(b)
	}
	require.Equal(t, 1000, total)
}

// Invariant 3: at most two symbol sizes appear; here the scheme uses a
// single uniform symbol size across all blocks, which trivially satisfies
// "at most two, differing by at most one alignment unit."
func TestPropertyUniformSymbolSize(t *testing.T) {
	s := partition.New(5, 7, 333)
	size := s.SymbolSize(0)
	for b := 1; b < s.Blocks(); b++ {
		require.Equal(t, size, s.SymbolSize(b))
	}
}

// Invariant 4: symbols(b) * symbol_size(b) >= bytes_used(b).
func TestPropertySymbolCapacityCoversUsedBytes(t *testing.T) {
	s := partition.New(4, 3, 97)
	for b := 0; b < s.Blocks(); b++ {
		require.GreaterOrEqual(t, s.Symbols(b)*s.SymbolSize(b), s.BytesUsed(b))
	}
}

// Invariant 5: determinism.
func TestPropertyDeterministic(t *testing.T) {
	a := partition.New(4, 3, 97)
	b := partition.New(4, 3, 97)
	require.Equal(t, a.Blocks(), b.Blocks())
	for i := 0; i < a.Blocks(); i++ {
		require.Equal(t, a.Symbols(i), b.Symbols(i))
		require.Equal(t, a.ByteOffset(i), b.ByteOffset(i))
		require.Equal(t, a.BytesUsed(i), b.BytesUsed(i))
	}
}

func TestObjectSmallerThanOneSymbolYieldsOneBlock(t *testing.T) {
	s := partition.New(10, 16, 3)
	require.Equal(t, 1, s.Blocks())
	require.GreaterOrEqual(t, s.Symbols(0)*s.SymbolSize(0), 3)
}
