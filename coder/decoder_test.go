package coder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/coder"
	"github.com/rolandomar/kodo/field"
)

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func binaryVector(s int, bits ...int) []byte {
	f := field.Binary{}
	vec := make([]byte, f.VectorLength(s))
	for _, b := range bits {
		f.SetCoefficient(vec, b, 1)
	}
	return vec
}

// Scenario 1: three systematic symbols arriving in order.
func TestScenarioSystematicInOrder(t *testing.T) {
	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)

	c.DecodeRaw([]byte("ABCD"), 0)
	c.DecodeRaw([]byte("EFGH"), 1)
	c.DecodeRaw([]byte("IJKL"), 2)

	require.True(t, c.IsComplete())
	require.Equal(t, 3, c.Rank())
	for i := 0; i < 3; i++ {
		require.True(t, c.Uncoded(i))
	}
	out := make([]byte, 12)
	c.CopySymbols(out)
	require.Equal(t, "ABCDEFGHIJKL", string(out))
}

// Scenario 2: three coded symbols whose vectors span GF(2)^3.
func TestScenarioCodedSymbolsSpanning(t *testing.T) {
	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)

	abcd, efgh, ijkl := []byte("ABCD"), []byte("EFGH"), []byte("IJKL")

	d1 := xorBytes(abcd, efgh)
	v1 := binaryVector(3, 0, 1)
	c.Decode(d1, v1)

	d2 := xorBytes(efgh, ijkl)
	v2 := binaryVector(3, 1, 2)
	c.Decode(d2, v2)

	d3 := xorBytes(xorBytes(abcd, efgh), ijkl)
	v3 := binaryVector(3, 0, 1, 2)
	c.Decode(d3, v3)

	require.True(t, c.IsComplete())
	out := make([]byte, 12)
	c.CopySymbols(out)
	require.Equal(t, "ABCDEFGHIJKL", string(out))
}

// Scenario 3: swap-decode when a systematic symbol arrives for a pivot a
// coded row currently occupies.
func TestScenarioSwapDecode(t *testing.T) {
	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)

	abcd, efgh := []byte("ABCD"), []byte("EFGH")
	d1 := xorBytes(abcd, efgh)
	v1 := binaryVector(3, 0, 1)
	c.Decode(d1, v1)

	require.True(t, c.CodedRow(0))
	require.Equal(t, 1, c.Rank())

	c.DecodeRaw(append([]byte(nil), abcd...), 0)

	require.True(t, c.Uncoded(0))
	require.True(t, c.Uncoded(1))
	require.Equal(t, 2, c.Rank())
	require.Equal(t, "ABCD", string(c.RawSymbol(0)))
	require.Equal(t, "EFGH", string(c.RawSymbol(1)))
}

// Scenario 4: a dependent coded symbol leaves a completed decoder
// unchanged.
func TestScenarioDependentSymbolIsHarmless(t *testing.T) {
	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)
	c.DecodeRaw([]byte("ABCD"), 0)
	c.DecodeRaw([]byte("EFGH"), 1)
	c.DecodeRaw([]byte("IJKL"), 2)

	before := make([]byte, 12)
	c.CopySymbols(before)

	d := xorBytes(xorBytes([]byte("ABCD"), []byte("EFGH")), []byte("IJKL"))
	v := binaryVector(3, 0, 1, 2)
	c.Decode(d, v)

	require.Equal(t, 3, c.Rank())
	after := make([]byte, 12)
	c.CopySymbols(after)
	require.Equal(t, before, after)
	for i := 0; i < 3; i++ {
		require.True(t, c.Uncoded(i))
	}
}

// Scenario 5: non-binary field normalization, GF(2^8), S=2, L=2.
func TestScenarioNonBinaryNormalization(t *testing.T) {
	f := field.GF256{}
	c := coder.New(f, 2, 2)
	c.Initialize(2, 2)

	row0 := []byte{1, 2}
	row1 := []byte{3, 4}

	// d1 = 2*row0 XOR 3*row1, v1 = [2,3]
	t1 := append([]byte(nil), row0...)
	f.Multiply(t1, 2)
	t2 := append([]byte(nil), row1...)
	f.Multiply(t2, 3)
	d1 := xorBytes(t1, t2)
	v1 := []byte{2, 3}
	c.Decode(d1, v1)

	require.Equal(t, 1, c.Rank())
	// After normalization the stored pivot coefficient must be 1, even
	// though the incoming row's pivot coefficient was 2.
	require.EqualValues(t, 1, f.Coefficient(c.Vector(0), 0))

	// d2 = row0 XOR row1, v2 = [1,1]
	d2 := xorBytes(row0, row1)
	v2 := []byte{1, 1}
	c.Decode(d2, v2)

	require.True(t, c.IsComplete())
	require.Equal(t, row0, c.RawSymbol(0))
	require.Equal(t, row1, c.RawSymbol(1))
}

// P1: echelon form - every coded row's leading non-zero coefficient sits
// at its own pivot index with value 1.
func TestPropertyEchelonForm(t *testing.T) {
	c := coder.New(field.Binary{}, 4, 2)
	c.Initialize(4, 2)

	c.Decode(xorBytes([]byte("AB"), []byte("CD")), binaryVector(4, 0, 1))
	c.Decode(xorBytes([]byte("CD"), []byte("EF")), binaryVector(4, 1, 2))

	for i := 0; i < 4; i++ {
		if !c.CodedRow(i) {
			continue
		}
		v := c.Vector(i)
		f := c.Field()
		require.EqualValues(t, 1, f.Coefficient(v, i))
		for k := 0; k < i; k++ {
			require.EqualValues(t, 0, f.Coefficient(v, k), "row %d col %d", i, k)
		}
	}
}

// P3/P6: rank accounting and monotonicity across a mixed sequence.
func TestPropertyRankMonotonic(t *testing.T) {
	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)

	prev := 0
	steps := []func(){
		func() { c.Decode(xorBytes([]byte("ABCD"), []byte("EFGH")), binaryVector(3, 0, 1)) },
		func() { c.DecodeRaw([]byte("ABCD"), 0) },
		func() { c.DecodeRaw([]byte("IJKL"), 2) },
	}
	for _, step := range steps {
		step()
		require.GreaterOrEqual(t, c.Rank(), prev)
		require.LessOrEqual(t, c.Rank(), c.Symbols())
		prev = c.Rank()
	}
}

// P5: idempotence of a duplicate systematic symbol.
func TestPropertyDuplicateSystematicIdempotent(t *testing.T) {
	c := coder.New(field.Binary{}, 2, 4)
	c.Initialize(2, 4)
	c.DecodeRaw([]byte("ABCD"), 0)
	rankAfterFirst := c.Rank()
	dataAfterFirst := append([]byte(nil), c.RawSymbol(0)...)

	c.DecodeRaw([]byte("ABCD"), 0)
	require.Equal(t, rankAfterFirst, c.Rank())
	require.Equal(t, dataAfterFirst, c.RawSymbol(0))
}
