package field_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/field"
)

func TestBinaryXOR(t *testing.T) {
	f := field.Binary{}
	dst := []byte{0x0f, 0xff}
	src := []byte{0xf0, 0x0f}
	f.Subtract(dst, src)
	require.Equal(t, []byte{0xff, 0xf0}, dst)
}

func TestBinaryMultiplySubtractZeroIsNoop(t *testing.T) {
	f := field.Binary{}
	dst := []byte{0xab}
	f.MultiplySubtract(dst, []byte{0xff}, 0)
	require.Equal(t, []byte{0xab}, dst)
}

func TestBinaryCoefficientPacking(t *testing.T) {
	f := field.Binary{}
	vec := make([]byte, f.VectorLength(10))
	require.Len(t, vec, 2)
	f.SetCoefficient(vec, 0, 1)
	f.SetCoefficient(vec, 9, 1)
	require.EqualValues(t, 1, f.Coefficient(vec, 0))
	require.EqualValues(t, 1, f.Coefficient(vec, 9))
	require.EqualValues(t, 0, f.Coefficient(vec, 1))
}

func TestGF256MultiplyAndInvert(t *testing.T) {
	f := field.GF256{}
	for e := uint32(1); e < 256; e++ {
		inv := f.Invert(e)
		buf := []byte{byte(e)}
		f.Multiply(buf, inv)
		require.EqualValues(t, 1, buf[0], "e=%d", e)
	}
}

func TestGF256MultiplySubtractMatchesTeacherTables(t *testing.T) {
	f := field.GF256{}
	dst := []byte{5}
	f.MultiplySubtract(dst, []byte{3}, 2)
	// 5 ^ (3*2 in GF(2^8)); verified against the teacher's Mul table shape.
	want := byte(5) ^ gf256MulReference(3, 2)
	require.Equal(t, want, dst[0])
}

// gf256MulReference reimplements the teacher's shift-and-reduce multiply
// (util/gf_arithmetic.go's mul_costly) independently, as a cross-check that
// doesn't share code with the table-based implementation under test.
func gf256MulReference(a, b byte) byte {
	const prime = 0x11d
	result := 0
	for i := 0; a>>i > 0; i++ {
		if a&(1<<i) > 0 {
			result ^= int(b) << i
		}
	}
	bitLen := func(x int) int {
		n := 0
		for ; x>>n > 0; n++ {
		}
		return n
	}
	len1, len2 := bitLen(result), bitLen(prime)
	if len1 < len2 {
		return byte(result)
	}
	for i := len1 - len2; i >= 0; i-- {
		if result&(1<<(i+len2-1)) > 0 {
			result ^= prime << i
		}
	}
	return byte(result)
}

func TestGF65536MultiplyAndInvert(t *testing.T) {
	f := field.GF65536{}
	for _, e := range []uint32{1, 2, 3, 255, 256, 65535} {
		inv := f.Invert(e)
		buf := make([]byte, 2)
		buf[0] = byte(e)
		buf[1] = byte(e >> 8)
		f.Multiply(buf, inv)
		got := uint32(buf[0]) | uint32(buf[1])<<8
		require.EqualValues(t, 1, got, "e=%d", e)
	}
}

func TestGF65536CoefficientPacking(t *testing.T) {
	f := field.GF65536{}
	vec := make([]byte, f.VectorLength(3))
	f.SetCoefficient(vec, 1, 300)
	require.EqualValues(t, 300, f.Coefficient(vec, 1))
}
