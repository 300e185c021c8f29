package field

import "github.com/templexxx/xorsimd"

// Binary implements GF(2). Addition and subtraction are XOR; the only
// non-zero scalar is 1, so multiply is either a no-op or a zeroing, and
// multiply_subtract with scalar 1 degenerates to subtract. The decoder is
// expected to recognize IsBinary and call Subtract directly rather than
// going through MultiplySubtract, per the design note in spec.md (§9,
// "binary-field specialization") — MultiplySubtract is kept correct here
// regardless, for callers that don't special-case it.
type Binary struct{}

var _ Field = Binary{}

func (Binary) Name() string { return "GF(2)" }

func (Binary) IsBinary() bool { return true }

func (Binary) ElementWidth() int { return 1 }

// Add XORs src into dst using a SIMD-dispatching XOR routine — the hot path
// for the binary field, exercised on every coded-symbol ingest.
func (Binary) Add(dst, src []byte) {
	xorsimd.Bytes(dst, dst, src)
}

func (Binary) Subtract(dst, src []byte) {
	xorsimd.Bytes(dst, dst, src)
}

func (Binary) Multiply(dst []byte, scalar uint32) {
	if scalar == 0 {
		for i := range dst {
			dst[i] = 0
		}
	}
	// scalar == 1: identity, nothing to do.
}

func (Binary) MultiplySubtract(dst, src []byte, scalar uint32) {
	if scalar == 0 {
		return
	}
	xorsimd.Bytes(dst, dst, src)
}

func (Binary) Invert(e uint32) uint32 {
	if e != 1 {
		panic("field: invert of non-unit element in GF(2)")
	}
	return 1
}

// VectorLength packs 8 coefficients per byte.
func (Binary) VectorLength(coefficients int) int {
	return (coefficients + 7) / 8
}

func (Binary) Coefficient(vec []byte, i int) uint32 {
	return uint32((vec[i/8] >> (uint(i) % 8)) & 1)
}

func (Binary) SetCoefficient(vec []byte, i int, value uint32) {
	mask := byte(1) << (uint(i) % 8)
	if value&1 != 0 {
		vec[i/8] |= mask
	} else {
		vec[i/8] &^= mask
	}
}
