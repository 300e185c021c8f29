// Package field implements the finite-field arithmetic primitives that the
// linear block decoder treats as an external collaborator (add, subtract,
// multiply, multiply_subtract, invert, is_binary) together with the
// per-field coefficient packing that the coefficient vector view delegates
// to.
package field

// Field is the arithmetic interface consumed by the decoder and the
// coefficient vector view. Every operation works directly on byte buffers;
// how many field elements those bytes encode is implied by the buffer
// length and ElementWidth.
type Field interface {
	// Name identifies the field, e.g. "GF(2)", "GF(2^8)", "GF(2^16)".
	Name() string

	// IsBinary reports whether this is GF(2). The decoder branches on this
	// to take the XOR-only fast path instead of a scalar multiply.
	IsBinary() bool

	// ElementWidth is the number of bits occupied by one field element when
	// packed into a coefficient vector.
	ElementWidth() int

	// Add computes dst += src elementwise, in place.
	Add(dst, src []byte)

	// Subtract computes dst -= src elementwise, in place.
	Subtract(dst, src []byte)

	// Multiply computes dst *= scalar elementwise, in place.
	Multiply(dst []byte, scalar uint32)

	// MultiplySubtract computes dst -= scalar*src elementwise, in place.
	MultiplySubtract(dst, src []byte, scalar uint32)

	// Invert returns the multiplicative inverse of e. Precondition: e != 0.
	Invert(e uint32) uint32

	// VectorLength returns the packed byte length of a coefficient vector
	// holding the given number of coefficients.
	VectorLength(coefficients int) int

	// Coefficient extracts the coefficient at index i from a packed vector.
	Coefficient(vec []byte, i int) uint32

	// SetCoefficient stores value as the coefficient at index i in a packed
	// vector.
	SetCoefficient(vec []byte, i int, value uint32)
}
