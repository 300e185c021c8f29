package field

import "sync"

// GF256 implements GF(2^8) with the irreducible polynomial x^8 + x^4 + x^3 +
// x^2 + 1 (0x11d) and generator 2 — the same tables as the teacher's
// util/gf_arithmetic.go, extended here with multiply_subtract and the
// byte-per-coefficient packing the decoder expects from this field width.
type GF256 struct{}

var _ Field = GF256{}

const gf256Prime = 0x11d

var (
	gf256Exp  [512]byte
	gf256Log  [256]byte
	gf256Once sync.Once
)

func gf256InitTables() {
	gf256Once.Do(func() {
		x := byte(1)
		for i := 0; i < 255; i++ {
			gf256Exp[i] = x
			gf256Log[x] = byte(i)
			x = gf256MulCostly(x, 2)
		}
		for i := 255; i < 512; i++ {
			gf256Exp[i] = gf256Exp[i-255]
		}
	})
}

func gf256BitLength(a int) int {
	n := 0
	for ; a>>n > 0; n++ {
	}
	return n
}

// gf256MulCostly multiplies without tables; used only to build the tables.
func gf256MulCostly(a, b byte) byte {
	result := 0
	for i := 0; a>>i > 0; i++ {
		if a&(1<<i) > 0 {
			result ^= int(b) << i
		}
	}

	len1, len2 := gf256BitLength(result), gf256BitLength(gf256Prime)
	if len1 < len2 {
		return byte(result)
	}
	for i := len1 - len2; i >= 0; i-- {
		if result&(1<<(i+len2-1)) > 0 {
			result ^= gf256Prime << i
		}
	}
	return byte(result)
}

func gf256Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	gf256InitTables()
	return gf256Exp[int(gf256Log[a])+int(gf256Log[b])]
}

func gf256Div(a, b byte) byte {
	if b == 0 {
		panic("field: division by zero in GF(2^8)")
	}
	if a == 0 {
		return 0
	}
	gf256InitTables()
	return gf256Exp[int(gf256Log[a])+255-int(gf256Log[b])]
}

func (GF256) Name() string { return "GF(2^8)" }

func (GF256) IsBinary() bool { return false }

func (GF256) ElementWidth() int { return 8 }

func (GF256) Add(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func (GF256) Subtract(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func (GF256) Multiply(dst []byte, scalar uint32) {
	s := byte(scalar)
	for i := range dst {
		dst[i] = gf256Mul(dst[i], s)
	}
}

func (GF256) MultiplySubtract(dst, src []byte, scalar uint32) {
	s := byte(scalar)
	for i := range dst {
		dst[i] ^= gf256Mul(src[i], s)
	}
}

func (GF256) Invert(e uint32) uint32 {
	return uint32(gf256Div(1, byte(e)))
}

// VectorLength is one byte per coefficient.
func (GF256) VectorLength(coefficients int) int {
	return coefficients
}

func (GF256) Coefficient(vec []byte, i int) uint32 {
	return uint32(vec[i])
}

func (GF256) SetCoefficient(vec []byte, i int, value uint32) {
	vec[i] = byte(value)
}
