package vector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/field"
	"github.com/rolandomar/kodo/vector"
)

func TestSetBasisGF256(t *testing.T) {
	v := vector.New(field.GF256{})
	buf := make([]byte, v.Length(4))
	buf[2] = 9 // stale data from a previous use
	v.SetBasis(buf, 2)
	require.Equal(t, []byte{0, 0, 1, 0}, buf)
}

func TestSetBasisBinary(t *testing.T) {
	v := vector.New(field.Binary{})
	buf := make([]byte, v.Length(10))
	v.SetBasis(buf, 9)
	require.EqualValues(t, 1, v.Coefficient(9, buf))
	require.EqualValues(t, 0, v.Coefficient(0, buf))
}
