package factory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/factory"
	"github.com/rolandomar/kodo/field"
)

func TestPlainBuildReturnsIndependentCoders(t *testing.T) {
	f := factory.NewPlain(field.Binary{}, 4, 8)
	a := f.Build(3, 4)
	b := f.Build(3, 4)

	a.DecodeRaw([]byte("ABCD"), 0)
	require.False(t, b.Uncoded(0))
}

func TestPlainBuildPanicsOverCapacity(t *testing.T) {
	f := factory.NewPlain(field.Binary{}, 4, 8)
	require.Panics(t, func() { f.Build(5, 4) })
	require.Panics(t, func() { f.Build(4, 9) })
}

func TestPooledBuildReleaseRoundTrip(t *testing.T) {
	f := factory.NewPooled(field.Binary{}, 4, 8)
	c := f.Build(3, 4)
	c.DecodeRaw([]byte("ABCD"), 0)
	require.Equal(t, 1, c.Rank())
	f.Release(c)

	c2 := f.Build(3, 4)
	require.Equal(t, 0, c2.Rank())
	require.False(t, c2.IsComplete())
}
