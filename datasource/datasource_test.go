package datasource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolandomar/kodo/coder"
	"github.com/rolandomar/kodo/datasource"
	"github.com/rolandomar/kodo/field"
)

func TestMemoryReadPopulatesCoder(t *testing.T) {
	src := datasource.NewMemory([]byte("ABCDEFGHIJKL"))
	require.Equal(t, 12, src.Size())

	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)
	require.NoError(t, src.Read(c, 0, 12))

	out := make([]byte, 12)
	c.CopySymbols(out)
	require.Equal(t, "ABCDEFGHIJKL", string(out))
}

func TestMemoryReadZeroPadsTrailingShortfall(t *testing.T) {
	src := datasource.NewMemory([]byte("ABCDE"))
	c := coder.New(field.Binary{}, 2, 4)
	c.Initialize(2, 4)
	require.NoError(t, src.Read(c, 0, 5))

	out := make([]byte, 8)
	c.CopySymbols(out)
	require.Equal(t, "ABCDE\x00\x00\x00", string(out))
}

func TestFileReadPopulatesCoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.bin")
	require.NoError(t, os.WriteFile(path, []byte("ABCDEFGHIJKL"), 0o644))

	src, err := datasource.OpenFile(path)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 12, src.Size())

	c := coder.New(field.Binary{}, 3, 4)
	c.Initialize(3, 4)
	require.NoError(t, src.Read(c, 4, 8))

	out := make([]byte, 8)
	c.CopySymbols(out)
	require.Equal(t, "EFGHIJKL", string(out))
}
