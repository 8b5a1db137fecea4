package stmgr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadBlock(t *testing.T) {
	var w builder
	w.i32(4)
	w.str("blockname")
	w.i32(2)
	w.i32(3)
	w.i32(100)
	w.i32(200)
	w.i32(300)

	r := newReader(t, w.bytes())

	b, err := ReadBlock(r)
	require.NoError(t, err)
	require.Equal(t, int32(4), b.NRows)
	require.Equal(t, "blockname", b.Name)
	require.Equal(t, int32(2), b.Version)
	require.Equal(t, int32(3), b.Size)
	require.Equal(t, []int32{100, 200, 300}, b.Elements)
}
