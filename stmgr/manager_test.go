package stmgr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/errs"
)

type builder struct{ b bytes.Buffer }

func (w *builder) i32(v int32) *builder {
	var tmp [4]byte
	u := uint32(v)
	tmp[0], tmp[1], tmp[2], tmp[3] = byte(u), byte(u>>8), byte(u>>16), byte(u>>24)
	w.b.Write(tmp[:])

	return w
}

func (w *builder) str(s string) *builder {
	w.i32(int32(len(s)))
	w.b.WriteString(s)

	return w
}

func (w *builder) headerTriple(typeName string, version int32) *builder {
	w.i32(0)
	w.str(typeName)
	w.i32(version)

	return w
}

func (w *builder) bytes() []byte { return w.b.Bytes() }

func newReader(t *testing.T, payload []byte) *bstream.Reader {
	t.Helper()

	data := append([]byte{0xBE, 0xBE, 0xBE, 0xBE, 0x01}, payload...)
	r, err := bstream.NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	return r
}

func TestLookup(t *testing.T) {
	names := []string{
		"StandardStMan", "IncrementalStMan", "TiledCellStMan",
		"TiledShapeStMan", "TiledColumnStMan", "StManAipsIO",
	}
	for _, name := range names {
		m, err := Lookup(name)
		require.NoError(t, err)
		require.NotNil(t, m)
	}

	_, err := Lookup("NotARealManager")
	require.ErrorIs(t, err, errs.ErrUnknownManager)
}

func TestDecodeStandardStMan(t *testing.T) {
	var w builder
	w.headerTriple("StandardStMan", 1)
	w.str("mgr0")
	w.i32(3)
	w.str("offsets")
	w.i32(1)
	w.i32(2)
	w.i32(10)
	w.i32(20)
	w.i32(5)
	w.str("index")
	w.i32(1)
	w.i32(0)

	r := newReader(t, w.bytes())

	m, err := Lookup("StandardStMan")
	require.NoError(t, err)

	decoded, err := m.Decode(r)
	require.NoError(t, err)

	std, ok := decoded.(Standard)
	require.True(t, ok)
	require.Equal(t, "mgr0", std.Name)
	require.Equal(t, []int32{10, 20}, std.Offset.Elements)
	require.Empty(t, std.IndexMap.Elements)
}

func TestDecodeIncrementalStMan(t *testing.T) {
	var w builder
	w.headerTriple("IncrementalStMan", 1)
	w.str("mgr1")

	r := newReader(t, w.bytes())

	m, err := Lookup("IncrementalStMan")
	require.NoError(t, err)

	decoded, err := m.Decode(r)
	require.NoError(t, err)
	require.Equal(t, Incremental{Name: "mgr1"}, decoded)
}

func TestDecodeUnimplementedManagers(t *testing.T) {
	r := newReader(t, nil)

	for _, name := range []string{"TiledCellStMan", "StManAipsIO"} {
		m, err := Lookup(name)
		require.NoError(t, err)

		_, err = m.Decode(r)
		require.ErrorIs(t, err, errs.ErrManagerNotImplemented)
	}
}

func TestDecodeTiledStubsReadNothing(t *testing.T) {
	r := newReader(t, nil)

	m, err := Lookup("TiledShapeStMan")
	require.NoError(t, err)
	v, err := m.Decode(r)
	require.NoError(t, err)
	require.Equal(t, TiledShape{}, v)

	m, err = Lookup("TiledColumnStMan")
	require.NoError(t, err)
	v, err = m.Decode(r)
	require.NoError(t, err)
	require.Equal(t, TiledColumn{}, v)
}
