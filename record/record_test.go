package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/types"
)

// builder assembles little-endian test fixtures matching the record grammar.
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
	w.i32(0) // unknown
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

func TestReadDescription_ScalarTypes(t *testing.T) {
	var w builder
	w.headerTriple("RecordDesc", 1)
	w.i32(1) // one entry
	w.str("a")
	w.i32(int32(types.Int))
	w.str("") // discarded metadata string for Int

	r := newReader(t, w.bytes())

	desc, err := ReadDescription(r)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, desc.Names)
	require.Equal(t, []types.Tag{types.Int}, desc.Types)
	require.Equal(t, 1, desc.NRecords)
}

func TestRead_ScalarIntField(t *testing.T) {
	var w builder
	w.headerTriple("Record", 1) // Read's own check_type
	w.headerTriple("RecordDesc", 1)
	w.i32(1)
	w.str("a")
	w.i32(int32(types.Int))
	w.str("")
	w.i32(0)  // trailing unknown field
	w.i32(42) // value of field "a"

	r := newReader(t, w.bytes())

	rec, err := Read(r, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, rec.Description.Names)

	v, err := asInt64(rec.Fields["a"])
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestRead_TableFieldResolvesPath(t *testing.T) {
	var w builder
	w.headerTriple("Record", 1)
	w.headerTriple("RecordDesc", 1)
	w.i32(1)
	w.str("sub")
	w.i32(int32(types.Table))
	w.i32(0) // Table metadata: 8-byte integer, but Integer(8,false) reads a u64 -> 8 bytes
	w.i32(0)
	w.i32(0) // trailing unknown field
	w.str("sub.table")

	r := newReader(t, w.bytes())

	resolved := false
	resolve := func(relative string) string {
		resolved = true
		require.Equal(t, "sub.table", relative)

		return "/abs/sub.table"
	}

	rec, err := Read(r, resolve)
	require.NoError(t, err)
	require.True(t, resolved)
	require.Equal(t, "/abs/sub.table", rec.Fields["sub"])
}

func TestRead_NestedRecord(t *testing.T) {
	var inner builder
	inner.headerTriple("Record", 1)
	inner.headerTriple("RecordDesc", 1)
	inner.i32(1)
	inner.str("x")
	inner.i32(int32(types.Int))
	inner.str("")
	inner.i32(0)
	inner.i32(7)

	var outer builder
	outer.headerTriple("Record", 1)
	outer.headerTriple("RecordDesc", 1)
	outer.i32(1)
	outer.str("nested")
	outer.i32(int32(types.Record))
	// skipDescriptionMetadata for Record: nested description + i32
	outer.headerTriple("RecordDesc", 1)
	outer.i32(0) // zero-entry nested description for the metadata skip
	outer.i32(0)
	outer.i32(0) // trailing unknown
	outer.b.Write(inner.bytes())

	r := newReader(t, outer.bytes())

	rec, err := Read(r, nil)
	require.NoError(t, err)

	nested, ok := rec.Fields["nested"].(*Record)
	require.True(t, ok)

	v, err := asInt64(nested.Fields["x"])
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	default:
		return 0, errors.New("unexpected field type")
	}
}
