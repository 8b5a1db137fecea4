package column

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/types"
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

func (w *builder) emptyRecord() *builder {
	w.headerTriple("Record", 1)
	w.headerTriple("RecordDesc", 1)
	w.i32(0) // zero description entries
	w.i32(0) // trailing unknown field

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

func TestReadDescription_Scalar(t *testing.T) {
	var w builder
	w.i32(0)
	w.str("ScalarColumnDesc")
	w.i32(1)
	w.str("col1")
	w.str("a comment")
	w.str("StandardStMan")
	w.str("grp")
	w.i32(int32(types.Int))
	w.i32(0) // option: no flags set
	w.i32(0) // ndims
	w.i32(0) // max_length
	w.emptyRecord()
	w.i32(0) // "random read"
	w.i32(0) // default value (Int is fixed-size 4 bytes)

	r := newReader(t, w.bytes())

	d, err := ReadDescription(r, nil, false)
	require.NoError(t, err)
	require.Equal(t, "col1", d.Name)
	require.Equal(t, "ScalarColumnDesc", d.Type)
	require.Equal(t, types.Int, d.ValueType)
	require.Equal(t, int32(0), d.NDims)
	require.False(t, d.Direct)
	require.False(t, d.Undefined)
	require.False(t, d.FixedShape)
}

func TestReadDescription_ManagerTypeShapeToCellSubstitution(t *testing.T) {
	var w builder
	w.i32(0)
	w.str("ScalarColumnDesc")
	w.i32(1)
	w.str("col1")
	w.str("")
	w.str("TiledShapeStMan") // contains "Shape"
	w.str("grp")
	w.i32(int32(types.Int))
	w.i32(0)
	w.i32(0)
	w.i32(0)
	w.emptyRecord()
	w.i32(0)
	w.i32(0)

	r := newReader(t, w.bytes())

	d, err := ReadDescription(r, nil, false)
	require.NoError(t, err)
	require.Equal(t, "TiledCellStMan", d.ManagerType)
}

func TestReadDescription_RejectsUnknownClass(t *testing.T) {
	var w builder
	w.i32(0)
	w.str("SomethingElseDesc")
	w.i32(1)

	r := newReader(t, w.bytes())

	_, err := ReadDescription(r, nil, false)
	require.Error(t, err)
}

func TestDecodeOptionFlags(t *testing.T) {
	t.Run("literal: option >> k compared to 1", func(t *testing.T) {
		direct, undefined, fixedShape := decodeOptionFlags(1<<3, false)
		require.True(t, direct)
		require.False(t, undefined)
		require.False(t, fixedShape)

		direct, _, _ = decodeOptionFlags((1<<3)|(1<<1), false)
		require.True(t, direct, "literal path: (10 >> 3) == 1")
	})

	t.Run("strict: proper bit test", func(t *testing.T) {
		direct, undefined, fixedShape := decodeOptionFlags((1<<3)|(1<<1), true)
		require.True(t, direct)
		require.False(t, undefined)
		require.True(t, fixedShape)
	})
}
