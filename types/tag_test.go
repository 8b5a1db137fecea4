package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTag_OrdinalOrderIsPreserved(t *testing.T) {
	require.Equal(t, Tag(0), Bool)
	require.Equal(t, Tag(11), String)
	require.Equal(t, Tag(12), Table)
	require.Equal(t, Tag(24), ArrayStr)
	require.Equal(t, Tag(25), Record)
	require.Equal(t, Tag(26), Other)
}

func TestTag_String(t *testing.T) {
	require.Equal(t, "bool", Bool.String())
	require.Equal(t, "arraydcomplex", ArrayDComplex.String())
	require.Equal(t, "unknown", Tag(200).String())
}

func TestFromOrdinal(t *testing.T) {
	tag, ok := FromOrdinal(5)
	require.True(t, ok)
	require.Equal(t, Int, tag)

	_, ok = FromOrdinal(-1)
	require.False(t, ok)

	_, ok = FromOrdinal(99)
	require.False(t, ok)
}

func TestTag_IsArray(t *testing.T) {
	require.True(t, ArrayInt.IsArray())
	require.False(t, Int.IsArray())
}

func TestFixedSize(t *testing.T) {
	size, ok := FixedSize(Double)
	require.True(t, ok)
	require.Equal(t, EightBytes, size)

	_, ok = FixedSize(String)
	require.False(t, ok)
}
