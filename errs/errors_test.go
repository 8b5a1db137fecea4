package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAt_WrapsOffset(t *testing.T) {
	err := At(42, ErrBadMagic)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadMagic)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, int64(42), de.Offset)
}

func TestAt_NilErrorPassesThrough(t *testing.T) {
	require.NoError(t, At(1, nil))
}
