package casams

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casamio/bstream"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, bstream.DefaultMaxArrayBytes, cfg.maxArrayBytes)
	require.False(t, cfg.literalBoolean)
	require.False(t, cfg.strictFlags)
}

func TestOptions_Override(t *testing.T) {
	cfg := defaultConfig()
	WithMaxArrayBytes(123)(&cfg)
	WithLiteralBooleanDecode(true)(&cfg)
	WithStrictOptionFlags(true)(&cfg)

	require.Equal(t, int64(123), cfg.maxArrayBytes)
	require.True(t, cfg.literalBoolean)
	require.True(t, cfg.strictFlags)
}
