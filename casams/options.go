package casams

import (
	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/logx"
)

// config collects the functional options Open accepts.
type config struct {
	logger         logx.Logger
	maxArrayBytes  int64
	literalBoolean bool
	strictFlags    bool
}

// Option configures Open.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger:        logx.NopLogger{},
		maxArrayBytes: bstream.DefaultMaxArrayBytes,
	}
}

// WithLogger installs a logx.Logger that receives non-fatal decode
// diagnostics. Defaults to logx.NopLogger.
func WithLogger(l logx.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxArrayBytes bounds the number of bytes any single array/position read
// may allocate before refusing with errs.ErrArrayTooLarge. Pass 0 to disable.
func WithMaxArrayBytes(n int64) Option {
	return func(c *config) { c.maxArrayBytes = n }
}

// WithLiteralBooleanDecode selects the bit-for-bit-compatible reproduction of
// the source's Boolean() typo: when true, every Boolean() read returns false
// regardless of the byte on disk. Defaults to false (corrected decoding:
// byte 0x01 is true).
func WithLiteralBooleanDecode(literal bool) Option {
	return func(c *config) { c.literalBoolean = literal }
}

// WithStrictOptionFlags selects the corrected bit-test for a column
// description's direct/undefined/fixed_shape flags (`(option >> k) & 1 ==
// 1`) instead of the source's literal `option >> k == 1` comparison.
// Defaults to false (literal source behavior).
func WithStrictOptionFlags(strict bool) Option {
	return func(c *config) { c.strictFlags = strict }
}
