// Package casamio decodes CASA Measurement Set binary table files: a
// self-describing, tagged binary format used to store radio-astronomy
// observation tables.
//
// # Core Features
//
//   - Full magic/endian handshake, including the big-endian cursor-rewind
//     quirk
//   - Recursive record decoding with arbitrary nesting
//   - Column description and column-set grammars, including storage-manager
//     dispatch by name
//   - Both the literal, bit-for-bit-compatible reproduction of known source
//     bugs and a corrected alternative, selectable per decode
//
// # Basic Usage
//
// Decoding a measurement set from an open file:
//
//	import "github.com/arloliu/casamio"
//
//	f, err := os.Open("obs.ms")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	ms, err := casamio.Open(f, "obs.ms")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ms.NRows, ms.Name, len(ms.TableDescription.Columns))
//
// # Package Structure
//
// This package provides a convenient top-level wrapper around the casams
// package, matching the default decode behavior most callers want. Its
// options cover logging, array-size bounds, and which of the two known
// source-bug behaviors to reproduce; the casams, record, column, and bstream
// packages can also be used directly to decode individual parts of a stream.
package casamio

import (
	"io"

	"github.com/arloliu/casamio/casams"
	"github.com/arloliu/casamio/logx"
)

// Option configures a decode. It is an alias of casams.Option so callers
// never need to import the casams package directly for the common case.
type Option = casams.Option

// MeasurementSet is an alias of casams.MeasurementSet.
type MeasurementSet = casams.MeasurementSet

// WithLogger installs a logx.Logger that receives non-fatal decode
// diagnostics.
func WithLogger(l logx.Logger) Option {
	return casams.WithLogger(l)
}

// WithMaxArrayBytes bounds the number of bytes any single array/position read
// may allocate before refusing. Pass 0 to disable.
func WithMaxArrayBytes(n int64) Option {
	return casams.WithMaxArrayBytes(n)
}

// WithLiteralBooleanDecode selects the bit-for-bit-compatible reproduction of
// the source's boolean() typo when literal is true. Defaults to false
// (corrected decoding).
func WithLiteralBooleanDecode(literal bool) Option {
	return casams.WithLiteralBooleanDecode(literal)
}

// WithStrictOptionFlags selects the corrected bit-test for a column
// description's direct/undefined/fixed_shape flags instead of the source's
// literal comparison. Defaults to false (literal source behavior).
func WithStrictOptionFlags(strict bool) Option {
	return casams.WithStrictOptionFlags(strict)
}

// Open decodes a measurement set from src, performing the full nine-step
// driver. filename is used only to resolve `table`-typed record
// entries and data-manager sidecar paths; it is never opened by this package.
func Open(src io.Reader, filename string, opts ...Option) (*MeasurementSet, error) {
	return casams.Open(src, filename, opts...)
}
