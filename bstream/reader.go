// Package bstream implements the low-level, endian-aware typed binary reader
// that every higher-level grammar (record, column, stmgr, casams) is built on
// top of. It owns a single forward-only cursor over a byte source and
// performs the magic/endian handshake every measurement-set stream begins
// with.
package bstream

import (
	"io"
	"math"

	"github.com/arloliu/casamio/endian"
	"github.com/arloliu/casamio/errs"
	"github.com/arloliu/casamio/logx"
	"github.com/arloliu/casamio/types"
)

// DefaultMaxArrayBytes bounds how many bytes a single Array/Position call will
// allocate for before refusing with errs.ErrArrayTooLarge. This defends
// against a corrupt or adversarial size field driving an out-of-memory
// allocation; see WithMaxArrayBytes to change it. Arrays of string elements
// are not checked against this bound.
const DefaultMaxArrayBytes = 256 * 1024 * 1024 // 256 MiB

// Reader is a single-owner, forward-only cursor over a byte source. It is not
// safe for concurrent use: nested calls (records within records, keywords
// within columns) all advance the same cursor.
type Reader struct {
	src     io.Reader
	off     int64
	pending []byte
	engine  endian.EndianEngine

	literalBoolean bool
	maxArrayBytes  int64
	logger         logx.Logger
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithLogger installs a logx.Logger that receives non-fatal decode warnings
// (string-decode fallback, unfinished storage managers, unknown "other" tags).
func WithLogger(l logx.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithMaxArrayBytes overrides DefaultMaxArrayBytes. Pass 0 to disable the bound
// entirely (not recommended for untrusted input).
func WithMaxArrayBytes(n int64) Option {
	return func(r *Reader) { r.maxArrayBytes = n }
}

// WithLiteralBooleanDecode selects the bit-for-bit-compatible reproduction of
// the source's Boolean() typo (always returns false) instead of the corrected
// `== 0x01` comparison.
func WithLiteralBooleanDecode(literal bool) Option {
	return func(r *Reader) { r.literalBoolean = literal }
}

// NewReader wraps src and performs the magic/endian handshake:
//
//  1. Read 4 bytes; fail with errs.ErrBadMagic if they don't match types.Magic.
//  2. Read 1 endian marker byte. 0x00 selects big-endian and rewinds the
//     cursor to offset 4 (the marker byte is pushed back so it is re-read as
//     the first byte of the next field); any other value selects
//     little-endian and leaves the cursor at offset 5.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	r := &Reader{
		src:           src,
		engine:        endian.GetLittleEndianEngine(),
		maxArrayBytes: DefaultMaxArrayBytes,
		logger:        logx.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}

	magic, err := r.read(types.FourBytes)
	if err != nil {
		return nil, errs.At(r.off, err)
	}
	if [4]byte(magic) != types.Magic {
		return nil, errs.At(r.off, errs.ErrBadMagic)
	}

	marker, err := r.read(types.OneByte)
	if err != nil {
		return nil, errs.At(r.off, err)
	}

	if marker[0] == 0x00 {
		r.engine = endian.GetBigEndianEngine()
		// The marker byte is simultaneously the high byte of the next
		// big-endian field; rewind the logical cursor to offset 4 and push
		// the byte back so it is redelivered.
		r.pending = append([]byte{marker[0]}, r.pending...)
		r.off = types.FourBytes
	} else {
		r.engine = endian.GetLittleEndianEngine()
	}

	return r, nil
}

// Raw reads n raw bytes without interpreting them, advancing the cursor. It
// is used for framing fields the format requires to be present but does not
// give independent meaning to (e.g. the column set's trailing magic+length).
func (r *Reader) Raw(n int) ([]byte, error) {
	b, err := r.read(n)
	if err != nil {
		return nil, errs.At(r.off, err)
	}

	return b, nil
}

// Offset returns the current logical byte position of the cursor.
func (r *Reader) Offset() int64 { return r.off }

// Engine returns the endian engine negotiated during the handshake. It does
// not change for the remainder of the decode.
func (r *Reader) Engine() endian.EndianEngine { return r.engine }

// Logger returns the logger installed via WithLogger (or NopLogger).
func (r *Reader) Logger() logx.Logger { return r.logger }

// read consumes exactly n bytes, first draining any pushed-back bytes, then
// reading the remainder from the underlying source. The logical offset always
// advances by n regardless of where the bytes came from.
func (r *Reader) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	copied := 0
	if len(r.pending) > 0 {
		copied = copy(buf, r.pending)
		r.pending = r.pending[copied:]
	}

	if copied < n {
		if _, err := io.ReadFull(r.src, buf[copied:]); err != nil {
			return nil, errs.ErrShortRead
		}
	}

	r.off += int64(n)

	return buf, nil
}

// Integer reads a size-byte two's-complement integer (size one of 1, 2, 4, 8)
// and sign-extends it into an int64 if signed, or zero-extends it if not.
func (r *Reader) Integer(size int, signed bool) (int64, error) {
	b, err := r.read(size)
	if err != nil {
		return 0, errs.At(r.off, err)
	}

	switch size {
	case types.OneByte:
		if signed {
			return int64(int8(b[0])), nil
		}

		return int64(b[0]), nil
	case types.TwoBytes:
		u := r.engine.Uint16(b)
		if signed {
			return int64(int16(u)), nil
		}

		return int64(u), nil
	case types.FourBytes:
		u := r.engine.Uint32(b)
		if signed {
			return int64(int32(u)), nil
		}

		return int64(u), nil
	case types.EightBytes:
		u := r.engine.Uint64(b)
		if signed {
			return int64(u), nil
		}

		return int64(u), nil
	default:
		return 0, errs.At(r.off, errs.ErrUnsupported)
	}
}

// Int32 is the common case of Integer(4, signed=true), used throughout the
// record and column grammars for counts, versions, and ordinals.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Integer(types.FourBytes, true)
	return int32(v), err
}

// UInt32 is Integer(4, signed=false).
func (r *Reader) UInt32() (uint32, error) {
	v, err := r.Integer(types.FourBytes, false)
	return uint32(v), err
}

// Float reads a size-byte IEEE-754 float (size 4 or 8) as a float64.
func (r *Reader) Float(size int) (float64, error) {
	b, err := r.read(size)
	if err != nil {
		return 0, errs.At(r.off, err)
	}

	switch size {
	case types.FourBytes:
		return float64(math.Float32frombits(r.engine.Uint32(b))), nil
	case types.EightBytes:
		return math.Float64frombits(r.engine.Uint64(b)), nil
	default:
		return 0, errs.At(r.off, errs.ErrUnsupported)
	}
}

// Float128 is the raw, bit-exact representation of a 128-bit extended float.
// Go has no native float128; implementations without one must preserve the
// raw 16 bytes and expose them as a pair of doubles.
type Float128 struct {
	Hi float64
	Lo float64
}

// Float128 reads 16 bytes and splits them into two float64 halves in stream
// order, preserving the bits without attempting quad-precision arithmetic.
func (r *Reader) Float128() (Float128, error) {
	b, err := r.read(types.SixteenBytes)
	if err != nil {
		return Float128{}, errs.At(r.off, err)
	}

	return Float128{
		Hi: math.Float64frombits(r.engine.Uint64(b[0:8])),
		Lo: math.Float64frombits(r.engine.Uint64(b[8:16])),
	}, nil
}

// Complex reads two consecutive floats of half the given size (size 8 yields
// two float32 components; size 16 yields two float64 components) and returns
// a complex128.
func (r *Reader) Complex(size int) (complex128, error) {
	half := types.FourBytes
	if size == types.SixteenBytes {
		half = types.EightBytes
	}

	re, err := r.Float(half)
	if err != nil {
		return 0, err
	}

	im, err := r.Float(half)
	if err != nil {
		return 0, err
	}

	return complex(re, im), nil
}

// String reads a lenSize-byte little/big-endian length prefix followed by
// that many raw bytes, strips embedded NULs, and decodes as ASCII. If the
// bytes are not valid ASCII, the raw bytes are returned instead, a warning is
// logged, and ok is false.
func (r *Reader) String(lenSize int) (s string, ok bool, err error) {
	length, err := r.Integer(lenSize, true)
	if err != nil {
		return "", false, err
	}
	if length < 0 {
		return "", false, errs.At(r.off, errs.ErrUnsupported)
	}

	raw, err := r.read(int(length))
	if err != nil {
		return "", false, errs.At(r.off, err)
	}

	stripped := stripNUL(raw)
	if !isASCII(stripped) {
		r.logger.Warning("casamio: string at offset %d is not ASCII, returning raw bytes", r.off)

		return string(stripped), false, nil
	}

	return string(stripped), true, nil
}

func stripNUL(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != 0 {
			out = append(out, c)
		}
	}

	return out
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return false
		}
	}

	return true
}

// Boolean reads one byte and interprets it as a boolean.
//
// When configured with WithLiteralBooleanDecode(true), this reproduces the
// source's `b"\0x01"` typo bit-for-bit: the comparison can never succeed, so
// the literal path always returns false regardless of the byte read. The
// default, corrected path treats 0x01 as true and anything else as false.
func (r *Reader) Boolean() (bool, error) {
	b, err := r.read(types.OneByte)
	if err != nil {
		return false, errs.At(r.off, err)
	}

	if r.literalBoolean {
		return false, nil
	}

	return b[0] == 0x01, nil
}

// Header reads the framing triple that precedes every composite entity:
// an unknown i32, a length-prefixed type name, and an i32 version.
func (r *Reader) Header() (typeName string, version int32, err error) {
	if _, err = r.Int32(); err != nil { // unknown
		return "", 0, err
	}

	typeName, _, err = r.String(types.FourBytes)
	if err != nil {
		return "", 0, err
	}

	version, err = r.Int32()
	if err != nil {
		return "", 0, err
	}

	return typeName, version, nil
}

// CheckType is an alias for Header, matching the name used by the array and
// position primitives.
func (r *Reader) CheckType() (typeName string, version int32, err error) {
	return r.Header()
}

// Position reads a check_type preamble, a length, then that many size-byte
// signed integers, returning them widened to int64.
func (r *Reader) Position(size int) ([]int64, error) {
	if _, _, err := r.CheckType(); err != nil {
		return nil, err
	}

	length, err := r.Integer(size, true)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, errs.At(r.off, errs.ErrInvalidShape)
	}

	if err := r.checkBudget(length * int64(size)); err != nil {
		return nil, err
	}

	out := make([]int64, length)
	for i := range out {
		out[i], err = r.Integer(size, true)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *Reader) checkBudget(byteLen int64) error {
	if r.maxArrayBytes > 0 && byteLen > r.maxArrayBytes {
		return errs.At(r.off, errs.ErrArrayTooLarge)
	}

	return nil
}
