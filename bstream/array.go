package bstream

import (
	"github.com/arloliu/casamio/errs"
	"github.com/arloliu/casamio/internal/scratch"
	"github.com/arloliu/casamio/types"
)

// Array is the decoded result of the Array primitive: a flat, row-major
// payload plus the declared shape it should be reshaped to. Data holds one
// of []bool, []byte, []int16, []uint16, []int32, []uint32, []float32,
// []float64, []complex64, []complex128, or []string depending on the
// element Tag.
type Array struct {
	Tag   types.Tag
	Shape []int64
	Data  any
}

// itemSize returns the on-disk byte width of one element of a fixed-width
// array tag (the scalar variant each array* tag carries elements of).
func itemSize(elem types.Tag) (int, bool) {
	switch elem {
	case types.Bool, types.UChar:
		return types.OneByte, true
	case types.Short, types.UShort:
		return types.TwoBytes, true
	case types.Int, types.UInt, types.Float:
		return types.FourBytes, true
	case types.Double:
		return types.EightBytes, true
	case types.Complex:
		return types.EightBytes, true
	case types.DComplex:
		return types.SixteenBytes, true
	default:
		return 0, false
	}
}

// Array reads a block preamble, dimension count, shape, element count, and
// then the elements themselves, per the element tag:
//
//   - string: size length-prefixed strings
//   - bool: ceil(size/8)*8 bits, little-endian bit order, truncated to size
//   - otherwise: size*itemsize raw bytes reinterpreted as the element type
func (r *Reader) Array(elem types.Tag) (Array, error) {
	if _, _, err := r.CheckType(); err != nil {
		return Array{}, err
	}

	ndim, err := r.Int32()
	if err != nil {
		return Array{}, err
	}
	if ndim < 0 {
		return Array{}, errs.At(r.off, errs.ErrInvalidShape)
	}

	shape := make([]int64, ndim)
	for i := range shape {
		v, err := r.Int32()
		if err != nil {
			return Array{}, err
		}
		shape[i] = int64(v)
	}

	size, err := r.Int32()
	if err != nil {
		return Array{}, err
	}
	if size < 0 {
		return Array{}, errs.At(r.off, errs.ErrInvalidShape)
	}

	var data any

	switch elem {
	case types.String, types.ArrayStr:
		strs := make([]string, size)
		for i := range strs {
			s, _, err := r.String(types.FourBytes)
			if err != nil {
				return Array{}, err
			}
			strs[i] = s
		}
		data = strs

	case types.Bool, types.ArrayBool:
		if err := r.checkBudget((int64(size) + 7) / 8); err != nil {
			return Array{}, err
		}
		data, err = r.readBitPackedBool(size)
		if err != nil {
			return Array{}, err
		}

	default:
		base := baseElementTag(elem)
		width, ok := itemSize(base)
		if !ok {
			return Array{}, errs.At(r.off, errs.ErrUnsupported)
		}
		if err := r.checkBudget(int64(size) * int64(width)); err != nil {
			return Array{}, err
		}
		data, err = r.readTypedElements(base, int(size))
		if err != nil {
			return Array{}, err
		}
	}

	return Array{Tag: elem, Shape: shape, Data: data}, nil
}

// baseElementTag maps an array* tag to the scalar tag its elements carry
// (e.g. ArrayInt -> Int); a bare scalar tag maps to itself so Array can also
// be called with the element type directly, as the record grammar does.
func baseElementTag(t types.Tag) types.Tag {
	switch t {
	case types.ArrayInt:
		return types.Int
	case types.ArrayUInt:
		return types.UInt
	case types.ArrayFloat:
		return types.Float
	case types.ArrayDouble:
		return types.Double
	case types.ArrayComplex:
		return types.Complex
	case types.ArrayDComplex:
		return types.DComplex
	case types.ArrayShort:
		return types.Short
	case types.ArrayUShort:
		return types.UShort
	case types.ArrayChar, types.ArrayUChar:
		return types.UChar
	default:
		return t
	}
}

func (r *Reader) readBitPackedBool(size int32) ([]bool, error) {
	nbytes := int((int64(size) + 7) / 8)
	buf := scratch.Get(nbytes)
	defer scratch.Put(buf)

	raw, err := r.read(nbytes)
	if err != nil {
		return nil, err
	}
	copy(buf, raw)

	out := make([]bool, size)
	for i := 0; i < int(size); i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8) // little-endian bit order within each byte
		out[i] = (buf[byteIdx]>>bitIdx)&0x01 != 0
	}

	return out, nil
}

func (r *Reader) readTypedElements(base types.Tag, size int) (any, error) {
	switch base {
	case types.Int:
		out := make([]int32, size)
		for i := range out {
			v, err := r.Int32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil

	case types.UInt:
		out := make([]uint32, size)
		for i := range out {
			v, err := r.UInt32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil

	case types.Short:
		out := make([]int16, size)
		for i := range out {
			v, err := r.Integer(types.TwoBytes, true)
			if err != nil {
				return nil, err
			}
			out[i] = int16(v)
		}

		return out, nil

	case types.UShort:
		out := make([]uint16, size)
		for i := range out {
			v, err := r.Integer(types.TwoBytes, false)
			if err != nil {
				return nil, err
			}
			out[i] = uint16(v)
		}

		return out, nil

	case types.UChar:
		out := make([]byte, size)
		for i := range out {
			v, err := r.Integer(types.OneByte, false)
			if err != nil {
				return nil, err
			}
			out[i] = byte(v)
		}

		return out, nil

	case types.Float:
		out := make([]float32, size)
		for i := range out {
			v, err := r.Float(types.FourBytes)
			if err != nil {
				return nil, err
			}
			out[i] = float32(v)
		}

		return out, nil

	case types.Double:
		out := make([]float64, size)
		for i := range out {
			v, err := r.Float(types.EightBytes)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil

	case types.Complex:
		out := make([]complex64, size)
		for i := range out {
			v, err := r.Complex(types.EightBytes)
			if err != nil {
				return nil, err
			}
			out[i] = complex64(v)
		}

		return out, nil

	case types.DComplex:
		out := make([]complex128, size)
		for i := range out {
			v, err := r.Complex(types.SixteenBytes)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil

	default:
		return nil, errs.At(r.off, errs.ErrUnsupported)
	}
}
