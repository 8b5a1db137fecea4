// Package record implements the recursive record grammar: a
// description pass (names + type tags) followed by a payload pass that
// decodes one value per name according to its tag. Records nest arbitrarily;
// recursion depth is bounded only by the input.
package record

import (
	"fmt"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/errs"
	"github.com/arloliu/casamio/types"
)

// Description is the ordered names/types pair every Record is built from.
// len(Names) == len(Types) == NRecords is an invariant of the format.
type Description struct {
	Names    []string
	Types    []types.Tag
	NRecords int
}

// Record pairs a Description with the decoded name->value mapping. Nested
// records are represented as *Record values inside Fields.
type Record struct {
	Description Description
	Fields      map[string]any
}

// PathResolver joins a measurement-set's own filename with a relative string
// found in a `table`-typed record entry, producing the path to the table it
// names. The core never opens that path; it only resolves it.
type PathResolver func(relative string) string

// ReadDescription consumes a check_type preamble, an nrecords count, and then
// for each entry a name and raw type tag, followed by whatever per-type
// metadata the format writes but this decoder discards.
func ReadDescription(r *bstream.Reader) (Description, error) {
	if _, _, err := r.CheckType(); err != nil {
		return Description{}, err
	}

	n, err := r.Int32()
	if err != nil {
		return Description{}, err
	}
	if n < 0 {
		return Description{}, errs.At(r.Offset(), errs.ErrUnsupported)
	}

	desc := Description{
		Names:    make([]string, 0, n),
		Types:    make([]types.Tag, 0, n),
		NRecords: int(n),
	}

	for i := int32(0); i < n; i++ {
		name, _, err := r.String(types.FourBytes)
		if err != nil {
			return Description{}, err
		}

		rawType, err := r.Int32()
		if err != nil {
			return Description{}, err
		}

		tag, ok := types.FromOrdinal(rawType)
		if !ok {
			return Description{}, errs.At(r.Offset(), fmt.Errorf("%w: type ordinal %d", errs.ErrUnsupported, rawType))
		}

		if err := skipDescriptionMetadata(r, tag); err != nil {
			return Description{}, err
		}

		desc.Names = append(desc.Names, name)
		desc.Types = append(desc.Types, tag)
	}

	return desc, nil
}

// skipDescriptionMetadata advances past the per-type metadata the format
// writes after each (name, type) pair in a record description, per the
// "Extra bytes consumed" table. None of it is retained.
func skipDescriptionMetadata(r *bstream.Reader, tag types.Tag) error {
	switch tag {
	case types.Bool, types.Int, types.UInt, types.Float, types.Double,
		types.Complex, types.DComplex, types.String:
		_, _, err := r.String(types.FourBytes)
		return err

	case types.Table:
		_, err := r.Integer(types.EightBytes, false)
		return err

	case types.Record:
		if _, err := ReadDescription(r); err != nil {
			return err
		}
		_, err := r.Int32()
		return err

	default:
		if tag.IsArray() {
			if _, err := r.Position(types.FourBytes); err != nil {
				return err
			}
			_, err := r.Integer(types.FourBytes, false)
			return err
		}

		// "other": nothing is consumed, warn and continue.
		r.Logger().Warning("casamio: record description entry has unimplemented type tag %q", tag)

		return nil
	}
}

// Read consumes its own check_type preamble, a Description, a trailing i32
// whose purpose is undocumented but required by the format, then decodes one
// value per (name, tag) pair in order.
func Read(r *bstream.Reader, resolve PathResolver) (Record, error) {
	if _, _, err := r.CheckType(); err != nil {
		return Record{}, err
	}

	desc, err := ReadDescription(r)
	if err != nil {
		return Record{}, err
	}

	if _, err := r.Int32(); err != nil { // unknown trailing field
		return Record{}, err
	}

	rec := Record{
		Description: desc,
		Fields:      make(map[string]any, desc.NRecords),
	}

	for i, name := range desc.Names {
		tag := desc.Types[i]

		v, err := readField(r, tag, resolve)
		if err != nil {
			return Record{}, fmt.Errorf("record field %q: %w", name, err)
		}

		rec.Fields[name] = v
	}

	return rec, nil
}

func readField(r *bstream.Reader, tag types.Tag, resolve PathResolver) (any, error) {
	switch tag {
	case types.Bool:
		return r.Boolean()

	case types.Int, types.UInt:
		return r.Integer(types.FourBytes, tag == types.Int)

	case types.Float:
		return r.Float(types.FourBytes)

	case types.Double:
		return r.Float(types.EightBytes)

	case types.Complex:
		// Source behavior: a `complex`-tagged record field is parsed as
		// a single f64, not as a complex pair. Preserved verbatim.
		return r.Float(types.EightBytes)

	case types.DComplex:
		return r.Float128()

	case types.String:
		s, _, err := r.String(types.FourBytes)
		return s, err

	case types.Table:
		name, _, err := r.String(types.FourBytes)
		if err != nil {
			return nil, err
		}
		if resolve != nil {
			return resolve(name), nil
		}

		return name, nil

	case types.ArrayInt, types.ArrayUInt, types.ArrayFloat, types.ArrayDouble,
		types.ArrayComplex, types.ArrayDComplex, types.ArrayStr:
		return r.Array(tag)

	case types.Record:
		nested, err := Read(r, resolve)
		if err != nil {
			return nil, err
		}

		return &nested, nil

	default:
		return nil, errs.At(r.Offset(), fmt.Errorf("%w: record field type %q", errs.ErrUnsupported, tag))
	}
}
