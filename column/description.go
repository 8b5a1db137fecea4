// Package column implements the column-description and column-set grammars:
// per-column metadata, and the top-level table layout that binds column
// descriptions to storage-manager sequence numbers.
package column

import (
	"fmt"
	"strings"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/errs"
	"github.com/arloliu/casamio/record"
	"github.com/arloliu/casamio/types"
)

// Recognized column-description classes. A Description's Type
// must start with one of these.
const (
	ClassScalar       = "ScalarColumnDesc"
	ClassScalarRecord = "ScalarRecordColumnDesc"
	ClassArray        = "ArrayColumnDesc"
)

// Description is the per-column metadata entity.
type Description struct {
	Name         string
	Type         string
	Comment      string
	ManagerType  string
	ManagerGroup string
	ValueType    types.Tag
	Option       int32
	Direct       bool
	Undefined    bool
	FixedShape   bool
	NDims        int32
	Shape        []int64 // nil when NDims == 0
	MaxLength    int32
	Keywords     record.Record
}

// ReadDescription implements the column-description grammar step-for-step.
//
// strictFlags selects between the literal source behavior for the
// direct/undefined/fixed_shape bits (`option >> k == 1`, true only when
// 2^k <= option < 2^(k+1)) and the corrected bit-test (`(option >> k) & 1 ==
// 1`). Pass false to reproduce the source bit-for-bit.
func ReadDescription(r *bstream.Reader, resolve record.PathResolver, strictFlags bool) (Description, error) {
	var d Description

	if _, err := r.Int32(); err != nil { // undocumented framing field
		return Description{}, err
	}

	typeName, _, err := r.String(types.FourBytes)
	if err != nil {
		return Description{}, err
	}

	version, err := r.Int32()
	if err != nil {
		return Description{}, err
	}

	if !hasValidClass(typeName) || version != 1 {
		return Description{}, errs.At(r.Offset(),
			fmt.Errorf("%w: column description class %q version %d", errs.ErrUnsupported, typeName, version))
	}
	d.Type = typeName

	if d.Name, _, err = r.String(types.FourBytes); err != nil {
		return Description{}, err
	}
	if d.Comment, _, err = r.String(types.FourBytes); err != nil {
		return Description{}, err
	}

	managerType, _, err := r.String(types.FourBytes)
	if err != nil {
		return Description{}, err
	}
	// Verbatim textual substitution from the source: "Shape" -> "Cell".
	d.ManagerType = strings.ReplaceAll(managerType, "Shape", "Cell")

	if d.ManagerGroup, _, err = r.String(types.FourBytes); err != nil {
		return Description{}, err
	}

	valueTypeOrd, err := r.Int32()
	if err != nil {
		return Description{}, err
	}
	valueType, ok := types.FromOrdinal(valueTypeOrd)
	if !ok {
		return Description{}, errs.At(r.Offset(), fmt.Errorf("%w: value type ordinal %d", errs.ErrUnsupported, valueTypeOrd))
	}
	d.ValueType = valueType

	option, err := r.Int32()
	if err != nil {
		return Description{}, err
	}
	d.Option = option
	d.Direct, d.Undefined, d.FixedShape = decodeOptionFlags(option, strictFlags)

	ndims, err := r.Int32()
	if err != nil {
		return Description{}, err
	}
	d.NDims = ndims

	if ndims != 0 {
		shape, err := r.Position(types.FourBytes)
		if err != nil {
			return Description{}, err
		}
		d.Shape = shape
	}

	if d.MaxLength, err = r.Int32(); err != nil {
		return Description{}, err
	}

	keywords, err := record.Read(r, resolve)
	if err != nil {
		return Description{}, err
	}
	d.Keywords = keywords

	if _, err := r.Int32(); err != nil { // "random read" in the source
		return Description{}, err
	}

	if err := skipDefaultValue(r, d); err != nil {
		return Description{}, err
	}

	return d, nil
}

func hasValidClass(typeName string) bool {
	return strings.HasPrefix(typeName, ClassScalar) ||
		strings.HasPrefix(typeName, ClassScalarRecord) ||
		strings.HasPrefix(typeName, ClassArray)
}

// decodeOptionFlags derives direct/undefined/fixed_shape from the packed
// option bitfield. The source compares `option >> k` against the literal
// constant 1, which is true only when 2^k <= option < 2^(k+1); the more
// likely intended semantics is "bit k is set" (`(option >> k) & 1 == 1`).
// Both behaviors are available; strict=false reproduces the source.
func decodeOptionFlags(option int32, strict bool) (direct, undefined, fixedShape bool) {
	if strict {
		return (option>>3)&1 == 1, (option>>2)&1 == 1, (option>>1)&1 == 1
	}

	return (option >> 3) == 1, (option >> 2) == 1, (option >> 1) == 1
}

// skipDefaultValue consumes the column's default-value slot,
// whose size depends on the column's class and value type. Nothing is
// retained; the source never uses this value either.
func skipDefaultValue(r *bstream.Reader, d Description) error {
	switch {
	case strings.Contains(d.Type, ClassArray):
		_, err := r.Integer(types.OneByte, false)
		return err

	default:
		if size, ok := types.FixedSize(d.ValueType); ok {
			_, err := r.Integer(size, false)
			return err
		}
		if d.ValueType == types.String {
			_, _, err := r.String(types.FourBytes)
			return err
		}

		return errs.At(r.Offset(), fmt.Errorf("%w: default value for %q/%q", errs.ErrUnsupported, d.Type, d.ValueType))
	}
}
