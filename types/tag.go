// Package types defines the closed, ordinal-indexed type-tag registry used
// throughout the decoder: the on-disk integer tag of every record entry and
// column description is an index into this list, and preserving ordinal
// order is a hard invariant of the format.
package types

// Tag is one variant of the closed type-tag set. The on-disk representation
// is a little/big-endian i32 holding the Tag's ordinal position in tagNames.
type Tag uint8

// The type-tag set, in on-disk ordinal order. Never reorder these constants;
// the ordinal position IS the wire representation.
const (
	Bool Tag = iota
	Char
	UChar
	Short
	UShort
	Int
	UInt
	Float
	Double
	Complex
	DComplex
	String
	Table
	ArrayBool
	ArrayChar
	ArrayUChar
	ArrayShort
	ArrayUShort
	ArrayInt
	ArrayUInt
	ArrayFloat
	ArrayDouble
	ArrayComplex
	ArrayDComplex
	ArrayStr
	Record
	Other

	numTags = iota
)

var tagNames = [numTags]string{
	Bool:           "bool",
	Char:           "char",
	UChar:          "uchar",
	Short:          "short",
	UShort:         "ushort",
	Int:            "int",
	UInt:           "uint",
	Float:          "float",
	Double:         "double",
	Complex:        "complex",
	DComplex:       "dcomplex",
	String:         "string",
	Table:          "table",
	ArrayBool:      "arraybool",
	ArrayChar:      "arraychar",
	ArrayUChar:     "arrayuchar",
	ArrayShort:     "arrayshort",
	ArrayUShort:    "arrayushort",
	ArrayInt:       "arrayint",
	ArrayUInt:      "arrayuint",
	ArrayFloat:     "arrayfloat",
	ArrayDouble:    "arraydouble",
	ArrayComplex:   "arraycomplex",
	ArrayDComplex:  "arraydcomplex",
	ArrayStr:       "arraystr",
	Record:         "record",
	Other:          "other",
}

// String returns the canonical lowercase name of the tag, matching the
// source format's TYPE_LIST entry at this ordinal.
func (t Tag) String() string {
	if int(t) < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}

	return tagNames[t]
}

// FromOrdinal looks up a Tag by its on-disk ordinal, reporting ok=false if
// the ordinal falls outside the closed set.
func FromOrdinal(ordinal int32) (Tag, bool) {
	if ordinal < 0 || int(ordinal) >= numTags {
		return 0, false
	}

	return Tag(ordinal), true
}

// IsArray reports whether the tag names an array* variant.
func (t Tag) IsArray() bool {
	switch t {
	case ArrayBool, ArrayChar, ArrayUChar, ArrayShort, ArrayUShort, ArrayInt,
		ArrayUInt, ArrayFloat, ArrayDouble, ArrayComplex, ArrayDComplex, ArrayStr:
		return true
	default:
		return false
	}
}
