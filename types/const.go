package types

// Byte-size constants for framing fields, mirroring the source's
// ONE_BYTE/TWO_BYTES/FOUR_BYTES/EIGHT_BYTES/SIXTEEN_BYTES table.
const (
	OneByte      = 1
	TwoBytes     = 2
	FourBytes    = 4
	EightBytes   = 8
	SixteenBytes = 16
)

// Magic is the fixed 4-byte header every measurement-set stream begins with.
var Magic = [4]byte{0xBE, 0xBE, 0xBE, 0xBE}

// FixedSize returns the on-disk width in bytes of a fixed-width scalar tag,
// and ok=false for tags that have no fixed width (char, uchar, string, table,
// array*, other). Record reports 8 bytes.
func FixedSize(t Tag) (int, bool) {
	size, ok := fixedSizes[t]
	return size, ok
}

var fixedSizes = map[Tag]int{
	Bool:     OneByte,
	Short:    TwoBytes,
	UShort:   TwoBytes,
	Int:      FourBytes,
	UInt:     FourBytes,
	Float:    FourBytes,
	Double:   EightBytes,
	Complex:  EightBytes,
	Record:   EightBytes,
	DComplex: SixteenBytes,
}
