package column

import (
	"fmt"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/errs"
	"github.com/arloliu/casamio/stmgr"
	"github.com/arloliu/casamio/types"
)

// Data is the per-plain-column payload (the "Plain column data" entity): a version,
// a storage-manager sequence number, and (for array columns only) a shape.
type Data struct {
	Version        int32
	SequenceNumber int32
	Shape          []int64 // empty for scalar columns
}

// PlainColumn binds a column description (by position) to a storage-manager
// sequence number and, for array columns, a shape.
type PlainColumn struct {
	Name string
	Data Data
}

// managerEntry records one (name, sequence number) pair read from the
// manager table, preserving insertion order.
type managerEntry struct {
	sequenceNumber int32
	manager        stmgr.Manager
}

// Set is the top-level table layout (the "Column set" entity): row/manager counts,
// the plain columns in description order, and the decoded storage managers
// keyed by sequence number in the order they were declared.
type Set struct {
	Version      int32
	NRows        int32
	NRMan        int32
	NManagers    int32
	Columns      []PlainColumn
	ManagerOrder []int32
	DataManagers map[int32]any
}

// ReadColumnSet implements the column-set grammar: the manager table, one plain column per
// description (in the same order descriptions were produced), an 8-byte
// framing field whose magic is checked (a mismatch is only logged), and
// finally each manager's own decode.
func ReadColumnSet(r *bstream.Reader, descriptions []Description) (Set, error) {
	var set Set

	version, err := r.Int32()
	if err != nil {
		return Set{}, err
	}
	set.Version = -version // the format writes a negative sentinel

	if set.NRows, err = r.Int32(); err != nil {
		return Set{}, err
	}
	if set.NRMan, err = r.Int32(); err != nil {
		return Set{}, err
	}
	if set.NManagers, err = r.Int32(); err != nil {
		return Set{}, err
	}

	entries := make([]managerEntry, 0, set.NManagers)
	for i := int32(0); i < set.NManagers; i++ {
		name, _, err := r.String(types.FourBytes)
		if err != nil {
			return Set{}, err
		}

		seq, err := r.Int32()
		if err != nil {
			return Set{}, err
		}

		mgr, err := stmgr.Lookup(name)
		if err != nil {
			return Set{}, errs.At(r.Offset(), err)
		}

		entries = append(entries, managerEntry{sequenceNumber: seq, manager: mgr})
		set.ManagerOrder = append(set.ManagerOrder, seq)
	}

	set.Columns = make([]PlainColumn, len(descriptions))
	for i, desc := range descriptions {
		pc, err := readPlainColumn(r, desc.NDims)
		if err != nil {
			return Set{}, err
		}
		set.Columns[i] = pc
	}

	if err := checkTrailingMagic(r); err != nil {
		return Set{}, err
	}

	set.DataManagers = make(map[int32]any, len(entries))
	for _, e := range entries {
		decoded, err := e.manager.Decode(r)
		if err != nil {
			return Set{}, err
		}
		set.DataManagers[e.sequenceNumber] = decoded
	}

	return set, nil
}

// checkTrailingMagic consumes the 8-byte field the source calls "magic +
// length". Its first four bytes are compared against types.Magic; a mismatch
// is logged as a warning rather than treated as terminal, since the source
// never validated it and downstream data may still be well-formed. The
// length half is not checked.
func checkTrailingMagic(r *bstream.Reader) error {
	b, err := r.Raw(types.EightBytes)
	if err != nil {
		return err
	}

	if b[0] != types.Magic[0] || b[1] != types.Magic[1] || b[2] != types.Magic[2] || b[3] != types.Magic[3] {
		r.Logger().Warning("casamio: column set trailing field at offset %d does not start with the expected magic", r.Offset())
	}

	return nil
}

func readPlainColumn(r *bstream.Reader, ndims int32) (PlainColumn, error) {
	version, err := r.Int32()
	if err != nil {
		return PlainColumn{}, err
	}
	if version < 2 {
		return PlainColumn{}, errs.At(r.Offset(), fmt.Errorf("%w: plain column version %d", errs.ErrUnsupported, version))
	}

	name, _, err := r.String(types.FourBytes)
	if err != nil {
		return PlainColumn{}, err
	}

	// The outer `version` above only gates support; the inner
	// Data.Version below is a separate field read by the per-class builder,
	// matching the source's build_array_column_data / build_scalar_column_data.
	_ = version

	var data Data
	if ndims != 0 {
		data, err = readArrayColumnData(r)
	} else {
		data, err = readScalarColumnData(r)
	}
	if err != nil {
		return PlainColumn{}, err
	}

	return PlainColumn{Name: name, Data: data}, nil
}

func readArrayColumnData(r *bstream.Reader) (Data, error) {
	var d Data
	var err error

	if d.Version, err = r.Int32(); err != nil {
		return Data{}, err
	}
	if d.SequenceNumber, err = r.Int32(); err != nil {
		return Data{}, err
	}

	hasShape, err := r.Boolean()
	if err != nil {
		return Data{}, err
	}

	if hasShape {
		shape, err := r.Position(types.FourBytes)
		if err != nil {
			return Data{}, err
		}
		d.Shape = shape
	}

	return d, nil
}

func readScalarColumnData(r *bstream.Reader) (Data, error) {
	var d Data
	var err error

	if d.Version, err = r.Int32(); err != nil {
		return Data{}, err
	}
	if d.SequenceNumber, err = r.Int32(); err != nil {
		return Data{}, err
	}

	return d, nil
}
