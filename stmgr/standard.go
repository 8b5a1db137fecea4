package stmgr

import (
	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/types"
)

// Standard is the decoded result of the StandardStMan storage manager, the
// only manager with non-trivial behavior in the source: a header triple, a
// name, and two Blocks (an offset table and an index map).
type Standard struct {
	Name     string
	Offset   Block
	IndexMap Block
}

func decodeStandardStMan(r *bstream.Reader) (any, error) {
	if _, _, err := r.Header(); err != nil {
		return nil, err
	}

	name, _, err := r.String(types.FourBytes)
	if err != nil {
		return nil, err
	}

	offset, err := ReadBlock(r)
	if err != nil {
		return nil, err
	}

	indexMap, err := ReadBlock(r)
	if err != nil {
		return nil, err
	}

	return Standard{Name: name, Offset: offset, IndexMap: indexMap}, nil
}

// Incremental is the decoded result of the IncrementalStMan storage manager:
// a header triple followed by a name, nothing else.
type Incremental struct {
	Name string
}

func decodeIncrementalStMan(r *bstream.Reader) (any, error) {
	if _, _, err := r.Header(); err != nil {
		return nil, err
	}

	name, _, err := r.String(types.FourBytes)
	if err != nil {
		return nil, err
	}

	return Incremental{Name: name}, nil
}

// TiledShape is a placeholder result: the source documents this manager as
// unfinished and reads no bytes.
type TiledShape struct{}

func decodeTiledShapeStMan(r *bstream.Reader) (any, error) {
	r.Logger().Warning("casamio: TiledShapeStMan is unfinished, returning a stub")

	return TiledShape{}, nil
}

// TiledColumn is a placeholder result: the source documents this manager as
// unfinished and reads no bytes.
type TiledColumn struct{}

func decodeTiledColumnStMan(r *bstream.Reader) (any, error) {
	r.Logger().Warning("casamio: TiledColumnStMan is unfinished, returning a stub")

	return TiledColumn{}, nil
}
