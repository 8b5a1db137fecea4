// Package stmgr implements the pluggable storage-manager registry:
// a name-keyed table of per-manager decoders, each responsible for its own
// private trailer following the column set.
package stmgr

import (
	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/types"
)

// Block is the small framed structure used inside storage-manager payloads:
// a row count, a name, a version, a size, and that many elements.
// Current usage always supplies the 4-byte integer reader for elements, so
// Block.Elements is []int32.
type Block struct {
	NRows    int32
	Name     string
	Version  int32
	Size     int32
	Elements []int32
}

// ReadBlock reads a Block, consuming 4 header fields then Size 4-byte
// integers.
func ReadBlock(r *bstream.Reader) (Block, error) {
	var b Block
	var err error

	if b.NRows, err = r.Int32(); err != nil {
		return Block{}, err
	}
	if b.Name, _, err = r.String(types.FourBytes); err != nil {
		return Block{}, err
	}
	if b.Version, err = r.Int32(); err != nil {
		return Block{}, err
	}
	if b.Size, err = r.Int32(); err != nil {
		return Block{}, err
	}

	b.Elements = make([]int32, b.Size)
	for i := range b.Elements {
		if b.Elements[i], err = r.Int32(); err != nil {
			return Block{}, err
		}
	}

	return b, nil
}
