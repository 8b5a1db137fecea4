package stmgr

import (
	"fmt"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/errs"
)

// Manager decodes one storage manager's private trailer. Each call must
// return a fresh value; unlike the source (whose manager classes mutate
// class-level fields as an accidental singleton), implementations here carry
// no process-wide state.
type Manager interface {
	Decode(r *bstream.Reader) (any, error)
}

// ManagerFunc adapts a plain function to the Manager interface.
type ManagerFunc func(r *bstream.Reader) (any, error)

func (f ManagerFunc) Decode(r *bstream.Reader) (any, error) { return f(r) }

// registry is the small, constant name->decoder table. It is built
// once at package init and never mutated afterward, so concurrent lookups by
// name are safe even though an individual Reader is not.
var registry = map[string]Manager{
	"StandardStMan":    ManagerFunc(decodeStandardStMan),
	"IncrementalStMan": ManagerFunc(decodeIncrementalStMan),
	"TiledCellStMan":   ManagerFunc(decodeNotImplemented),
	"TiledShapeStMan":  ManagerFunc(decodeTiledShapeStMan),
	"TiledColumnStMan": ManagerFunc(decodeTiledColumnStMan),
	"StManAipsIO":      ManagerFunc(decodeNotImplemented),
}

// Lookup returns the Manager registered for name, or errs.ErrUnknownManager
// if name is not one of the six recognized storage managers.
func Lookup(name string) (Manager, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownManager, name)
	}

	return m, nil
}

func decodeNotImplemented(r *bstream.Reader) (any, error) {
	return nil, errs.At(r.Offset(), errs.ErrManagerNotImplemented)
}
