// Package casams implements the top-level measurement-set driver: the
// nine-step read order that ties the record, column, and storage-manager
// grammars together into a single tree-shaped result.
package casams

import (
	"io"
	"path/filepath"

	"github.com/arloliu/casamio/bstream"
	"github.com/arloliu/casamio/column"
	"github.com/arloliu/casamio/record"
	"github.com/arloliu/casamio/types"
)

// TableDescription mirrors the source's TableDescription dataclass: the
// column count, the per-column descriptions, and the two top-level keyword
// records every measurement set carries.
type TableDescription struct {
	NColumns    int32
	Columns     []column.Description
	Keywords    record.Record
	PrivateKwds record.Record
}

// MeasurementSet is the tree-shaped result of Open (the "Measurement set"
// entity): the header fields, the table description, and the decoded column
// set, plus the resolved sidecar paths for each data manager.
type MeasurementSet struct {
	Filename string
	NRows    int32
	Format   int32
	Name     string

	TableDescription TableDescription
	ColumnSet        column.Set

	// SidecarPaths maps each data manager's sequence number to the resolved
	// path of its table.fN sidecar file. The core never opens these paths.
	SidecarPaths map[int32]string
}

// ResolvePath joins filename itself (as a directory) with relative and
// returns an absolute path, mirroring the source's
// `pathlib.Path(self.filename).resolve().joinpath(relative)`. It is used both
// for `table`-typed record entries and for the per-manager table.fN sidecar
// paths logged by Open. The core never opens the result; resolving it is the
// entirety of its job.
func ResolvePath(filename, relative string) string {
	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}

	return filepath.Join(abs, relative)
}

// sidecarName is the source's `table.f{index}` naming convention for a data
// manager's sequence number.
func sidecarName(sequenceNumber int32) string {
	return "table.f" + itoa(sequenceNumber)
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}

// Open implements the nine-step driver:
//
//  1. The handshake (performed by bstream.NewReader).
//  2. A header triple, consumed.
//  3. nrows, format, name.
//  4. A second header triple.
//  5. Three opaque length-prefixed strings, discarded.
//  6. The keywords record.
//  7. The private record.
//  8. ncolumns, then that many column descriptions.
//  9. The column set, built from those descriptions.
func Open(src io.Reader, filename string, opts ...Option) (*MeasurementSet, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := bstream.NewReader(src,
		bstream.WithLogger(cfg.logger),
		bstream.WithMaxArrayBytes(cfg.maxArrayBytes),
		bstream.WithLiteralBooleanDecode(cfg.literalBoolean),
	)
	if err != nil {
		return nil, err
	}

	resolve := func(relative string) string { return ResolvePath(filename, relative) }

	ms := &MeasurementSet{Filename: filename}

	if _, _, err := r.Header(); err != nil {
		return nil, err
	}

	if ms.NRows, err = r.Int32(); err != nil {
		return nil, err
	}
	if ms.Format, err = r.Int32(); err != nil {
		return nil, err
	}
	if ms.Name, _, err = r.String(types.FourBytes); err != nil {
		return nil, err
	}

	if _, _, err := r.Header(); err != nil {
		return nil, err
	}

	for i := 0; i < 3; i++ {
		if _, _, err := r.String(types.FourBytes); err != nil {
			return nil, err
		}
	}

	keywords, err := record.Read(r, resolve)
	if err != nil {
		return nil, err
	}

	private, err := record.Read(r, resolve)
	if err != nil {
		return nil, err
	}

	ncolumns, err := r.Int32()
	if err != nil {
		return nil, err
	}

	descriptions := make([]column.Description, 0, ncolumns)
	for i := int32(0); i < ncolumns; i++ {
		desc, err := column.ReadDescription(r, resolve, cfg.strictFlags)
		if err != nil {
			return nil, err
		}
		descriptions = append(descriptions, desc)
	}

	ms.TableDescription = TableDescription{
		NColumns:    ncolumns,
		Columns:     descriptions,
		Keywords:    keywords,
		PrivateKwds: private,
	}

	columnSet, err := column.ReadColumnSet(r, descriptions)
	if err != nil {
		return nil, err
	}
	ms.ColumnSet = columnSet

	ms.SidecarPaths = make(map[int32]string, len(columnSet.ManagerOrder))
	for _, seq := range columnSet.ManagerOrder {
		path := ResolvePath(filename, sidecarName(seq))
		ms.SidecarPaths[seq] = path

		cfg.logger.Debug("casamio: data manager seq=%d -> %s (%T)", seq, path, columnSet.DataManagers[seq])
	}

	return ms, nil
}
