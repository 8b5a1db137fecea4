// Package digest provides content fingerprinting for decoded entities: a
// fast, collision-resistant identifier for a decoded structure, used here to
// let a caller deduplicate repeated table descriptions across many table.fN
// sidecars without a full structural comparison.
package digest

import (
	"fmt"
	"strings"

	"github.com/arloliu/casamio/column"
	"github.com/arloliu/casamio/internal/hash"
	"github.com/arloliu/casamio/record"
)

// Fingerprint hashes a stable, order-preserving textual serialization of v
// via internal/hash.ID. Only record.Record, *record.Record and
// column.Description are serialized structurally; any other type is serialized via its fmt.Stringer/fmt.Formatter
// behavior, which is still stable but not guaranteed collision-resistant
// across Go versions.
func Fingerprint(v any) uint64 {
	var sb strings.Builder
	writeValue(&sb, v)

	return hash.ID(sb.String())
}

func writeValue(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("nil")

	case *record.Record:
		writeRecord(sb, x)

	case record.Record:
		writeRecord(sb, &x)

	case column.Description:
		writeColumnDescription(sb, x)

	default:
		fmt.Fprintf(sb, "%v", x)
	}
}

func writeRecord(sb *strings.Builder, r *record.Record) {
	if r == nil {
		sb.WriteString("record(nil)")
		return
	}

	sb.WriteString("record{")
	for i, name := range r.Description.Names {
		if i > 0 {
			sb.WriteByte(',')
		}

		fmt.Fprintf(sb, "%s:%s=", name, r.Description.Types[i].String())
		writeValue(sb, r.Fields[name])
	}
	sb.WriteByte('}')
}

func writeColumnDescription(sb *strings.Builder, d column.Description) {
	fmt.Fprintf(sb, "column{name=%s,type=%s,value_type=%s,option=%d,ndims=%d,shape=%v,max_length=%d,manager=%s/%s,keywords=",
		d.Name, d.Type, d.ValueType.String(), d.Option, d.NDims, d.Shape, d.MaxLength, d.ManagerType, d.ManagerGroup)
	writeRecord(sb, &d.Keywords)
	sb.WriteByte('}')
}

// FingerprintAll hashes a slice of column descriptions, in description order,
// as a single digest, useful for deduplicating an entire table description at
// once.
func FingerprintAll(descs []column.Description) uint64 {
	var sb strings.Builder
	for _, d := range descs {
		writeColumnDescription(&sb, d)
		sb.WriteByte(';')
	}

	return hash.ID(sb.String())
}
