// materializer.go - Build a Track from the fields of one record
package track

import (
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/schema"
)

// Materializer converts records using a fixed attribute map. It holds no
// mutable state and may be shared between goroutines.
type Materializer struct {
	attrs schema.AttributeMap
	log   *zap.Logger
}

// NewMaterializer returns a materializer for attrs. A nil log discards
// output.
func NewMaterializer(attrs schema.AttributeMap, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{attrs: attrs, log: log}
}

// Materialize builds the track for record from its fields. Fields from
// unmapped columns and fields whose value does not fit their attribute are
// dropped; a later field for the same attribute replaces an earlier one. A
// record without a filename fails with ErrMissingFilename.
func (m *Materializer) Materialize(record int, fields []field.Field) (*Track, error) {
	t := &Track{Record: record}
	for _, f := range fields {
		a, ok := m.attrs.Lookup(f.Header.ID)
		if !ok {
			m.log.Debug("dropping field of unmapped column",
				zap.Int("record", record), zap.Uint8("id", f.Header.ID), zap.Stringer("kind", f.Kind))
			continue
		}
		if !a.Accepts(f.Value) {
			m.log.Warn("dropping field with unexpected type",
				zap.Int("record", record), zap.Stringer("attribute", a),
				zap.Stringer("category", a.Category()), zap.Stringer("kind", f.Kind),
				zap.Int64("offset", f.Offset))
			continue
		}
		t.values[a] = f.Value
	}
	if t.values[schema.Filename] == nil {
		off := int64(-1)
		if len(fields) > 0 {
			off = fields[0].Offset
		}
		return nil, format.NewError(format.ErrMissingFilename, off, "record %d", record)
	}
	return t, nil
}
