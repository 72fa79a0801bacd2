// mapper.go - Build the column id to attribute map from the schema record
package schema

import (
	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
)

// AttributeMap maps column ids onto attributes. It is immutable once built
// and safe for concurrent use.
type AttributeMap struct {
	m map[uint8]Attribute
}

// Lookup returns the attribute fed by column id.
func (m AttributeMap) Lookup(id uint8) (Attribute, bool) {
	a, ok := m.m[id]
	return a, ok
}

// Len is the number of mapped columns.
func (m AttributeMap) Len() int { return len(m.m) }

// Schema is the decoded schema record.
type Schema struct {
	// Columns in record order.
	Columns    []Column
	Attributes AttributeMap
}

// Build derives the schema from the fields of record 0. Every field must be a
// column definition. Columns whose names are not attribute names are kept in
// Columns but left unmapped; when two columns share an id the later wins.
func Build(fields []field.Field) (*Schema, error) {
	s := &Schema{
		Columns:    make([]Column, 0, len(fields)),
		Attributes: AttributeMap{m: make(map[uint8]Attribute, len(fields))},
	}
	for _, f := range fields {
		def, ok := f.Value.(field.Column)
		if !ok {
			return nil, format.NewError(format.ErrNonColumnField, f.Offset, "%s field with id %d", f.Kind, f.Header.ID)
		}
		c := Column{ID: def.ID, Kind: def.Type, Unique: def.Unique, Name: def.Name}
		if a, ok := Lookup(def.Name); ok {
			c.Attribute, c.Mapped = a, true
			s.Attributes.m[def.ID] = a
		} else {
			delete(s.Attributes.m, def.ID)
		}
		s.Columns = append(s.Columns, c)
	}
	return s, nil
}

// Mapped returns the attributes fed by some column, in serialization order.
func (s *Schema) Mapped() []Attribute {
	var seen [NumAttributes]bool
	for _, a := range s.Attributes.m {
		seen[a] = true
	}
	var out []Attribute
	for i, ok := range seen {
		if ok {
			out = append(out, Attribute(i))
		}
	}
	return out
}

// TableAttributes lists the attributes exported as table columns: the
// filename followed by every other mapped attribute.
func (s *Schema) TableAttributes() []Attribute {
	attrs := []Attribute{Filename}
	for _, a := range s.Mapped() {
		if a != Filename {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
