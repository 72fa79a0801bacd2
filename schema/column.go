// column.go - Column definitions from the schema record
package schema

import (
	"fmt"

	"github.com/wilhasse/go-nde/format"
)

// ColumnType is the SQL type an attribute is exported as.
type ColumnType string

const (
	TypeText   ColumnType = "text"
	TypeInt    ColumnType = "int"
	TypeBigInt ColumnType = "bigint"
)

// Column is one column declared in record 0 of the table.
type Column struct {
	ID     uint8            `json:"id"`
	Kind   format.FieldKind `json:"kind"`
	Unique bool             `json:"unique"`
	Name   string           `json:"name"`
	// Attribute is set when Mapped is true.
	Attribute Attribute `json:"-"`
	Mapped    bool      `json:"mapped"`
}

func (c Column) String() string {
	s := fmt.Sprintf("column %d %q %s", c.ID, c.Name, c.Kind)
	if c.Unique {
		s += " unique"
	}
	if c.Mapped {
		s += " -> " + c.Attribute.Key()
	}
	return s
}
