// ddl.go - Render SQL statements for exported track tables
package schema

import (
	"github.com/xwb1989/sqlparser"
)

// DefaultTable is the table name used for exported tracks.
const DefaultTable = "tracks"

// CreateTable builds a CREATE TABLE statement with one column per attribute,
// named by the attribute key. The filename column is NOT NULL.
func CreateTable(table string, attrs []Attribute) *sqlparser.DDL {
	name := sqlparser.TableName{Name: sqlparser.NewTableIdent(table)}
	ts := &sqlparser.TableSpec{}
	for _, a := range attrs {
		ts.Columns = append(ts.Columns, &sqlparser.ColumnDefinition{
			Name: sqlparser.NewColIdent(a.Key()),
			Type: sqlparser.ColumnType{
				Type:    string(a.Category().SQLType()),
				NotNull: sqlparser.BoolVal(a == Filename),
			},
		})
	}
	return &sqlparser.DDL{
		Action:    sqlparser.CreateStr,
		Table:     name,
		NewName:   name,
		TableSpec: ts,
	}
}

// Insert builds an INSERT statement for the given attribute columns.
func Insert(table string, attrs []Attribute, rows sqlparser.Values) *sqlparser.Insert {
	cols := make(sqlparser.Columns, 0, len(attrs))
	for _, a := range attrs {
		cols = append(cols, sqlparser.NewColIdent(a.Key()))
	}
	return &sqlparser.Insert{
		Action:  sqlparser.InsertStr,
		Table:   sqlparser.TableName{Name: sqlparser.NewTableIdent(table)},
		Columns: cols,
		Rows:    rows,
	}
}

// Placeholders returns a single row of positional bind markers, one per
// attribute.
func Placeholders(attrs []Attribute) sqlparser.Values {
	row := make(sqlparser.ValTuple, len(attrs))
	for i := range row {
		row[i] = sqlparser.NewValArg([]byte("?"))
	}
	return sqlparser.Values{row}
}

// SQL renders a statement as text.
func SQL(stmt sqlparser.SQLNode) string {
	return sqlparser.String(stmt)
}
