// sql.go - SQL script output
package encode

import (
	"io"
	"strconv"

	"github.com/xwb1989/sqlparser"

	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/track"
)

// insertBatch is the number of rows per INSERT statement.
const insertBatch = 100

// EncodeSQL writes a CREATE TABLE statement followed by INSERT statements
// for tracks. String literals use MySQL escaping.
func EncodeSQL(w io.Writer, table string, attrs []schema.Attribute, tracks []*track.Track) error {
	if err := writeStatement(w, schema.CreateTable(table, attrs)); err != nil {
		return err
	}
	for start := 0; start < len(tracks); start += insertBatch {
		end := min(start+insertBatch, len(tracks))
		rows := make(sqlparser.Values, 0, end-start)
		for _, t := range tracks[start:end] {
			rows = append(rows, row(t, attrs))
		}
		if err := writeStatement(w, schema.Insert(table, attrs, rows)); err != nil {
			return err
		}
	}
	return nil
}

func writeStatement(w io.Writer, stmt sqlparser.SQLNode) error {
	_, err := io.WriteString(w, schema.SQL(stmt)+";\n")
	return err
}

// row renders the attribute values of t as SQL literals.
func row(t *track.Track, attrs []schema.Attribute) sqlparser.ValTuple {
	tuple := make(sqlparser.ValTuple, len(attrs))
	for i, a := range attrs {
		switch v := t.Scalar(a).(type) {
		case string:
			tuple[i] = sqlparser.NewStrVal([]byte(v))
		case int32:
			tuple[i] = sqlparser.NewIntVal(strconv.AppendInt(nil, int64(v), 10))
		case int64:
			tuple[i] = sqlparser.NewIntVal(strconv.AppendInt(nil, v, 10))
		default:
			tuple[i] = &sqlparser.NullVal{}
		}
	}
	return tuple
}

// args returns the attribute values of t as driver arguments.
func args(t *track.Track, attrs []schema.Attribute) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = t.Scalar(a)
	}
	return out
}
