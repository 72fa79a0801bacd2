// dump.go - Print every decoded field of a table
package gonde

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/sexp"
)

// DumpFormat selects how Dump prints fields.
type DumpFormat string

const (
	DumpDisplay DumpFormat = "display"
	DumpJSON    DumpFormat = "json"
	DumpSexp    DumpFormat = "sexp"
)

// ParseDumpFormat maps a format name onto a DumpFormat.
func ParseDumpFormat(s string) (DumpFormat, error) {
	switch f := DumpFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case DumpDisplay, DumpJSON, DumpSexp:
		return f, nil
	}
	return "", format.NewError(format.ErrBadFormat, -1, "dump format %q", s)
}

// Dump writes one line per decoded field for every record of the primary
// index, schema and index definition records included. No schema is needed.
func Dump(indexPath, dataPath string, f DumpFormat, w io.Writer, opts ...Option) error {
	t, err := Open(indexPath, dataPath, opts...)
	if err != nil {
		return err
	}
	defer t.Close()
	return t.Dump(f, w)
}

// Dump writes the table's fields to w in format f.
func (t *Table) Dump(f DumpFormat, w io.Writer) error {
	line, err := dumpLine(f)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var total int
	for i := 0; i < t.Len(); i++ {
		var buf []byte
		err := t.walker.WalkFunc(t.primary.OffsetAt(i), func(fld field.Field) error {
			var err error
			buf, err = line(buf[:0], i, fld)
			if err != nil {
				return err
			}
			total++
			_, err = bw.Write(buf)
			return err
		})
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	t.opts.log.Info("dumped table", zap.Int("records", t.Len()), zap.Int("fields", total))
	return bw.Flush()
}

type lineFunc func(dst []byte, record int, f field.Field) ([]byte, error)

func dumpLine(f DumpFormat) (lineFunc, error) {
	switch f {
	case DumpDisplay:
		return func(dst []byte, record int, fld field.Field) ([]byte, error) {
			return fmt.Appendf(dst, "%d %#08x %s\n", record, fld.Offset, fld), nil
		}, nil
	case DumpJSON:
		return func(dst []byte, record int, fld field.Field) ([]byte, error) {
			b, err := json.Marshal(struct {
				Record int `json:"record"`
				field.Field
			}{record, fld})
			if err != nil {
				return nil, err
			}
			return append(append(dst, b...), '\n'), nil
		}, nil
	case DumpSexp:
		return func(dst []byte, record int, fld field.Field) ([]byte, error) {
			n := sexp.List{sexp.Cons("record", sexp.Int(record)), sexp.Cons("field", fld.Sexp())}
			return append(sexp.Append(dst, n), '\n'), nil
		}, nil
	}
	return nil, format.NewError(format.ErrBadFormat, -1, "dump format %q", string(f))
}
