// value.go - Decoded field values
package field

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/sexp"
)

// Value is the decoded payload of a field. The set of implementations is
// closed: Column, Index, String, Integer, Boolean, Float, Datetime, Length,
// Filename, Int64 and Unknown.
type Value interface {
	fmt.Stringer
	// Sexp renders the value for S-expression output.
	Sexp() sexp.Node
	isValue()
}

// Column declares a column of the table; only found in the schema record.
type Column struct {
	ID     uint8            `json:"id"`
	Type   format.FieldKind `json:"type"`
	Unique bool             `json:"unique"`
	Name   string           `json:"name"`
}

// Index declares an index of the table; only found in the index record.
type Index struct {
	ID       uint8  `json:"id"`
	Position int32  `json:"position"`
	Type     int32  `json:"type"`
	Name     string `json:"name"`
}

type (
	String   string
	Integer  int32
	Boolean  bool
	Float    float64
	Datetime int32
	Length   int32
	// Filename is a filesystem path as recorded by the player, usually a
	// Windows path.
	Filename string
	Int64    int64
)

// Unknown holds the raw payload of a kind whose decoding is not implemented.
type Unknown struct {
	Kind  format.FieldKind `json:"kind"`
	Bytes []byte           `json:"bytes"`
}

func (Column) isValue()   {}
func (Index) isValue()    {}
func (String) isValue()   {}
func (Integer) isValue()  {}
func (Boolean) isValue()  {}
func (Float) isValue()    {}
func (Datetime) isValue() {}
func (Length) isValue()   {}
func (Filename) isValue() {}
func (Int64) isValue()    {}
func (Unknown) isValue()  {}

func (v Column) String() string {
	return fmt.Sprintf("column %q (%s, unique: %t)", v.Name, v.Type, v.Unique)
}
func (v Index) String() string {
	return fmt.Sprintf("index %q (pos: %d, type: %d)", v.Name, v.Position, v.Type)
}
func (v String) String() string   { return strconv.Quote(string(v)) }
func (v Integer) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Boolean) String() string  { return strconv.FormatBool(bool(v)) }
func (v Float) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Datetime) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Length) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Filename) String() string { return strconv.Quote(string(v)) }
func (v Int64) String() string    { return strconv.FormatInt(int64(v), 10) }

// String shows GUID payloads in their canonical form and everything else as
// hex.
func (v Unknown) String() string {
	if v.Kind == format.KindGUID && len(v.Bytes) == 16 {
		if id, err := uuid.FromBytes(v.Bytes); err == nil {
			return fmt.Sprintf("%s %s", v.Kind, id)
		}
	}
	return fmt.Sprintf("%s %d bytes [%s]", v.Kind, len(v.Bytes), hex.EncodeToString(v.Bytes))
}

func (v Column) Sexp() sexp.Node {
	return sexp.List{
		sexp.Cons("id", sexp.Int(v.ID)),
		sexp.Cons("type", sexp.Symbol(v.Type.String())),
		sexp.Cons("unique", sexp.Bool(v.Unique)),
		sexp.Cons("name", sexp.String(v.Name)),
	}
}
func (v Index) Sexp() sexp.Node {
	return sexp.List{
		sexp.Cons("id", sexp.Int(v.ID)),
		sexp.Cons("position", sexp.Int(v.Position)),
		sexp.Cons("type", sexp.Int(v.Type)),
		sexp.Cons("name", sexp.String(v.Name)),
	}
}
func (v String) Sexp() sexp.Node   { return sexp.String(v) }
func (v Integer) Sexp() sexp.Node  { return sexp.Int(v) }
func (v Boolean) Sexp() sexp.Node  { return sexp.Bool(v) }
func (v Float) Sexp() sexp.Node    { return sexp.Float(v) }
func (v Datetime) Sexp() sexp.Node { return sexp.Int(v) }
func (v Length) Sexp() sexp.Node   { return sexp.Int(v) }
func (v Filename) Sexp() sexp.Node { return sexp.String(v) }
func (v Int64) Sexp() sexp.Node    { return sexp.Int(v) }
func (v Unknown) Sexp() sexp.Node {
	return sexp.List{
		sexp.Cons("kind", sexp.Symbol(v.Kind.String())),
		sexp.Cons("bytes", sexp.String(hex.EncodeToString(v.Bytes))),
	}
}

// Field is one decoded field: where it was read, its kind, the common
// header and the payload.
type Field struct {
	Offset int64            `json:"offset"`
	Kind   format.FieldKind `json:"kind"`
	Header Header           `json:"header"`
	Value  Value            `json:"value"`
}

func (f Field) String() string {
	return fmt.Sprintf("%s: %s, %s", f.Kind, f.Header, f.Value)
}

// Sexp renders the field as an association list.
func (f Field) Sexp() sexp.Node {
	var v sexp.Node = sexp.Nil
	if f.Value != nil {
		v = f.Value.Sexp()
	}
	return sexp.List{
		sexp.Cons("offset", sexp.Int(f.Offset)),
		sexp.Cons("kind", sexp.Symbol(f.Kind.String())),
		sexp.Cons("id", sexp.Int(f.Header.ID)),
		sexp.Cons("max-size", sexp.Int(f.Header.MaxSize)),
		sexp.Cons("prev", sexp.Int(f.Header.Prev)),
		sexp.Cons("next", sexp.Int(f.Header.Next)),
		sexp.Cons("value", v),
	}
}
