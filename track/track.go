// Package track turns decoded records into music library tracks.
package track

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/sexp"
)

// Track holds the attribute values of one record. Every track has a
// filename; any other attribute may be absent.
type Track struct {
	// Record is the position of the record in the primary index.
	Record int
	values [schema.NumAttributes]field.Value
}

// New returns a track for record with the given filename.
func New(record int, filename string) *Track {
	t := &Track{Record: record}
	t.values[schema.Filename] = field.Filename(filename)
	return t
}

// Set stores v under a, failing when v does not fit the attribute.
func (t *Track) Set(a schema.Attribute, v field.Value) error {
	if !a.Accepts(v) {
		return errors.Errorf("%s does not accept %T", a, v)
	}
	t.values[a] = v
	return nil
}

// Get returns the value of a, or nil when absent.
func (t *Track) Get(a schema.Attribute) field.Value {
	if !a.Valid() {
		return nil
	}
	return t.values[a]
}

// Filename returns the track's path.
func (t *Track) Filename() string {
	if f, ok := t.values[schema.Filename].(field.Filename); ok {
		return string(f)
	}
	return ""
}

// Scalar returns the value of a as a string, int32 or int64, or nil when
// absent.
func (t *Track) Scalar(a schema.Attribute) any {
	switch v := t.Get(a).(type) {
	case field.Filename:
		return string(v)
	case field.String:
		return string(v)
	case field.Integer:
		return int32(v)
	case field.Length:
		return int32(v)
	case field.Datetime:
		return int32(v)
	case field.Int64:
		return int64(v)
	default:
		return nil
	}
}

// MarshalJSON writes every attribute, in attribute order, with null for
// absent ones.
func (t *Track) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range schema.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Key())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(t.Scalar(a))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Sexp renders the track as an association list over every attribute.
func (t *Track) Sexp() sexp.Node {
	l := make(sexp.List, 0, schema.NumAttributes)
	for _, a := range schema.All() {
		var v sexp.Node = sexp.Nil
		if x := t.Get(a); x != nil {
			v = x.Sexp()
		}
		l = append(l, sexp.Cons(a.Key(), v))
	}
	return l
}
