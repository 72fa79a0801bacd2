package track_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/sexp"
	"github.com/wilhasse/go-nde/track"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	cols := []field.Field{
		{Kind: format.KindColumn, Value: field.Column{ID: 0, Type: format.KindFilename, Name: "filename"}},
		{Kind: format.KindColumn, Value: field.Column{ID: 1, Type: format.KindString, Name: "title"}},
		{Kind: format.KindColumn, Value: field.Column{ID: 2, Type: format.KindInteger, Name: "year"}},
		{Kind: format.KindColumn, Value: field.Column{ID: 3, Type: format.KindString, Name: "nonesuch"}},
	}
	s, err := schema.Build(cols)
	require.NoError(t, err)
	return s
}

func fld(id uint8, v field.Value) field.Field {
	var k format.FieldKind
	switch v.(type) {
	case field.Filename:
		k = format.KindFilename
	case field.String:
		k = format.KindString
	case field.Integer:
		k = format.KindInteger
	case field.Datetime:
		k = format.KindDatetime
	}
	return field.Field{Offset: 100, Kind: k, Header: field.Header{ID: id}, Value: v}
}

func TestMaterialize(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := track.NewMaterializer(testSchema(t).Attributes, zap.New(core))

	tr, err := m.Materialize(2, []field.Field{
		fld(0, field.Filename(`C:\a.mp3`)),
		fld(1, field.String("First")),
		fld(3, field.String("ignored")),
		fld(9, field.Integer(5)),
		fld(2, field.Datetime(1999)),
		fld(1, field.String("Second")),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Record)
	assert.Equal(t, `C:\a.mp3`, tr.Filename())
	assert.Equal(t, field.String("Second"), tr.Get(schema.Title))
	assert.Nil(t, tr.Get(schema.Year))
	assert.Nil(t, tr.Get(schema.Artist))

	assert.Equal(t, 2, logs.FilterMessage("dropping field of unmapped column").Len())
	assert.Equal(t, 1, logs.FilterMessage("dropping field with unexpected type").Len())
	assert.Equal(t, zap.WarnLevel, logs.FilterMessage("dropping field with unexpected type").All()[0].Level)
}

func TestMaterializeMissingFilename(t *testing.T) {
	m := track.NewMaterializer(testSchema(t).Attributes, nil)

	_, err := m.Materialize(3, []field.Field{fld(1, field.String("No path"))})
	require.ErrorIs(t, err, format.ErrMissingFilename)

	// a filename of the wrong kind does not count
	_, err = m.Materialize(3, []field.Field{fld(0, field.String("a.mp3"))})
	require.ErrorIs(t, err, format.ErrMissingFilename)

	_, err = m.Materialize(3, nil)
	require.ErrorIs(t, err, format.ErrMissingFilename)
}

func TestTrackJSON(t *testing.T) {
	tr := track.New(2, "a.mp3")
	require.NoError(t, tr.Set(schema.Year, field.Integer(1999)))
	require.NoError(t, tr.Set(schema.Filesize, field.Int64(1<<33)))
	require.Error(t, tr.Set(schema.Year, field.String("1999")))

	b, err := json.Marshal(tr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Len(t, got, schema.NumAttributes)
	assert.Equal(t, "a.mp3", got["filename"])
	assert.Equal(t, float64(1999), got["year"])
	assert.Equal(t, float64(1<<33), got["filesize"])
	assert.Nil(t, got["title"])
	assert.Contains(t, got, "play_count")

	assert.True(t, strings.HasPrefix(string(b), `{"filename":"a.mp3","artist":null,"title":null,"album":null,"year":1999,`), string(b))
}

func TestTrackSexp(t *testing.T) {
	tr := track.New(2, `C:\a.mp3`)
	require.NoError(t, tr.Set(schema.Artist, field.String("Foo")))

	out := string(sexp.Marshal(tr.Sexp()))
	assert.True(t, strings.HasPrefix(out, `((filename . "C:\\a.mp3") (artist . "Foo") (title . #nil)`), out)
	assert.True(t, strings.HasSuffix(out, `(date_added . #nil))`), out)
}

func TestScalar(t *testing.T) {
	tr := track.New(2, "a.mp3")
	require.NoError(t, tr.Set(schema.Length, field.Length(200)))
	require.NoError(t, tr.Set(schema.LastPlay, field.Datetime(7)))

	assert.Equal(t, "a.mp3", tr.Scalar(schema.Filename))
	assert.Equal(t, int32(200), tr.Scalar(schema.Length))
	assert.Equal(t, int32(7), tr.Scalar(schema.LastPlay))
	assert.Nil(t, tr.Scalar(schema.Title))
	assert.Nil(t, tr.Get(schema.Attribute(200)))
}
