package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xwb1989/sqlparser"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/schema"
)

func columnField(id uint8, kind format.FieldKind, name string) field.Field {
	return field.Field{
		Kind:   format.KindColumn,
		Header: field.Header{ID: id},
		Value:  field.Column{ID: id, Type: kind, Name: name},
	}
}

func TestAttributeTable(t *testing.T) {
	all := schema.All()
	require.Len(t, all, schema.NumAttributes)
	assert.Equal(t, 41, schema.NumAttributes)

	keys := map[string]bool{}
	for _, a := range all {
		got, ok := schema.Lookup(a.Name())
		require.True(t, ok, a.Name())
		assert.Equal(t, a, got)
		assert.False(t, keys[a.Key()], "duplicate key %s", a.Key())
		keys[a.Key()] = true
	}

	assert.Equal(t, "play_count", schema.PlayCount.Key())
	assert.Equal(t, "gracenote_file_id", schema.GracenoteFileID.Key())
	assert.Equal(t, "date_added", schema.DateAdded.Key())
	assert.Equal(t, schema.CategoryDatetime, schema.PodcastPubdate.Category())
	assert.Equal(t, schema.CategoryInt64, schema.Filesize.Category())
}

func TestLookupIsExact(t *testing.T) {
	_, ok := schema.Lookup("GracenoteFileID")
	assert.True(t, ok)
	for _, name := range []string{"gracenotefileid", "Artist", "artist ", "", "nonesuch"} {
		_, ok := schema.Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		attr schema.Attribute
		v    field.Value
		want bool
	}{
		{schema.Filename, field.Filename("a.mp3"), true},
		{schema.Filename, field.String("a.mp3"), false},
		{schema.Artist, field.String("x"), true},
		{schema.Artist, field.Filename("x"), false},
		{schema.Year, field.Integer(1999), true},
		{schema.Year, field.Datetime(1999), false},
		{schema.Length, field.Length(200), true},
		{schema.Length, field.Integer(200), false},
		{schema.LastPlay, field.Datetime(1), true},
		{schema.PodcastPubdate, field.Datetime(1), true},
		{schema.PodcastPubdate, field.Integer(1), false},
		{schema.Filesize, field.Int64(1), true},
		{schema.Filesize, field.Integer(1), false},
		{schema.Comment, field.Unknown{Kind: format.KindBinary}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.attr.Accepts(tt.v), "%s %T", tt.attr, tt.v)
	}
}

func TestBuild(t *testing.T) {
	s, err := schema.Build([]field.Field{
		columnField(0, format.KindFilename, "filename"),
		columnField(1, format.KindString, "artist"),
		columnField(2, format.KindString, "nonesuch"),
		columnField(3, format.KindInteger, "playcount"),
	})
	require.NoError(t, err)
	require.Len(t, s.Columns, 4)
	assert.Equal(t, 3, s.Attributes.Len())

	a, ok := s.Attributes.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, schema.Artist, a)

	_, ok = s.Attributes.Lookup(2)
	assert.False(t, ok)
	assert.False(t, s.Columns[2].Mapped)

	assert.Equal(t, []schema.Attribute{schema.Filename, schema.Artist, schema.PlayCount}, s.Mapped())
	assert.Equal(t, s.Mapped(), s.TableAttributes())
}

func TestBuildDuplicateIDLastWins(t *testing.T) {
	s, err := schema.Build([]field.Field{
		columnField(1, format.KindString, "artist"),
		columnField(1, format.KindString, "title"),
		columnField(2, format.KindString, "album"),
		columnField(2, format.KindString, "nonesuch"),
	})
	require.NoError(t, err)
	a, ok := s.Attributes.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, schema.Title, a)
	_, ok = s.Attributes.Lookup(2)
	assert.False(t, ok)
}

func TestBuildRejectsNonColumn(t *testing.T) {
	_, err := schema.Build([]field.Field{
		columnField(0, format.KindFilename, "filename"),
		{Kind: format.KindString, Header: field.Header{ID: 1}, Value: field.String("x")},
	})
	require.ErrorIs(t, err, format.ErrNonColumnField)
}

func TestBuildEmpty(t *testing.T) {
	s, err := schema.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Attributes.Len())
	assert.Empty(t, s.Mapped())
	assert.Equal(t, []schema.Attribute{schema.Filename}, s.TableAttributes())
}

func TestCreateTable(t *testing.T) {
	attrs := []schema.Attribute{schema.Filename, schema.Title, schema.Year, schema.Filesize}
	text := schema.SQL(schema.CreateTable("tracks", attrs))
	assert.True(t, strings.HasPrefix(text, "create table tracks"), text)

	stmt, err := sqlparser.Parse(text)
	require.NoError(t, err)
	ddl, ok := stmt.(*sqlparser.DDL)
	require.True(t, ok)
	assert.Equal(t, sqlparser.CreateStr, ddl.Action)
	require.NotNil(t, ddl.TableSpec)
	require.Len(t, ddl.TableSpec.Columns, 4)

	want := map[string]string{"filename": "text", "title": "text", "year": "int", "filesize": "bigint"}
	for _, c := range ddl.TableSpec.Columns {
		assert.Equal(t, want[c.Name.String()], strings.ToLower(c.Type.Type), c.Name.String())
	}
	assert.True(t, bool(ddl.TableSpec.Columns[0].Type.NotNull))
	assert.False(t, bool(ddl.TableSpec.Columns[1].Type.NotNull))
}

func TestInsert(t *testing.T) {
	attrs := []schema.Attribute{schema.Filename, schema.Year, schema.Title}
	rows := sqlparser.Values{{
		sqlparser.NewStrVal([]byte("it's.mp3")),
		sqlparser.NewIntVal([]byte("1999")),
		&sqlparser.NullVal{},
	}}
	text := schema.SQL(schema.Insert("tracks", attrs, rows))

	stmt, err := sqlparser.Parse(text)
	require.NoError(t, err, text)
	ins, ok := stmt.(*sqlparser.Insert)
	require.True(t, ok)
	require.Len(t, ins.Columns, 3)
	values, ok := ins.Rows.(sqlparser.Values)
	require.True(t, ok)
	require.Len(t, values, 1)
	str, ok := values[0][0].(*sqlparser.SQLVal)
	require.True(t, ok)
	assert.Equal(t, "it's.mp3", string(str.Val))
	_, ok = values[0][2].(*sqlparser.NullVal)
	assert.True(t, ok)

	text = schema.SQL(schema.Insert("tracks", attrs, schema.Placeholders(attrs)))
	assert.Equal(t, 3, strings.Count(text, "?"), text)
}
