// Package ndetest builds NDE index and data files in memory for tests.
package ndetest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/wilhasse/go-nde/format"
)

// Field is one field to lay out in a data file.
type Field struct {
	ID      uint8
	Kind    format.FieldKind
	Payload []byte
	// MaxSize overrides the header size when non-zero.
	MaxSize uint32
}

func (f Field) size() int { return format.FieldPrefixSize + format.FieldHeaderSize + len(f.Payload) }

// Table accumulates a data file.
type Table struct {
	buf []byte
}

// NewTable starts a data file with its signature.
func NewTable() *Table {
	return &Table{buf: append([]byte(nil), format.TableSignature...)}
}

// Offset is where the next write lands.
func (t *Table) Offset() int64 { return int64(len(t.buf)) }

// Bytes returns the file contents.
func (t *Table) Bytes() []byte { return t.buf }

// Raw appends b and returns its offset.
func (t *Table) Raw(b []byte) int64 {
	at := t.Offset()
	t.buf = append(t.buf, b...)
	return at
}

// Field writes a single field with explicit neighbour links.
func (t *Table) Field(f Field, next, prev uint32) int64 {
	at := t.Offset()
	size := f.MaxSize
	if size == 0 {
		size = uint32(len(f.Payload))
	}
	t.buf = append(t.buf, f.ID, byte(f.Kind))
	t.buf = binary.LittleEndian.AppendUint32(t.buf, size)
	t.buf = binary.LittleEndian.AppendUint32(t.buf, next)
	t.buf = binary.LittleEndian.AppendUint32(t.buf, prev)
	t.buf = append(t.buf, f.Payload...)
	return at
}

// Redirect writes a redirector field pointing at target.
func (t *Table) Redirect(id uint8, target int64) int64 {
	at := t.Offset()
	t.buf = append(t.buf, id, byte(format.KindRedirector))
	t.buf = binary.LittleEndian.AppendUint32(t.buf, uint32(target))
	return at
}

// Record lays the fields out back to back, linked in order, and returns the
// offset of the first one.
func (t *Table) Record(fields ...Field) int64 {
	start := t.Offset()
	at := start
	var prev int64
	for i, f := range fields {
		var next int64
		if i < len(fields)-1 {
			next = at + int64(f.size())
		}
		t.Field(f, uint32(next), uint32(prev))
		prev = at
		at = next
	}
	return start
}

// Payload helpers.

func Text(s string) []byte {
	b := binary.LittleEndian.AppendUint16(nil, uint16(len(s)))
	return append(b, s...)
}

// UTF16 encodes s with a byte order mark in the given order.
func UTF16(s string, bigEndian bool) []byte {
	units := utf16.Encode([]rune(s))
	body := make([]byte, 0, 2+2*len(units))
	if bigEndian {
		body = append(body, 0xFE, 0xFF)
		for _, u := range units {
			body = binary.BigEndian.AppendUint16(body, u)
		}
	} else {
		body = append(body, 0xFF, 0xFE)
		for _, u := range units {
			body = binary.LittleEndian.AppendUint16(body, u)
		}
	}
	return RawText(body)
}

// RawText prefixes b with its u16 length.
func RawText(b []byte) []byte {
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(b)))
	return append(out, b...)
}

func Int32(v int32) []byte { return binary.LittleEndian.AppendUint32(nil, uint32(v)) }
func Int64(v int64) []byte { return binary.LittleEndian.AppendUint64(nil, uint64(v)) }

// Field constructors.

func Column(id uint8, kind format.FieldKind, name string) Field {
	p := []byte{byte(kind), 0, byte(len(name))}
	return Field{ID: id, Kind: format.KindColumn, Payload: append(p, name...)}
}

func IndexDef(id uint8, pos, typ int32, name string) Field {
	p := append(Int32(pos), Int32(typ)...)
	p = append(p, byte(len(name)))
	return Field{ID: id, Kind: format.KindIndex, Payload: append(p, name...)}
}

func String(id uint8, s string) Field {
	return Field{ID: id, Kind: format.KindString, Payload: Text(s)}
}

func Filename(id uint8, s string) Field {
	return Field{ID: id, Kind: format.KindFilename, Payload: Text(s)}
}

func Integer(id uint8, v int32) Field {
	return Field{ID: id, Kind: format.KindInteger, Payload: Int32(v)}
}

func Length(id uint8, v int32) Field {
	return Field{ID: id, Kind: format.KindLength, Payload: Int32(v)}
}

func Datetime(id uint8, v int32) Field {
	return Field{ID: id, Kind: format.KindDatetime, Payload: Int32(v)}
}

func Big(id uint8, v int64) Field {
	return Field{ID: id, Kind: format.KindInt64, Payload: Int64(v)}
}

func Opaque(id uint8, kind format.FieldKind, b []byte) Field {
	return Field{ID: id, Kind: kind, Payload: b}
}

// Entry is one index entry.
type Entry struct {
	Offset uint32
	Key    int32
}

// Index is one index block. Every block in a file must hold the same number
// of entries.
type Index struct {
	ID      uint32
	Entries []Entry
}

// IndexFile encodes an index file.
func IndexFile(indices ...Index) []byte {
	b := append([]byte(nil), format.IndexSignature...)
	n := 0
	if len(indices) > 0 {
		n = len(indices[0].Entries)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(n))
	for _, idx := range indices {
		b = binary.LittleEndian.AppendUint32(b, idx.ID)
		for _, e := range idx.Entries {
			b = binary.LittleEndian.AppendUint32(b, e.Offset)
			b = binary.LittleEndian.AppendUint32(b, uint32(e.Key))
		}
	}
	return b
}

// Columns is the schema Library writes as record 0.
var Columns = []Field{
	Column(0, format.KindFilename, "filename"),
	Column(1, format.KindString, "title"),
	Column(2, format.KindString, "artist"),
	Column(3, format.KindString, "album"),
	Column(4, format.KindInteger, "year"),
	Column(5, format.KindLength, "length"),
	Column(6, format.KindDatetime, "lastplay"),
	Column(7, format.KindInt64, "filesize"),
	Column(8, format.KindInteger, "playcount"),
	Column(9, format.KindString, "nonesuch"),
}

// Library builds a complete table: the Columns schema as record 0, an index
// definition record, then one record per element of tracks. The index file
// holds the primary index (id 255) and a filename index (id 0) listing the
// same records in reverse.
func Library(tracks ...[]Field) (idx, dat []byte) {
	t := NewTable()
	offsets := []int64{
		t.Record(Columns...),
		t.Record(IndexDef(255, 0, int32(format.KindInteger), "primary"), IndexDef(0, 0, int32(format.KindFilename), "filename")),
	}
	for _, fields := range tracks {
		offsets = append(offsets, t.Record(fields...))
	}
	primary := Index{ID: format.PrimaryIndexID}
	byName := Index{ID: 0}
	for i, off := range offsets {
		primary.Entries = append(primary.Entries, Entry{Offset: uint32(off), Key: int32(i)})
		j := len(offsets) - 1 - i
		byName.Entries = append(byName.Entries, Entry{Offset: uint32(offsets[j]), Key: int32(j)})
	}
	return IndexFile(primary, byName), t.Bytes()
}

// WriteFiles stores an index and data file in a temporary directory.
func WriteFiles(tb testing.TB, idx, dat []byte) (idxPath, datPath string) {
	tb.Helper()
	dir := tb.TempDir()
	idxPath = filepath.Join(dir, "main.idx")
	datPath = filepath.Join(dir, "main.dat")
	if err := os.WriteFile(idxPath, idx, 0o644); err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(datPath, dat, 0o644); err != nil {
		tb.Fatal(err)
	}
	return idxPath, datPath
}
