// decoder.go - Decode one field body given its id and kind
package field

import (
	"io"
	"unicode/utf8"

	"github.com/wilhasse/go-nde/format"
)

// Decode reads the common header and the payload of a field whose id and
// kind have already been read (see ResolveRedirects). r must be positioned
// just after the two prefix bytes; at is the offset of the id byte and is
// used for Field.Offset and error reporting.
//
// A short read fails with ErrTruncated. Redirector fields must be resolved
// before calling Decode and fail with ErrUnresolvedRedirect.
func Decode(r io.Reader, at int64, id uint8, kind format.FieldKind) (Field, error) {
	p := &reader{r: r, off: at + format.FieldPrefixSize}

	var hdr [format.FieldHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Field{}, format.WrapRead(err, p.off, "field header")
	}
	h, err := ParseHeader(hdr[:], 0, id)
	if err != nil {
		return Field{}, format.WrapRead(io.ErrUnexpectedEOF, p.off, "field header")
	}
	p.off += format.FieldHeaderSize

	f := Field{Offset: at, Kind: kind, Header: h}
	switch {
	case kind == format.KindColumn:
		f.Value, err = p.column(id)
	case kind == format.KindIndex:
		f.Value, err = p.index(id)
	case kind == format.KindRedirector:
		err = format.NewError(format.ErrUnresolvedRedirect, at, "field id %d", id)
	case kind == format.KindString:
		var s string
		s, err = p.text()
		f.Value = String(s)
	case kind == format.KindFilename:
		var s string
		s, err = p.text()
		f.Value = Filename(s)
	case kind == format.KindInteger:
		var v int32
		v, err = p.readInt32("integer")
		f.Value = Integer(v)
	case kind == format.KindLength:
		var v int32
		v, err = p.readInt32("length")
		f.Value = Length(v)
	case kind == format.KindDatetime:
		var v int32
		v, err = p.readInt32("datetime")
		f.Value = Datetime(v)
	case kind == format.KindInt64:
		var v int64
		v, err = p.readInt64("int64")
		f.Value = Int64(v)
	case kind.IsOpaque():
		var b []byte
		b, err = p.readBytes(int(h.MaxSize), kind.String()+" payload")
		f.Value = Unknown{Kind: kind, Bytes: b}
	default:
		err = format.NewError(format.ErrUnknownFieldType, at, "type code %d", uint8(kind))
	}
	if err != nil {
		return Field{}, err
	}
	return f, nil
}

// column decodes a column definition: type u8, unique u8, name.
func (p *reader) column(id uint8) (Column, error) {
	at := p.off
	code, err := p.readUint8("column type")
	if err != nil {
		return Column{}, err
	}
	kind, err := format.ParseFieldKind(code)
	if err != nil {
		return Column{}, format.NewError(format.ErrUnknownFieldType, at, "column %d declares type code %d", id, code)
	}
	unique, err := p.readUint8("column unique flag")
	if err != nil {
		return Column{}, err
	}
	name, err := p.shortName("column name")
	if err != nil {
		return Column{}, err
	}
	return Column{ID: id, Type: kind, Unique: unique != 0, Name: name}, nil
}

// index decodes an index definition: position i32, type i32, name.
func (p *reader) index(id uint8) (Index, error) {
	pos, err := p.readInt32("index position")
	if err != nil {
		return Index{}, err
	}
	typ, err := p.readInt32("index type")
	if err != nil {
		return Index{}, err
	}
	name, err := p.shortName("index name")
	if err != nil {
		return Index{}, err
	}
	return Index{ID: id, Position: pos, Type: typ, Name: name}, nil
}

// shortName reads a u8 length followed by that many UTF-8 bytes.
func (p *reader) shortName(what string) (string, error) {
	n, err := p.readUint8(what + " length")
	if err != nil {
		return "", err
	}
	at := p.off
	b, err := p.readBytes(int(n), what)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", format.NewError(format.ErrInvalidUTF8, at, "%s", what)
	}
	return string(b), nil
}

// text reads a u16 byte count followed by an encoded string.
func (p *reader) text() (string, error) {
	cb, err := p.readUint16("string length")
	if err != nil {
		return "", err
	}
	at := p.off
	b, err := p.readBytes(int(cb), "string")
	if err != nil {
		return "", err
	}
	return decodeText(b, at)
}
