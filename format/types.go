// types.go - File signatures, sizes and the NDE field type table
package format

import "fmt"

// Sizes and constants
const (
	SignatureSize    = 8
	FieldPrefixSize  = 2  // id (u8) + type (u8)
	FieldHeaderSize  = 12 // max size, next, prev (u32 LE each)
	IndexEntrySize   = 8  // offset (u32 LE) + key (i32 LE)
	RedirectSize     = 4  // absolute offset (u32 LE)
	PrimaryIndexID   = 255
	SchemaRecord     = 0 // column definitions
	IndexDefRecord   = 1 // index definitions
	FirstTrackRecord = 2
)

var (
	IndexSignature = []byte("NDEINDEX")
	TableSignature = []byte("NDETABLE")
)

// FieldKind is the on-disk type code of an NDE field.
type FieldKind uint8

const (
	KindColumn     FieldKind = 0
	KindIndex      FieldKind = 1
	KindRedirector FieldKind = 2
	KindString     FieldKind = 3
	KindInteger    FieldKind = 4
	KindBoolean    FieldKind = 5
	KindBinary     FieldKind = 6 // max size 65536
	KindGUID       FieldKind = 7
	KindPrivate    FieldKind = 8
	KindFloat      FieldKind = 9
	KindDatetime   FieldKind = 10
	KindLength     FieldKind = 11
	KindFilename   FieldKind = 12
	KindInt64      FieldKind = 13
	KindBinary32   FieldKind = 14 // 32-bit sizes instead of 16-bit
	KindInt128     FieldKind = 15 // mostly MD5 hashes

	numKinds = 16
)

var kindNames = [numKinds]string{
	"COLUMN", "INDEX", "REDIRECTOR", "STRING", "INTEGER", "BOOLEAN", "BINARY", "GUID",
	"PRIVATE", "FLOAT", "DATETIME", "LENGTH", "FILENAME", "INT64", "BINARY32", "INT128",
}

// ParseFieldKind maps a raw type code onto a FieldKind, rejecting codes
// outside the known table.
func ParseFieldKind(code uint8) (FieldKind, error) {
	if code >= numKinds {
		return 0, &Error{Kind: ErrUnknownFieldType, Offset: -1, Msg: fmt.Sprintf("type code %d", code)}
	}
	return FieldKind(code), nil
}

func (k FieldKind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
}

// MarshalText renders the kind by name in JSON output.
func (k FieldKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsOpaque reports whether payloads of this kind are kept as raw bytes.
func (k FieldKind) IsOpaque() bool {
	switch k {
	case KindBoolean, KindBinary, KindGUID, KindPrivate, KindFloat, KindBinary32, KindInt128:
		return true
	default:
		return false
	}
}
