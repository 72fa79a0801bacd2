// header.go - Common 12-byte field header
package field

import (
	"fmt"

	"github.com/wilhasse/go-nde/format"
)

// Header is the part every field shares: the owning column id, the size of
// the payload region on disk and the offsets of its neighbours in the record.
type Header struct {
	ID      uint8  `json:"id"`
	MaxSize uint32 `json:"max_size"`
	Next    uint32 `json:"next"`
	Prev    uint32 `json:"prev"`
}

// ParseHeader decodes the common header starting at off. The on-disk order is
// max size, next, prev.
func ParseHeader(p []byte, off int, id uint8) (Header, error) {
	if off+format.FieldHeaderSize > len(p) {
		return Header{}, fmt.Errorf("short field header")
	}
	size, _ := format.Le32(p, off+0)
	next, _ := format.Le32(p, off+4)
	prev, _ := format.Le32(p, off+8)
	return Header{ID: id, MaxSize: size, Next: next, Prev: prev}, nil
}

// IsLast reports whether this field terminates its record.
func (h Header) IsLast() bool { return h.Next == 0 }

func (h Header) String() string {
	return fmt.Sprintf("ID %d, size: %d, prev: %#06x, next: %#06x", h.ID, h.MaxSize, h.Prev, h.Next)
}
