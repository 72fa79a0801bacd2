// index.go - One index of an NDE index file
package index

import (
	"fmt"

	"github.com/wilhasse/go-nde/format"
)

// Entry locates one record in the data file.
type Entry struct {
	Offset uint32 `json:"offset"`
	Key    int32  `json:"key"`
}

// Index is an ordered list of record locations. The primary index (id 255)
// lists records in storage order; the others list the same records sorted
// by a column.
type Index struct {
	id      uint32
	entries []Entry
}

// New builds an index from decoded entries.
func New(id uint32, entries []Entry) *Index {
	return &Index{id: id, entries: entries}
}

func (x *Index) ID() uint32 { return x.id }
func (x *Index) Len() int   { return len(x.entries) }

// OffsetAt returns the data file offset of the i-th record.
func (x *Index) OffsetAt(i int) int64 { return int64(x.entries[i].Offset) }

// KeyAt returns the key stored with the i-th record.
func (x *Index) KeyAt(i int) int32 { return x.entries[i].Key }

// Entry returns the i-th entry.
func (x *Index) Entry(i int) Entry { return x.entries[i] }

// IsPrimary reports whether this is the storage-order index.
func (x *Index) IsPrimary() bool { return x.id == format.PrimaryIndexID }

func (x *Index) String() string {
	return fmt.Sprintf("index %d (%d records)", x.id, len(x.entries))
}

// Primary returns the index with id 255.
func Primary(indices []*Index) (*Index, bool) {
	for _, x := range indices {
		if x.IsPrimary() {
			return x, true
		}
	}
	return nil, false
}
