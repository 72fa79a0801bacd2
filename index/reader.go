// reader.go - Decode an NDE index file
package index

import (
	"bytes"
	"errors"
	"io"

	"github.com/wilhasse/go-nde/format"
)

// maxPrealloc caps the entries allocated up front from the header count so
// a corrupt count fails on read instead of on allocation.
const maxPrealloc = 1 << 16

// Read decodes an index file: the "NDEINDEX" signature, the record count N,
// then blocks of an index id followed by N (offset, key) pairs until the
// input ends cleanly at a block boundary.
func Read(r io.Reader) ([]*Index, error) {
	var sig [format.SignatureSize]byte
	if n, err := io.ReadFull(r, sig[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, format.NewError(format.ErrBadSignature, 0, "file holds %d bytes", n)
		}
		return nil, format.WrapIO(err, 0, "read signature")
	}
	if !bytes.Equal(sig[:], format.IndexSignature) {
		return nil, format.NewError(format.ErrBadSignature, 0, "got %q", sig[:])
	}

	var buf [format.IndexEntrySize]byte
	off := int64(format.SignatureSize)
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, format.WrapRead(err, off, "record count")
	}
	count, _ := format.Le32(buf[:], 0)
	off += 4

	var indices []*Index
	for {
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, format.WrapRead(err, off, "index id")
		}
		id, _ := format.Le32(buf[:], 0)
		off += 4

		entries := make([]Entry, 0, min(int(count), maxPrealloc))
		for i := uint32(0); i < count; i++ {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				if errors.Is(err, io.EOF) {
					err = io.ErrUnexpectedEOF
				}
				return nil, format.WrapRead(err, off, "index entry")
			}
			o, _ := format.Le32(buf[:], 0)
			k, _ := format.Le32(buf[:], 4)
			entries = append(entries, Entry{Offset: o, Key: int32(k)})
			off += format.IndexEntrySize
		}
		indices = append(indices, New(id, entries))
	}
	return indices, nil
}
