// walker.go - Walk the linked fields of one record
package record

import (
	"bytes"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
)

// Walker decodes records from a data file. A Walker owns its read position;
// use one per goroutine. Walkers over the same io.ReaderAt are independent.
type Walker struct {
	sr      *io.SectionReader
	maxHops int
	log     *zap.Logger
}

// NewWalker returns a walker over r. maxHops bounds redirect chains (see
// field.ResolveRedirects); a nil log discards output.
func NewWalker(r io.ReaderAt, maxHops int, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{
		sr:      io.NewSectionReader(r, 0, math.MaxInt64),
		maxHops: maxHops,
		log:     log,
	}
}

// WalkFunc decodes the record starting at at and calls fn for each field in
// chain order. The walk ends at the first field whose Next is 0. Returning an
// error from fn stops the walk with that error.
func (w *Walker) WalkFunc(at int64, fn func(field.Field) error) error {
	visited := roaring.New()
	for n := 0; ; n++ {
		if at < format.SignatureSize || at > math.MaxUint32 {
			return format.NewError(format.ErrBadOffset, at, "field %d of record", n)
		}
		if !visited.CheckedAdd(uint32(at)) {
			return format.NewError(format.ErrFieldCycle, at, "after %d fields", n)
		}
		if _, err := w.sr.Seek(at, io.SeekStart); err != nil {
			return format.WrapIO(err, at, "seek field")
		}
		id, kind, resolved, err := field.ResolveRedirects(w.sr, w.maxHops)
		if err != nil {
			return err
		}
		if resolved != at {
			w.log.Debug("followed redirect", zap.Int64("from", at), zap.Int64("to", resolved), zap.Uint8("id", id))
		}
		f, err := field.Decode(w.sr, resolved, id, kind)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
		if f.Header.IsLast() {
			return nil
		}
		at = int64(f.Header.Next)
	}
}

// Walk returns all fields of the record starting at at.
func (w *Walker) Walk(at int64) ([]field.Field, error) {
	var fields []field.Field
	err := w.WalkFunc(at, func(f field.Field) error {
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// VerifySignature checks that r starts with the data file signature.
func VerifySignature(r io.ReaderAt) error {
	var sig [format.SignatureSize]byte
	n, err := r.ReadAt(sig[:], 0)
	if n < len(sig) {
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			return format.NewError(format.ErrBadSignature, 0, "data file holds %d bytes", n)
		}
		return format.WrapIO(err, 0, "read signature")
	}
	if !bytes.Equal(sig[:], format.TableSignature) {
		return format.NewError(format.ErrBadSignature, 0, "got %q", sig[:])
	}
	return nil
}
