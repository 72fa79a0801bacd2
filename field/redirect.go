// redirect.go - Follow redirector fields to the field they point at
package field

import (
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/wilhasse/go-nde/format"
)

// DefaultMaxRedirectHops bounds redirect chains when no explicit limit is set.
const DefaultMaxRedirectHops = 64

// ResolveRedirects reads the id and type prefix at the current position of
// r. While the type is Redirector it reads the 4-byte target offset, seeks
// there and reads the prefix again. It returns the final id and kind and the
// offset of the resolved field's id byte; r is left just after its prefix.
//
// A chain longer than maxHops (DefaultMaxRedirectHops when maxHops <= 0) or
// one that revisits an offset fails with ErrRedirectLimit.
func ResolveRedirects(r io.ReadSeeker, maxHops int) (uint8, format.FieldKind, int64, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxRedirectHops
	}
	at, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0, 0, format.WrapIO(err, -1, "tell")
	}

	visited := roaring.New()
	var buf [format.FieldPrefixSize + format.RedirectSize]byte
	for hops := 0; ; hops++ {
		if at < 0 || at > int64(^uint32(0)) || !visited.CheckedAdd(uint32(at)) {
			return 0, 0, 0, format.NewError(format.ErrRedirectLimit, at, "redirect loop after %d hops", hops)
		}
		if _, err := io.ReadFull(r, buf[:format.FieldPrefixSize]); err != nil {
			return 0, 0, 0, format.WrapRead(err, at, "field prefix")
		}
		id := buf[0]
		kind, err := format.ParseFieldKind(buf[1])
		if err != nil {
			return 0, 0, 0, format.NewError(format.ErrUnknownFieldType, at+1, "type code %d", buf[1])
		}
		if kind != format.KindRedirector {
			return id, kind, at, nil
		}
		if hops >= maxHops {
			return 0, 0, 0, format.NewError(format.ErrRedirectLimit, at, "more than %d redirect hops", maxHops)
		}
		if _, err := io.ReadFull(r, buf[format.FieldPrefixSize:]); err != nil {
			return 0, 0, 0, format.WrapRead(err, at+format.FieldPrefixSize, "redirect target")
		}
		target, _ := format.Le32(buf[:], format.FieldPrefixSize)
		if int64(target) < format.SignatureSize {
			return 0, 0, 0, format.NewError(format.ErrBadOffset, at, "redirect to %#x", target)
		}
		if _, err := r.Seek(int64(target), io.SeekStart); err != nil {
			return 0, 0, 0, format.WrapIO(err, int64(target), "seek redirect target")
		}
		at = int64(target)
	}
}
