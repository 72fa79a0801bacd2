// sexp.go - S-expression output
package encode

import (
	"io"

	"github.com/wilhasse/go-nde/sexp"
	"github.com/wilhasse/go-nde/track"
)

// EncodeSexp writes tracks as one list of association lists, one track per
// line.
func EncodeSexp(w io.Writer, tracks []*track.Track) error {
	buf := []byte{'('}
	for i, t := range tracks {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = sexp.Append(buf, t.Sexp())
		if _, err := w.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	buf = append(buf, ")\n"...)
	_, err := w.Write(buf)
	return err
}
