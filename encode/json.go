// json.go - JSON array output
package encode

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/wilhasse/go-nde/track"
)

// EncodeJSON writes tracks as a JSON array with one track per line.
func EncodeJSON(w io.Writer, tracks []*track.Track) error {
	if len(tracks) == 0 {
		_, err := io.WriteString(w, "[]\n")
		return err
	}
	buf := []byte("[\n")
	for i, t := range tracks {
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf = append(buf, b...)
		if i < len(tracks)-1 {
			buf = append(buf, ',')
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
