// text.go - String and filename payload decoding
package field

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/wilhasse/go-nde/format"
)

// Byte order marks recognised at the start of a text payload.
var (
	bomLE = [2]byte{0xFF, 0xFE}
	bomBE = [2]byte{0xFE, 0xFF}
)

// decodeText turns a text payload into a Go string. Payloads of at least two
// bytes and even length that start with a byte order mark are UTF-16 in that
// order, anything else is UTF-8.
func decodeText(buf []byte, off int64) (string, error) {
	if len(buf) == 0 {
		return "", nil
	}
	if len(buf) >= 2 && len(buf)%2 == 0 {
		switch [2]byte{buf[0], buf[1]} {
		case bomLE:
			return decodeUTF16(buf[2:], off, unicode.LittleEndian)
		case bomBE:
			return decodeUTF16(buf[2:], off, unicode.BigEndian)
		}
	}
	if !utf8.Valid(buf) {
		return "", format.NewError(format.ErrInvalidUTF8, off, "%d byte string", len(buf))
	}
	return string(buf), nil
}

func decodeUTF16(buf []byte, off int64, order unicode.Endianness) (string, error) {
	if err := checkSurrogates(buf, order); err != nil {
		return "", format.NewError(format.ErrInvalidUTF16, off, "%v", err)
	}
	out, err := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder().Bytes(buf)
	if err != nil {
		return "", &format.Error{Kind: format.ErrInvalidUTF16, Offset: off, Err: err}
	}
	return string(out), nil
}

type surrogateError int

func (e surrogateError) Error() string {
	return "unpaired surrogate at code unit " + strconv.Itoa(int(e))
}

// checkSurrogates rejects unpaired surrogates, which the x/text decoder
// would otherwise replace with U+FFFD.
func checkSurrogates(buf []byte, order unicode.Endianness) error {
	n := len(buf) / 2
	unit := func(i int) uint16 {
		if order == unicode.BigEndian {
			return uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
		}
		return uint16(buf[2*i+1])<<8 | uint16(buf[2*i])
	}
	for i := 0; i < n; i++ {
		u := unit(i)
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= n {
				return surrogateError(i)
			}
			if r := utf16.DecodeRune(rune(u), rune(unit(i+1))); r == utf8.RuneError {
				return surrogateError(i)
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return surrogateError(i)
		}
	}
	return nil
}
