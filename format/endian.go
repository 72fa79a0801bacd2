// endian.go - Little-endian byte reading utilities
package format

import (
	"encoding/binary"
	"errors"
)

var errOutOfBounds = errors.New("read out of bounds")

func Le16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, errOutOfBounds
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), nil
}
func Le32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, errOutOfBounds
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), nil
}
func Le64(b []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(b) {
		return 0, errOutOfBounds
	}
	return binary.LittleEndian.Uint64(b[off : off+8]), nil
}
