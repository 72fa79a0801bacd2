// parser.go - Primitive readers shared by the per-kind field decoders
package field

import (
	"io"

	"github.com/wilhasse/go-nde/format"
)

// reader tracks the absolute offset of the next byte so that failures can
// name where they happened.
type reader struct {
	r   io.Reader
	off int64
	buf [8]byte
}

// readBytes reads exactly n bytes. Large payloads are read through a limit
// reader so a corrupt size cannot force an allocation beyond what the input
// actually holds.
func (p *reader) readBytes(n int, what string) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	var data []byte
	if n <= 4096 {
		data = make([]byte, n)
		if _, err := io.ReadFull(p.r, data); err != nil {
			return nil, format.WrapRead(err, p.off, what)
		}
	} else {
		var err error
		data, err = io.ReadAll(io.LimitReader(p.r, int64(n)))
		if err != nil {
			return nil, format.WrapRead(err, p.off, what)
		}
		if len(data) != n {
			return nil, format.WrapRead(io.ErrUnexpectedEOF, p.off, what)
		}
	}
	p.off += int64(n)
	return data, nil
}

func (p *reader) fill(n int, what string) error {
	if _, err := io.ReadFull(p.r, p.buf[:n]); err != nil {
		return format.WrapRead(err, p.off, what)
	}
	p.off += int64(n)
	return nil
}

// readUint8 reads an unsigned 8-bit integer
func (p *reader) readUint8(what string) (uint8, error) {
	if err := p.fill(1, what); err != nil {
		return 0, err
	}
	return p.buf[0], nil
}

// readUint16 reads an unsigned 16-bit integer (little-endian)
func (p *reader) readUint16(what string) (uint16, error) {
	if err := p.fill(2, what); err != nil {
		return 0, err
	}
	return format.Le16(p.buf[:], 0)
}

// readUint32 reads an unsigned 32-bit integer (little-endian)
func (p *reader) readUint32(what string) (uint32, error) {
	if err := p.fill(4, what); err != nil {
		return 0, err
	}
	return format.Le32(p.buf[:], 0)
}

func (p *reader) readInt32(what string) (int32, error) {
	v, err := p.readUint32(what)
	return int32(v), err
}

func (p *reader) readInt64(what string) (int64, error) {
	if err := p.fill(8, what); err != nil {
		return 0, err
	}
	v, err := format.Le64(p.buf[:], 0)
	return int64(v), err
}
