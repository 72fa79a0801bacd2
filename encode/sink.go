// sink.go - Atomic, optionally compressed output files
package encode

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression selects the stream compression applied to an output file.
type Compression uint8

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from the file extension: .gz, .zst
// or .lz4. Other names are written uncompressed.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// WriteFile writes path through fn, compressed according to its extension.
// The data goes to a temporary file in the same directory which replaces
// path only once fn and every flush succeed, so a failed write never leaves
// partial output behind.
func WriteFile(path string, fn func(io.Writer) error) error {
	return ReplaceFile(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return errors.Wrap(err, "open temporary output")
		}
		defer f.Close()

		buf := bufio.NewWriterSize(f, 256*1024)
		cw, err := compressor(buf, CompressionFor(path))
		if err != nil {
			return errors.Wrap(err, "init compressor")
		}
		if err := fn(cw); err != nil {
			_ = cw.Close()
			return err
		}
		if err := cw.Close(); err != nil {
			return errors.Wrap(err, "finish compressed stream")
		}
		if err := buf.Flush(); err != nil {
			return errors.Wrap(err, "flush output")
		}
		if err := f.Sync(); err != nil {
			return errors.Wrap(err, "sync output")
		}
		return errors.Wrap(f.Close(), "close output")
	})
}

// ReplaceFile creates an empty temporary file next to path, hands its name
// to fn and renames it over path when fn succeeds. On failure the temporary
// file is removed and path is left untouched.
func ReplaceFile(path string, fn func(tmp string) error) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temporary output")
	}
	tmpName := tmp.Name()
	_ = tmp.Chmod(0o644)
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temporary output")
	}
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if err := fn(tmpName); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename output to %s", path)
	}
	tmpName = ""

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
