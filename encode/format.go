// Package encode writes exported tracks as JSON, S-expressions, SQL text or
// a SQLite database.
package encode

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/track"
)

// Format is an export document format.
type Format string

const (
	JSON   Format = "json"
	Sexp   Format = "sexp"
	SQL    Format = "sql"
	SQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, Sexp, SQL, SQLite}

// ParseFormat maps a format name onto a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", format.NewError(format.ErrBadFormat, -1, "%q", s)
}

// Options tune the tabular formats.
type Options struct {
	// Table names the SQL table; schema.DefaultTable when empty.
	Table string
	// Attributes are the table columns; every attribute when empty.
	Attributes []schema.Attribute
	Log        *zap.Logger
}

func (o Options) table() string {
	if o.Table == "" {
		return schema.DefaultTable
	}
	return o.Table
}

func (o Options) attributes() []schema.Attribute {
	if len(o.Attributes) == 0 {
		return schema.All()
	}
	return o.Attributes
}

func (o Options) log() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// Encode writes tracks to w. SQLite is not a stream format; use WriteFile.
func Encode(w io.Writer, f Format, tracks []*track.Track, opts Options) error {
	switch f {
	case JSON:
		return EncodeJSON(w, tracks)
	case Sexp:
		return EncodeSexp(w, tracks)
	case SQL:
		return EncodeSQL(w, opts.table(), opts.attributes(), tracks)
	default:
		return format.NewError(format.ErrBadFormat, -1, "%q cannot be streamed", string(f))
	}
}

// Write stores tracks at path in format f. Stream formats honour the
// compression implied by the file extension; the file only appears once it
// is complete.
func Write(ctx context.Context, path string, f Format, tracks []*track.Track, opts Options) error {
	log := opts.log()
	if f == SQLite {
		log.Debug("writing sqlite database", zap.String("path", path), zap.Int("tracks", len(tracks)))
		return WriteSQLite(ctx, path, opts.table(), opts.attributes(), tracks)
	}
	log.Debug("writing export",
		zap.String("path", path), zap.String("format", string(f)),
		zap.Stringer("compression", CompressionFor(path)), zap.Int("tracks", len(tracks)))
	err := WriteFile(path, func(w io.Writer) error {
		return Encode(w, f, tracks, opts)
	})
	return errors.Wrapf(err, "write %s", path)
}
