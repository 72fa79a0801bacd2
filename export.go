// export.go - Convert a table into a track document
package gonde

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/encode"
)

// ExportFormat is an export document format: json, sexp, sql or sqlite.
type ExportFormat = encode.Format

const (
	ExportJSON   = encode.JSON
	ExportSexp   = encode.Sexp
	ExportSQL    = encode.SQL
	ExportSQLite = encode.SQLite
)

// ParseExportFormat maps a format name onto an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) { return encode.ParseFormat(s) }

// Export materializes every track of the table and writes them to
// outputPath. Nothing is written unless every record converts.
func Export(ctx context.Context, indexPath, dataPath string, f ExportFormat, outputPath string, opts ...Option) error {
	t, err := Open(indexPath, dataPath, opts...)
	if err != nil {
		return err
	}
	defer t.Close()
	return t.Export(ctx, f, outputPath)
}

// Export writes the table's tracks to outputPath in format f.
func (t *Table) Export(ctx context.Context, f ExportFormat, outputPath string) error {
	if _, err := encode.ParseFormat(string(f)); err != nil {
		return err
	}
	tracks, err := t.Tracks(ctx)
	if err != nil {
		return err
	}
	s, err := t.Schema()
	if err != nil {
		return err
	}
	err = encode.Write(ctx, outputPath, f, tracks, encode.Options{
		Table:      t.opts.table,
		Attributes: s.TableAttributes(),
		Log:        t.opts.log,
	})
	if err != nil {
		return errors.Wrap(err, "export")
	}
	t.opts.log.Info("exported tracks",
		zap.String("path", outputPath), zap.String("format", string(f)), zap.Int("tracks", len(tracks)))
	return nil
}
