// table.go - Open an NDE table and read its records
package gonde

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/index"
	"github.com/wilhasse/go-nde/record"
	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/track"
)

// Table is an opened pair of index and data files. A Table is not safe for
// concurrent use.
type Table struct {
	data    io.ReaderAt
	closers []io.Closer
	indices []*index.Index
	primary *index.Index
	opts    options
	walker  *record.Walker
	schema  *schema.Schema
}

// Open opens the index and data files of a table.
func Open(indexPath, dataPath string, opts ...Option) (*Table, error) {
	idx, err := os.Open(indexPath)
	if err != nil {
		return nil, format.WrapIO(err, -1, "open index file")
	}
	defer idx.Close()

	dat, err := os.Open(dataPath)
	if err != nil {
		return nil, format.WrapIO(err, -1, "open data file")
	}
	t, err := OpenReaders(idx, dat, opts...)
	if err != nil {
		dat.Close()
		return nil, err
	}
	t.closers = append(t.closers, dat)
	return t, nil
}

// OpenReaders reads the index from idx and prepares to read records from
// dat. The index is consumed fully before OpenReaders returns; dat must stay
// valid until the table is no longer used.
func OpenReaders(idx io.Reader, dat io.ReaderAt, opts ...Option) (*Table, error) {
	o := buildOptions(opts)

	indices, err := index.Read(bufio.NewReader(idx))
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, format.NewError(format.ErrNoIndices, -1, "")
	}
	primary, ok := index.Primary(indices)
	if !ok {
		if o.strictPrimary {
			return nil, format.NewError(format.ErrNoPrimaryIndex, -1, "%d indices, none with id %d", len(indices), format.PrimaryIndexID)
		}
		primary = indices[0]
		o.log.Warn("no primary index, using first index", zap.Uint32("id", primary.ID()))
	}
	if err := record.VerifySignature(dat); err != nil {
		return nil, err
	}
	o.log.Debug("opened table",
		zap.Int("indices", len(indices)), zap.Uint32("primary", primary.ID()), zap.Int("records", primary.Len()))

	return &Table{
		data:    dat,
		indices: indices,
		primary: primary,
		opts:    o,
		walker:  record.NewWalker(dat, o.maxHops, o.log),
	}, nil
}

// Close releases the files opened by Open.
func (t *Table) Close() error {
	var first error
	for _, c := range t.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	t.closers = nil
	return first
}

// Indices returns every index in file order.
func (t *Table) Indices() []*index.Index { return t.indices }

// Primary returns the index records are read through.
func (t *Table) Primary() *index.Index { return t.primary }

// Len is the number of records, including the schema and index definition
// records.
func (t *Table) Len() int { return t.primary.Len() }

// Record decodes the i-th record of the primary index.
func (t *Table) Record(i int) ([]field.Field, error) {
	if i < 0 || i >= t.primary.Len() {
		return nil, errors.Errorf("record %d out of range [0, %d)", i, t.primary.Len())
	}
	fields, err := t.walker.Walk(t.primary.OffsetAt(i))
	return fields, errors.Wrapf(err, "record %d", i)
}

// Schema decodes record 0 and maps its columns onto attributes. The result
// is cached.
func (t *Table) Schema() (*schema.Schema, error) {
	if t.schema != nil {
		return t.schema, nil
	}
	if t.primary.Len() <= format.SchemaRecord {
		return nil, format.NewError(format.ErrTooFewRecords, -1, "no schema record")
	}
	fields, err := t.Record(format.SchemaRecord)
	if err != nil {
		return nil, err
	}
	s, err := schema.Build(fields)
	if err != nil {
		return nil, err
	}
	t.opts.log.Info("loaded schema", zap.Int("columns", len(s.Columns)), zap.Int("mapped", s.Attributes.Len()))
	t.schema = s
	return s, nil
}

// IndexDefinitions returns the index declarations stored in record 1.
func (t *Table) IndexDefinitions() ([]field.Index, error) {
	if t.primary.Len() <= format.IndexDefRecord {
		return nil, format.NewError(format.ErrTooFewRecords, -1, "no index definition record")
	}
	fields, err := t.Record(format.IndexDefRecord)
	if err != nil {
		return nil, err
	}
	var defs []field.Index
	for _, f := range fields {
		if d, ok := f.Value.(field.Index); ok {
			defs = append(defs, d)
		}
	}
	return defs, nil
}

// Tracks materializes every record after the schema and index definition
// records, in primary index order. Any failure aborts the whole run.
func (t *Table) Tracks(ctx context.Context) ([]*track.Track, error) {
	n := t.primary.Len()
	if n < format.FirstTrackRecord {
		return nil, format.NewError(format.ErrTooFewRecords, -1, "%d records, need at least %d", n, format.FirstTrackRecord)
	}
	s, err := t.Schema()
	if err != nil {
		return nil, err
	}
	m := track.NewMaterializer(s.Attributes, t.opts.log)
	tracks := make([]*track.Track, n-format.FirstTrackRecord)

	materialize := func(w *record.Walker, i int) error {
		fields, err := w.Walk(t.primary.OffsetAt(i))
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		tr, err := m.Materialize(i, fields)
		if err != nil {
			return err
		}
		tracks[i-format.FirstTrackRecord] = tr
		return nil
	}

	if t.opts.workers <= 1 {
		for i := format.FirstTrackRecord; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := materialize(t.walker, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(t.opts.workers)
		for i := format.FirstTrackRecord; i < n; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return materialize(record.NewWalker(t.data, t.opts.maxHops, t.opts.log), i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	t.opts.log.Info("materialized tracks", zap.Int("tracks", len(tracks)), zap.Int("workers", t.opts.workers))
	return tracks, nil
}
