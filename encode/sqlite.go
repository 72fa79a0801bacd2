// sqlite.go - SQLite database output
package encode

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/track"
)

// WriteSQLite creates a SQLite database at path holding one table of
// tracks. The database is built in a temporary file and moved into place
// when complete.
func WriteSQLite(ctx context.Context, path, table string, attrs []schema.Attribute, tracks []*track.Track) error {
	return ReplaceFile(path, func(tmp string) error {
		db, err := sql.Open("sqlite", tmp)
		if err != nil {
			return errors.Wrap(err, "open sqlite")
		}
		if err := fillDB(ctx, db, table, attrs, tracks); err != nil {
			_ = db.Close()
			return err
		}
		return errors.Wrap(db.Close(), "close sqlite")
	})
}

func fillDB(ctx context.Context, db *sql.DB, table string, attrs []schema.Attribute, tracks []*track.Track) error {
	if _, err := db.ExecContext(ctx, schema.SQL(schema.CreateTable(table, attrs))); err != nil {
		return errors.Wrap(err, "create table")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	stmt, err := tx.PrepareContext(ctx, schema.SQL(schema.Insert(table, attrs, schema.Placeholders(attrs))))
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, t := range tracks {
		if _, err := stmt.ExecContext(ctx, args(t, attrs)...); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "insert record %d", t.Record)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}
