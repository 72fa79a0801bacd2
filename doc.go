// Package gonde reads Nullsoft Database Engine (NDE) tables, the format of
// the Winamp Music Library (main.idx and main.dat), and converts them into
// track documents.
//
// The library is organized into logical groups of functionality:
//
// Core Types and Constants:
//   - format: signatures, sizes, the field type table and error kinds
//
// Decoding:
//   - index: index file reader (record offsets per index)
//   - field: field header and payload decoding, redirect resolution
//   - record: walks the linked fields of one record
//
// Mapping:
//   - schema: column definitions, the attribute table and SQL rendering
//   - track: turns a record into a Track keyed by attribute
//
// Output:
//   - encode: json, sexp, sql and sqlite writers over an atomic,
//     optionally compressed file sink
//   - sexp: S-expression encoder
//
// Basic usage:
//
//	t, _ := gonde.Open("main.idx", "main.dat")
//	defer t.Close()
//
//	tracks, _ := t.Tracks(ctx)
//	for _, tr := range tracks {
//	    fmt.Println(tr.Filename())
//	}
//
// or, in one call:
//
//	err := gonde.Export(ctx, "main.idx", "main.dat", gonde.ExportJSON, "tracks.json.gz")
package gonde
