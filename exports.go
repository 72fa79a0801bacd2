// exports.go - Re-exports for main package API
package gonde

import (
	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/index"
	"github.com/wilhasse/go-nde/schema"
	"github.com/wilhasse/go-nde/track"
)

// Re-export types from format package
type (
	FieldKind = format.FieldKind
	ErrKind   = format.ErrKind
	Error     = format.Error
)

// Re-export error kinds from format package
const (
	ErrIO                 = format.ErrIO
	ErrBadSignature       = format.ErrBadSignature
	ErrNoIndices          = format.ErrNoIndices
	ErrNoPrimaryIndex     = format.ErrNoPrimaryIndex
	ErrTruncated          = format.ErrTruncated
	ErrUnknownFieldType   = format.ErrUnknownFieldType
	ErrUnresolvedRedirect = format.ErrUnresolvedRedirect
	ErrRedirectLimit      = format.ErrRedirectLimit
	ErrFieldCycle         = format.ErrFieldCycle
	ErrBadOffset          = format.ErrBadOffset
	ErrInvalidUTF8        = format.ErrInvalidUTF8
	ErrInvalidUTF16       = format.ErrInvalidUTF16
	ErrNonColumnField     = format.ErrNonColumnField
	ErrMissingFilename    = format.ErrMissingFilename
	ErrTooFewRecords      = format.ErrTooFewRecords
	ErrBadFormat          = format.ErrBadFormat
)

// Re-export types from decoding packages
type (
	Field     = field.Field
	Value     = field.Value
	Index     = index.Index
	Schema    = schema.Schema
	Attribute = schema.Attribute
	Track     = track.Track
)

// KindOf returns the error kind of err, or 0 when err is not a decoding
// error.
func KindOf(err error) ErrKind { return format.KindOf(err) }
