// errors.go - Error kinds shared by every decoding stage
package format

import (
	"errors"
	"fmt"
	"io"
)

// ErrKind classifies a decoding failure. Each kind is itself an error so it
// can be matched with errors.Is against any *Error of that kind.
type ErrKind uint8

const (
	ErrIO ErrKind = iota + 1
	ErrBadSignature
	ErrNoIndices
	ErrNoPrimaryIndex
	ErrTruncated
	ErrUnknownFieldType
	ErrUnresolvedRedirect
	ErrRedirectLimit
	ErrFieldCycle
	ErrBadOffset
	ErrInvalidUTF8
	ErrInvalidUTF16
	ErrNonColumnField
	ErrMissingFilename
	ErrTooFewRecords
	ErrBadFormat
)

var errKindText = map[ErrKind]string{
	ErrIO:                 "i/o failure",
	ErrBadSignature:       "missing or wrong file signature",
	ErrNoIndices:          "no indices in index file",
	ErrNoPrimaryIndex:     "no primary index in index file",
	ErrTruncated:          "unexpected end of data",
	ErrUnknownFieldType:   "unknown field type",
	ErrUnresolvedRedirect: "redirect field reached the field decoder",
	ErrRedirectLimit:      "redirect chain exceeds hop bound",
	ErrFieldCycle:         "field chain revisits an offset",
	ErrBadOffset:          "offset does not address a field",
	ErrInvalidUTF8:        "invalid UTF-8 text",
	ErrInvalidUTF16:       "invalid UTF-16 text",
	ErrNonColumnField:     "non-column field in schema record",
	ErrMissingFilename:    "record has no filename",
	ErrTooFewRecords:      "table has too few records",
	ErrBadFormat:          "unknown output format",
}

func (k ErrKind) Error() string {
	if s, ok := errKindText[k]; ok {
		return s
	}
	return fmt.Sprintf("nde error %d", uint8(k))
}

// Error is a decoding failure with the offset it happened at (-1 when no
// single offset applies) and an optional underlying cause.
type Error struct {
	Kind   ErrKind
	Offset int64
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" (at %#x)", e.Offset)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare ErrKind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrKind)
	return ok && k == e.Kind
}

// NewError builds an *Error.
func NewError(kind ErrKind, off int64, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

// WrapRead converts a read failure into ErrTruncated (short read) or ErrIO.
func WrapRead(err error, off int64, what string) error {
	if err == nil {
		return nil
	}
	kind := ErrIO
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		kind = ErrTruncated
	}
	return &Error{Kind: kind, Offset: off, Msg: "read " + what, Err: err}
}

// WrapIO wraps an open/seek/stat failure as ErrIO.
func WrapIO(err error, off int64, what string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrIO, Offset: off, Msg: what, Err: err}
}
