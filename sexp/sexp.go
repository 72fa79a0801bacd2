// Package sexp renders values as Lisp S-expressions.
//
// Records are written as association lists, e.g.
//
//	((filename . "C:\\a.mp3") (artist . "Foo") (year . 1999) (title . #nil))
//
// Only encoding is supported.
package sexp

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// Node is one S-expression.
type Node interface {
	appendTo(dst []byte) []byte
}

type (
	// Symbol is written verbatim.
	Symbol string
	// String is written quoted and escaped.
	String string
	Int    int64
	Float  float64
	Bool   bool
	// List is a proper list.
	List []Node
	// Pair is a dotted pair.
	Pair struct {
		Car Node
		Cdr Node
	}
)

// Nil is the empty value, written as #nil.
var Nil Node = nilNode{}

type nilNode struct{}

func (nilNode) appendTo(dst []byte) []byte { return append(dst, "#nil"...) }

func (s Symbol) appendTo(dst []byte) []byte { return append(dst, s...) }

func (s String) appendTo(dst []byte) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(string(s[i:]))
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

func (n Int) appendTo(dst []byte) []byte { return strconv.AppendInt(dst, int64(n), 10) }

func (f Float) appendTo(dst []byte) []byte {
	return strconv.AppendFloat(dst, float64(f), 'g', -1, 64)
}

func (b Bool) appendTo(dst []byte) []byte {
	if b {
		return append(dst, "#t"...)
	}
	return append(dst, "#f"...)
}

func (l List) appendTo(dst []byte) []byte {
	dst = append(dst, '(')
	for i, n := range l {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = appendNode(dst, n)
	}
	return append(dst, ')')
}

func (p Pair) appendTo(dst []byte) []byte {
	dst = append(dst, '(')
	dst = appendNode(dst, p.Car)
	dst = append(dst, " . "...)
	dst = appendNode(dst, p.Cdr)
	return append(dst, ')')
}

func appendNode(dst []byte, n Node) []byte {
	if n == nil {
		return Nil.appendTo(dst)
	}
	return n.appendTo(dst)
}

// Cons builds the pair (key . value) with a symbol key.
func Cons(key string, value Node) Pair { return Pair{Car: Symbol(key), Cdr: value} }

// Append appends the text form of n to dst.
func Append(dst []byte, n Node) []byte { return appendNode(dst, n) }

// Marshal returns the text form of n.
func Marshal(n Node) []byte { return appendNode(nil, n) }

// Encode writes the text form of n to w.
func Encode(w io.Writer, n Node) error {
	_, err := w.Write(appendNode(nil, n))
	return err
}
