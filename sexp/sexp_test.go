package sexp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAtoms(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"symbol", Symbol("STRING"), "STRING"},
		{"int", Int(-42), "-42"},
		{"float", Float(1.5), "1.5"},
		{"true", Bool(true), "#t"},
		{"false", Bool(false), "#f"},
		{"nil", Nil, "#nil"},
		{"string", String(`C:\a "b".mp3`), `"C:\\a \"b\".mp3"`},
		{"newline", String("a\nb"), `"a\nb"`},
		{"unicode", String("Motörhead"), `"Motörhead"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Marshal(tt.node)))
		})
	}
}

func TestMarshalAlist(t *testing.T) {
	n := List{
		Cons("filename", String("a.mp3")),
		Cons("year", Int(1999)),
		Cons("title", nil),
	}
	assert.Equal(t, `((filename . "a.mp3") (year . 1999) (title . #nil))`, string(Marshal(n)))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, List{}))
	assert.Equal(t, "()", buf.String())
}
