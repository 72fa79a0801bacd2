package record_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/internal/ndetest"
	"github.com/wilhasse/go-nde/record"
)

func TestWalkChain(t *testing.T) {
	tb := ndetest.NewTable()
	start := tb.Record(
		ndetest.Filename(0, "a.mp3"),
		ndetest.String(1, "Title"),
	)
	// a record after the first must not be visited
	tb.Record(ndetest.Filename(0, "b.mp3"))

	w := record.NewWalker(bytes.NewReader(tb.Bytes()), 0, zaptest.NewLogger(t))
	fields, err := w.Walk(start)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, field.Filename("a.mp3"), fields[0].Value)
	assert.Equal(t, uint32(fields[1].Offset), fields[0].Header.Next)
	assert.Equal(t, field.String("Title"), fields[1].Value)
	assert.True(t, fields[1].Header.IsLast())
	assert.Equal(t, uint32(fields[0].Offset), fields[1].Header.Prev)
}

func TestWalkThroughRedirect(t *testing.T) {
	tb := ndetest.NewTable()
	moved := tb.Field(ndetest.String(1, "moved"), 0, 0)
	head := tb.Offset()
	first := ndetest.Filename(0, "a.mp3")
	redirect := head + int64(format.FieldPrefixSize+format.FieldHeaderSize+len(first.Payload))
	tb.Field(first, uint32(redirect), 0)
	tb.Redirect(1, moved)

	w := record.NewWalker(bytes.NewReader(tb.Bytes()), 0, zaptest.NewLogger(t))
	fields, err := w.Walk(head)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, field.String("moved"), fields[1].Value)
	assert.Equal(t, moved, fields[1].Offset)
}

func TestWalkCycle(t *testing.T) {
	tb := ndetest.NewTable()
	a := tb.Offset()
	f := ndetest.Integer(4, 1)
	b := a + int64(format.FieldPrefixSize+format.FieldHeaderSize+len(f.Payload))
	tb.Field(f, uint32(b), 0)
	tb.Field(f, uint32(a), uint32(a))

	w := record.NewWalker(bytes.NewReader(tb.Bytes()), 0, nil)
	_, err := w.Walk(a)
	require.ErrorIs(t, err, format.ErrFieldCycle)
}

func TestWalkBadOffset(t *testing.T) {
	tb := ndetest.NewTable()
	tb.Record(ndetest.Integer(4, 1))

	w := record.NewWalker(bytes.NewReader(tb.Bytes()), 0, nil)
	for _, at := range []int64{0, 4, 7} {
		_, err := w.Walk(at)
		require.ErrorIs(t, err, format.ErrBadOffset)
	}
}

func TestWalkTruncated(t *testing.T) {
	tb := ndetest.NewTable()
	start := tb.Record(ndetest.String(1, "abcdef"))
	data := tb.Bytes()

	w := record.NewWalker(bytes.NewReader(data[:len(data)-2]), 0, nil)
	_, err := w.Walk(start)
	require.ErrorIs(t, err, format.ErrTruncated)
}

func TestWalkFuncStops(t *testing.T) {
	tb := ndetest.NewTable()
	start := tb.Record(ndetest.Integer(1, 1), ndetest.Integer(2, 2), ndetest.Integer(3, 3))
	stop := errors.New("stop")

	var seen int
	w := record.NewWalker(bytes.NewReader(tb.Bytes()), 0, nil)
	err := w.WalkFunc(start, func(field.Field) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}

func TestWalkersAreIndependent(t *testing.T) {
	tb := ndetest.NewTable()
	a := tb.Record(ndetest.Integer(1, 1), ndetest.Integer(2, 2))
	b := tb.Record(ndetest.Integer(1, 3))
	r := bytes.NewReader(tb.Bytes())

	w1 := record.NewWalker(r, 0, nil)
	w2 := record.NewWalker(r, 0, nil)
	err := w1.WalkFunc(a, func(f field.Field) error {
		other, err := w2.Walk(b)
		require.NoError(t, err)
		assert.Equal(t, field.Integer(3), other[0].Value)
		return nil
	})
	require.NoError(t, err)
}

func TestVerifySignature(t *testing.T) {
	require.NoError(t, record.VerifySignature(bytes.NewReader(ndetest.NewTable().Bytes())))

	err := record.VerifySignature(bytes.NewReader([]byte("NDEINDEX")))
	require.ErrorIs(t, err, format.ErrBadSignature)

	err = record.VerifySignature(bytes.NewReader([]byte("NDE")))
	require.ErrorIs(t, err, format.ErrBadSignature)
}
