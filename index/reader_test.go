package index_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-nde/format"
	"github.com/wilhasse/go-nde/index"
	"github.com/wilhasse/go-nde/internal/ndetest"
)

func TestReadTwoIndices(t *testing.T) {
	data := ndetest.IndexFile(
		ndetest.Index{ID: 255, Entries: []ndetest.Entry{{Offset: 8, Key: 0}, {Offset: 32, Key: 1}}},
		ndetest.Index{ID: 0, Entries: []ndetest.Entry{{Offset: 32, Key: 1}, {Offset: 8, Key: 0}}},
	)

	indices, err := index.Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, indices, 2)

	p := indices[0]
	assert.Equal(t, uint32(255), p.ID())
	assert.True(t, p.IsPrimary())
	require.Equal(t, 2, p.Len())
	assert.Equal(t, int64(8), p.OffsetAt(0))
	assert.Equal(t, int64(32), p.OffsetAt(1))
	assert.Equal(t, int32(1), p.KeyAt(1))

	q := indices[1]
	assert.Equal(t, uint32(0), q.ID())
	assert.False(t, q.IsPrimary())
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, int64(32), q.OffsetAt(0))

	got, ok := index.Primary(indices)
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestReadEmpty(t *testing.T) {
	indices, err := index.Read(bytes.NewReader(ndetest.IndexFile()))
	require.NoError(t, err)
	assert.Empty(t, indices)

	_, ok := index.Primary(indices)
	assert.False(t, ok)
}

func TestReadBadSignature(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     nil,
		"short":     []byte("NDEIN"),
		"wrong":     []byte("NDETABLE\x00\x00\x00\x00"),
		"lowercase": []byte("ndeindex\x00\x00\x00\x00"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := index.Read(bytes.NewReader(data))
			require.ErrorIs(t, err, format.ErrBadSignature)
		})
	}
}

func TestReadTruncated(t *testing.T) {
	data := ndetest.IndexFile(
		ndetest.Index{ID: 255, Entries: []ndetest.Entry{{Offset: 8}, {Offset: 32}}},
	)
	for _, cut := range []int{10, 14, 18, len(data) - 1} {
		_, err := index.Read(bytes.NewReader(data[:cut]))
		require.ErrorIs(t, err, format.ErrTruncated, "cut at %d", cut)
	}
}
