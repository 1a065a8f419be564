package scores

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingIsZero(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.scores"))
	table := Load(store, 20, 15)

	levels, variants := table.Size()
	require.Equal(t, 20, levels)
	require.Equal(t, 15, variants)
	for l := 0; l < levels; l++ {
		for v := 0; v < variants; v++ {
			assert.Zero(t, table.Get(l, v))
		}
	}
}

func TestLoadWrongSizeIsZero(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"truncated", make([]byte, 4*6-1)},
		{"too long", make([]byte, 4*6+4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := range tc.data {
				tc.data[i] = 0xff
			}
			store := NewMemoryStore()
			require.NoError(t, store.Save(tc.data))

			table := Load(store, 2, 3)
			assert.Equal(t, [][]uint32{{0, 0, 0}, {0, 0, 0}}, table.Rows())
		})
	}
}

func TestUpdateIsMonotonic(t *testing.T) {
	store := NewMemoryStore()
	table := Load(store, 3, 2)

	tests := []struct {
		score    uint32
		expected uint32
		changed  bool
	}{
		{120, 120, true},
		{80, 120, false},
		{120, 120, false},
		{121, 121, true},
		{0, 121, false},
	}

	for _, tc := range tests {
		changed, err := table.Update(2, 1, tc.score)
		require.NoError(t, err)
		assert.Equal(t, tc.changed, changed, "Update(%d)", tc.score)
		assert.Equal(t, tc.expected, table.Get(2, 1))
	}
	assert.Equal(t, 2, store.Saves(), "only improvements are written")
	assert.Zero(t, table.Get(2, 0))
}

func TestRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "robots.scores"))
	table := Load(store, 20, 21)

	for l := 0; l < 20; l++ {
		for v := 0; v < 21; v += 4 {
			_, err := table.Update(l, v, uint32(l*1000+v+1))
			require.NoError(t, err)
		}
	}

	reloaded := Load(store, 20, 21)
	assert.Equal(t, table.Rows(), reloaded.Rows())
}

func TestEncodingLayout(t *testing.T) {
	table := New(NewMemoryStore(), 2, 3)
	_, err := table.Update(1, 2, 0x01020304)
	require.NoError(t, err)

	data := table.Encode()
	require.Len(t, data, 2*3*4)
	// Row-major by level then variant, little-endian.
	assert.Equal(t, uint32(0x01020304), binary.LittleEndian.Uint32(data[(1*3+2)*4:]))
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, data[20:24])
}

func TestDecodeShapeError(t *testing.T) {
	table := New(NewMemoryStore(), 2, 2)
	err := table.decode(make([]byte, 3))
	assert.ErrorIs(t, err, ErrShape)
}

func TestUpdateWriteFailureKeepsMemory(t *testing.T) {
	store := NewMemoryStore()
	table := Load(store, 1, 1)
	boom := errors.New("read-only filesystem")
	store.FailWith(boom)

	changed, err := table.Update(0, 0, 50)
	assert.True(t, changed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint32(50), table.Get(0, 0))

	// The retry writes the pending table even without an improvement.
	store.FailWith(nil)
	changed, err = table.Update(0, 0, 0)
	assert.False(t, changed)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, uint32(50), Load(store, 1, 1).Get(0, 0))

	_, err = table.Update(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Saves(), "nothing pending after a good write")
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "snake.scores"))

	require.NoError(t, store.Save([]byte{1, 2, 3, 4}))
	require.NoError(t, store.Save([]byte{5, 6, 7, 8}))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 7, 8}, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestOutOfRangeEntryPanics(t *testing.T) {
	table := New(NewMemoryStore(), 2, 2)
	assert.Panics(t, func() { table.Get(2, 0) })
	assert.Panics(t, func() { _, _ = table.Update(0, -1, 1) })
}
