// Package scores keeps the best score per (level, variant) pair of a game
// and persists it as a flat little-endian table.
package scores

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShape reports encoded data that does not match the table dimensions.
var ErrShape = errors.New("scores: table size mismatch")

// Store is where a table's encoded bytes live.
type Store interface {
	// Load returns the last saved bytes. A store that was never written
	// returns an error; callers treat that as "no history".
	Load() ([]byte, error)
	// Save replaces the stored bytes.
	Save(data []byte) error
}

// Table is a dense [levels][variants] table of best scores.
type Table struct {
	levels   int
	variants int
	best     []uint32
	store    Store
	dirty    bool // last save failed
}

// New returns an all-zero table backed by store.
func New(store Store, levels, variants int) *Table {
	if levels <= 0 || variants <= 0 {
		panic(fmt.Sprintf("scores: invalid table shape %dx%d", levels, variants))
	}
	return &Table{
		levels:   levels,
		variants: variants,
		best:     make([]uint32, levels*variants),
		store:    store,
	}
}

// Load reads the table from store. A missing, short or otherwise
// malformed record yields an all-zero table.
func Load(store Store, levels, variants int) *Table {
	t := New(store, levels, variants)
	data, err := store.Load()
	if err != nil {
		return t
	}
	if err := t.decode(data); err != nil {
		clear(t.best)
	}
	return t
}

// Size returns the table dimensions.
func (t *Table) Size() (levels, variants int) {
	return t.levels, t.variants
}

func (t *Table) index(level, variant int) int {
	if level < 0 || level >= t.levels || variant < 0 || variant >= t.variants {
		panic(fmt.Sprintf("scores: entry (%d, %d) outside %dx%d table", level, variant, t.levels, t.variants))
	}
	return level*t.variants + variant
}

// Get returns the best score recorded for (level, variant).
func (t *Table) Get(level, variant int) uint32 {
	return t.best[t.index(level, variant)]
}

// Update records score when it strictly beats the stored value and then
// rewrites the whole table to the store. It reports whether the entry
// changed. On a write error the in-memory entry keeps the new value and
// the next Update writes the table again, improvement or not.
func (t *Table) Update(level, variant int, score uint32) (bool, error) {
	i := t.index(level, variant)
	changed := score > t.best[i]
	if !changed && !t.dirty {
		return false, nil
	}
	if changed {
		t.best[i] = score
	}
	if err := t.store.Save(t.Encode()); err != nil {
		t.dirty = true
		return changed, fmt.Errorf("scores: cannot save table: %w", err)
	}
	t.dirty = false
	return changed, nil
}

// Rows returns a copy of the table, one slice per level.
func (t *Table) Rows() [][]uint32 {
	rows := make([][]uint32, t.levels)
	for l := range rows {
		rows[l] = make([]uint32, t.variants)
		copy(rows[l], t.best[l*t.variants:(l+1)*t.variants])
	}
	return rows
}

// Encode returns the persisted form: levels*variants u32 little-endian
// values, row-major by level then variant, no header.
func (t *Table) Encode() []byte {
	buf := make([]byte, 0, 4*len(t.best))
	for _, v := range t.best {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

func (t *Table) decode(data []byte) error {
	if len(data) != 4*len(t.best) {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrShape, len(data), 4*len(t.best))
	}
	for i := range t.best {
		t.best[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return nil
}
