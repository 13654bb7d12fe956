package fulltext

import (
	"context"
	"testing"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnits struct {
	unit.Service
	existing  map[uint64]bool
	languages []string
	withTrans []string
}

func (f fakeUnits) Exists(ctx context.Context, id uint64) (bool, error) {
	return f.existing[id], nil
}

func (f fakeUnits) Languages(ctx context.Context) ([]string, error) {
	return f.languages, nil
}

func (f fakeUnits) LanguagesWithTranslation(ctx context.Context) ([]string, error) {
	return f.withTrans, nil
}

type fakeIndex struct {
	partitions map[string]*fakePartition
}

func (f fakeIndex) Partition(language string) Partition {
	if p, ok := f.partitions[language]; ok {
		return p
	}
	return &fakePartition{language: language}
}

func (f fakeIndex) Store(ctx context.Context, u model.Unit) error { return nil }

type fakePartition struct {
	language  string
	entries   []uint64
	removed   []uint64
	optimized bool
}

func (p *fakePartition) Language() string { return p.language }

func (p *fakePartition) Entries(ctx context.Context) Cursor {
	return &sliceCursor{language: p.language, ids: p.entries}
}

func (p *fakePartition) Remove(ctx context.Context, unitID uint64) error {
	p.removed = append(p.removed, unitID)
	return nil
}

func (p *fakePartition) Optimize(ctx context.Context) error {
	p.optimized = true
	return nil
}

type sliceCursor struct {
	language string
	ids      []uint64
	pos      int
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if c.pos >= len(c.ids) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Entry() model.IndexEntry {
	return model.IndexEntry{UnitID: c.ids[c.pos-1], Language: c.language}
}

func (c *sliceCursor) Err() error { return nil }

func TestMaintainerCleanup(t *testing.T) {
	src := &fakePartition{entries: []uint64{1, 2, 3}}
	de := &fakePartition{language: "de", entries: []uint64{4, 5}}
	index := fakeIndex{partitions: map[string]*fakePartition{"": src, "de": de}}
	units := fakeUnits{
		existing:  map[uint64]bool{1: true, 3: true, 5: true},
		languages: []string{"de"},
	}
	m := NewMaintainer(index, units)

	require.NoError(t, m.Cleanup(context.Background()))
	assert.Equal(t, []uint64{2}, src.removed, "only the orphaned source entry goes")
	assert.Equal(t, []uint64{4}, de.removed, "only the orphaned target entry goes")
}

func TestMaintainerCleanupIdempotent(t *testing.T) {
	part := &fakePartition{entries: []uint64{1, 2}}
	index := fakeIndex{partitions: map[string]*fakePartition{"": part}}
	units := fakeUnits{existing: map[uint64]bool{1: true, 2: true}}
	m := NewMaintainer(index, units)

	require.NoError(t, m.Cleanup(context.Background()))
	assert.Empty(t, part.removed, "live entries must survive the sweep")
}

func TestMaintainerOptimize(t *testing.T) {
	src := &fakePartition{}
	de := &fakePartition{language: "de"}
	fr := &fakePartition{language: "fr"}
	index := fakeIndex{partitions: map[string]*fakePartition{"": src, "de": de, "fr": fr}}
	units := fakeUnits{withTrans: []string{"de", "fr"}}
	m := NewMaintainer(index, units)

	require.NoError(t, m.Optimize(context.Background()))
	assert.True(t, src.optimized)
	assert.True(t, de.optimized)
	assert.True(t, fr.optimized)
}
