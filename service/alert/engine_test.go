package alert

import (
	"context"
	"fmt"
	"testing"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponents struct {
	component.Service
	list []model.Component
}

func (f fakeComponents) FindAll(ctx context.Context) ([]model.Component, error) { return f.list, nil }

func (f fakeComponents) WithRemote(ctx context.Context) ([]model.Component, error) {
	res := make([]model.Component, 0)
	for _, c := range f.list {
		if c.HasRemote {
			res = append(res, c)
		}
	}
	return res, nil
}

type fakeVcs struct {
	vcs.Service
	missing  int
	outgoing int
}

func (f fakeVcs) CountMissing(ctx context.Context, c model.Component) (int, error) {
	return f.missing, nil
}

func (f fakeVcs) CountOutgoing(ctx context.Context, c model.Component) (int, error) {
	return f.outgoing, nil
}

type fakeParser struct {
	units []model.Unit
	err   error
}

func (f fakeParser) Load(ctx context.Context, c model.Component) ([]model.Unit, error) {
	return f.units, f.err
}

type fakeSink struct {
	Service
	active map[string]bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{active: make(map[string]bool)}
}

func (f *fakeSink) Add(ctx context.Context, componentID uint64, name string) error {
	f.active[name] = true
	return nil
}

func (f *fakeSink) Remove(ctx context.Context, componentID uint64, name string) error {
	delete(f.active, name)
	return nil
}

func TestCheckRepositoryThreshold(t *testing.T) {
	c := model.Component{ID: 1, HasRemote: true}
	cases := []struct {
		name         string
		missing      int
		outgoing     int
		wantOutdated bool
		wantChanges  bool
	}{
		{name: "all quiet", missing: 0, outgoing: 0},
		{name: "at the threshold", missing: 10, outgoing: 10},
		{name: "missing above", missing: 11, wantOutdated: true},
		{name: "outgoing above", outgoing: 11, wantChanges: true},
		{name: "both above", missing: 20, outgoing: 20, wantOutdated: true, wantChanges: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := newFakeSink()
			e := NewEngine(fakeComponents{}, fakeVcs{missing: tc.missing, outgoing: tc.outgoing}, fakeParser{}, sink, model.Config{AlertThreshold: 10})
			require.NoError(t, e.CheckRepository(context.Background(), c, 10))
			assert.Equal(t, tc.wantOutdated, sink.active[model.AlertRepositoryOutdated])
			assert.Equal(t, tc.wantChanges, sink.active[model.AlertRepositoryChanges])
		})
	}
}

func TestCheckRepositoryClearsStaleAlert(t *testing.T) {
	c := model.Component{ID: 1, HasRemote: true}
	sink := newFakeSink()
	cfg := model.Config{AlertThreshold: 10}

	e := NewEngine(fakeComponents{}, fakeVcs{missing: 11}, fakeParser{}, sink, cfg)
	require.NoError(t, e.CheckRepository(context.Background(), c, 10))
	require.True(t, sink.active[model.AlertRepositoryOutdated])

	e = NewEngine(fakeComponents{}, fakeVcs{missing: 9}, fakeParser{}, sink, cfg)
	require.NoError(t, e.CheckRepository(context.Background(), c, 10))
	assert.False(t, sink.active[model.AlertRepositoryOutdated], "the alert must clear once the counter drops")
}

func TestComponentSweepParseError(t *testing.T) {
	sink := newFakeSink()
	p := fakeParser{err: fmt.Errorf("bad yaml: %w", model.ErrParse)}
	e := NewEngine(
		fakeComponents{list: []model.Component{{ID: 1}}},
		fakeVcs{}, p, sink,
		model.Config{AlertThreshold: 10},
	)
	require.NoError(t, e.ComponentSweep(context.Background()))
	assert.True(t, sink.active[model.AlertParseError])
	assert.False(t, sink.active[model.AlertNoTranslationFiles])
}

func TestComponentSweepNoTranslationFiles(t *testing.T) {
	sink := newFakeSink()
	e := NewEngine(
		fakeComponents{list: []model.Component{{ID: 1}}},
		fakeVcs{}, fakeParser{}, sink,
		model.Config{AlertThreshold: 10},
	)
	require.NoError(t, e.ComponentSweep(context.Background()))
	assert.True(t, sink.active[model.AlertNoTranslationFiles])
	assert.False(t, sink.active[model.AlertParseError])
}

func TestComponentSweepHealthy(t *testing.T) {
	sink := newFakeSink()
	sink.active[model.AlertParseError] = true
	e := NewEngine(
		fakeComponents{list: []model.Component{{ID: 1}}},
		fakeVcs{},
		fakeParser{units: []model.Unit{{ID: 1, IDHash: "greeting"}}},
		sink,
		model.Config{AlertThreshold: 10},
	)
	require.NoError(t, e.ComponentSweep(context.Background()))
	assert.Empty(t, sink.active, "a healthy component must end up with no alerts")
}
